package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// RecorderState 定義錄音機的狀態
type RecorderState string

const (
	RecorderIdle      RecorderState = "idle"
	RecorderRecording RecorderState = "recording"
	RecorderPaused    RecorderState = "paused"
	RecorderStopped   RecorderState = "stopped"
)

// ErrRecorderState 表示目前狀態不允許此操作
var ErrRecorderState = errors.New("錄音狀態不允許此操作")

// CaptureDevice 是音訊輸入裝置的抽象。
// 同一時間只能被一個錄音工作獨占，任何結束路徑都必須釋放。
type CaptureDevice interface {
	// Acquire 取得裝置；失敗（權限被拒／沒有裝置）是可復原的
	Acquire(ctx context.Context) error
	// MimeType 回報裝置原生的編碼格式
	MimeType() string
	// Level 回報目前的輸入音量（0-1）
	Level() float64
	// Drain 取出至今擷取到的全部音訊
	Drain() ([]byte, error)
	// Release 釋放裝置與音量分析資源
	Release()
}

// Encoder 把裝置原生格式轉碼為可散布的目標格式
type Encoder interface {
	MimeType() string
	Encode(raw []byte, sourceMime string) ([]byte, error)
}

// Artifact 是一段已定稿的錄音成品
type Artifact struct {
	Bytes    []byte
	MimeType string
}

// Recorder 是錄音狀態機：idle → recording → (paused ⇄ recording) → stopped。
// 錄音時長只累計實際錄音的區間，暫停的時間不計入；
// 時長由暫停／繼續邊界的牆鐘差值累加，不是停止時間減開始時間。
type Recorder struct {
	mu      sync.Mutex
	device  CaptureDevice
	encoder Encoder
	now     func() time.Time

	state        RecorderState
	active       time.Duration // 已累計的錄音區間總和
	segmentStart time.Time     // 目前錄音區間的起點
	artifact     *Artifact
}

func NewRecorder(device CaptureDevice, encoder Encoder) *Recorder {
	return &Recorder{
		device:  device,
		encoder: encoder,
		now:     time.Now,
		state:   RecorderIdle,
	}
}

func (r *Recorder) State() RecorderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start 取得輸入裝置並開始錄音。
// 裝置取得失敗時維持 idle 並回傳錯誤，可以重試。
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RecorderIdle {
		return fmt.Errorf("%w: start (當前 %s)", ErrRecorderState, r.state)
	}
	if err := r.device.Acquire(ctx); err != nil {
		// 不轉換狀態，使用者可再次呼叫 Start
		return fmt.Errorf("取得錄音裝置失敗: %w", err)
	}

	r.state = RecorderRecording
	r.segmentStart = r.now()
	return nil
}

// Pause 暫停錄音，把目前區間的時長累計進總和
func (r *Recorder) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RecorderRecording {
		return fmt.Errorf("%w: pause (當前 %s)", ErrRecorderState, r.state)
	}
	r.active += r.now().Sub(r.segmentStart)
	r.state = RecorderPaused
	return nil
}

// Resume 從暫停繼續錄音，重新起算區間
func (r *Recorder) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RecorderPaused {
		return fmt.Errorf("%w: resume (當前 %s)", ErrRecorderState, r.state)
	}
	r.segmentStart = r.now()
	r.state = RecorderRecording
	return nil
}

// Stop 結束錄音並把擷取到的音訊定稿為單一成品。
// 裝置原生格式與目標格式不同時先轉碼。
// 無論成功或失敗，裝置都會被釋放。
func (r *Recorder) Stop() (*Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RecorderRecording && r.state != RecorderPaused {
		return nil, fmt.Errorf("%w: stop (當前 %s)", ErrRecorderState, r.state)
	}
	if r.state == RecorderRecording {
		r.active += r.now().Sub(r.segmentStart)
	}
	r.state = RecorderStopped

	defer r.device.Release()

	raw, err := r.device.Drain()
	if err != nil {
		return nil, fmt.Errorf("取出錄音內容失敗: %w", err)
	}

	sourceMime := r.device.MimeType()
	bytes := raw
	mime := sourceMime
	if r.encoder != nil && sourceMime != r.encoder.MimeType() {
		bytes, err = r.encoder.Encode(raw, sourceMime)
		if err != nil {
			return nil, fmt.Errorf("轉碼失敗: %w", err)
		}
		mime = r.encoder.MimeType()
	}

	r.artifact = &Artifact{Bytes: bytes, MimeType: mime}
	return r.artifact, nil
}

// Duration 回報至今累計的實際錄音時長（不含暫停區間）
func (r *Recorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == RecorderRecording {
		return r.active + r.now().Sub(r.segmentStart)
	}
	return r.active
}

// Level 回報目前的輸入音量，只在錄音或暫停時有意義
func (r *Recorder) Level() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == RecorderRecording || r.state == RecorderPaused {
		return r.device.Level()
	}
	return 0
}

// Artifact 回傳定稿的成品，尚未停止時為 nil
func (r *Recorder) Artifact() *Artifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.artifact
}

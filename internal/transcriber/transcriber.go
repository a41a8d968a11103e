package transcriber

import "context"

// Result 是一次完整辨識的結果，Confidence 範圍 0-100
type Result struct {
	Text       string
	Confidence float64
}

// ProgressFunc 在辨識過程中回報逐步累積的文字。
// partial 只增不減，confidence 單調不降，直到辨識完成。
type ProgressFunc func(partial string, confidence float64)

// Transcriber 把音訊成品轉為逐字稿。
// 這是外部協作者的契約，由真正的語音辨識供應商實作。
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string, onProgress ProgressFunc) (Result, error)
}

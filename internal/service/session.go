package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"panel_web/internal/models"
	"panel_web/internal/repository"
	"panel_web/internal/storage"
	"panel_web/internal/transcriber"
)

type SessionService struct {
	sessionRepo repository.SessionRepository
	store       storage.ObjectStore
	stt         transcriber.Transcriber
}

func NewSessionService(sessionRepo repository.SessionRepository, store storage.ObjectStore, stt transcriber.Transcriber) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		store:       store,
		stt:         stt,
	}
}

// SaveRecordingInput 定義儲存錄音成品所需的欄位
type SaveRecordingInput struct {
	PanelID          uint
	Title            string
	Description      string
	Artifact         Artifact
	DurationSeconds  int
	IsPublic         bool
	RecordingQuality string
	Tags             []string
}

// SaveRecording 把錄音成品上傳到物件儲存，成功後才寫入中繼資料列。
// 兩步的順序是刻意的：上傳失敗絕不能留下懸空的中繼資料。
// 標題與成品皆不可為空。
func (s *SessionService) SaveRecording(ctx context.Context, user *models.User, input SaveRecordingInput) (*models.RecordingSession, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrValidation)
	}
	if len(input.Artifact.Bytes) == 0 {
		return nil, fmt.Errorf("%w: 沒有可儲存的錄音內容", ErrValidation)
	}

	key := fmt.Sprintf("recordings/%d/%s%s", input.PanelID, uuid.NewString(), extForMime(input.Artifact.MimeType))
	url, err := s.store.Upload(ctx, key, input.Artifact.Bytes, input.Artifact.MimeType)
	if err != nil {
		return nil, fmt.Errorf("上傳錄音失敗: %w", err)
	}

	session := &models.RecordingSession{
		PanelID:          input.PanelID,
		PanelistID:       user.ID,
		PanelistName:     user.DisplayName,
		PanelistEmail:    user.Email,
		Title:            input.Title,
		Description:      input.Description,
		Status:           models.SessionStatusCompleted,
		DurationSeconds:  input.DurationSeconds,
		AudioURL:         url,
		ObjectKey:        key,
		IsPublic:         input.IsPublic,
		RecordingQuality: input.RecordingQuality,
		Tags:             input.Tags,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("recording saved", "session_id", session.ID, "panel_id", input.PanelID, "object_key", key)
	return session, nil
}

// Transcribe 對已完成的錄音產生逐字稿。
// 過程中逐步寫回累積的文字與單調上升的信心值，
// 讓讀取端可以觀察到逐字稿逐漸增長。
func (s *SessionService) Transcribe(ctx context.Context, user *models.User, sessionID uint) (*models.RecordingSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if session.PanelistID != user.ID {
		return nil, ErrNotAuthorized
	}
	if session.Status != models.SessionStatusCompleted || session.ObjectKey == "" {
		return nil, fmt.Errorf("%w: 錄音尚未完成", ErrValidation)
	}

	audio, mimeType, err := s.store.Download(ctx, session.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("取回錄音失敗: %w", err)
	}

	session.Status = models.SessionStatusTranscribing
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	lastConfidence := 0.0
	onProgress := func(partial string, confidence float64) {
		if confidence < lastConfidence {
			confidence = lastConfidence
		}
		lastConfidence = confidence

		text := partial
		session.Transcript = &text
		session.TranscriptConfidence = &confidence
		if err := s.sessionRepo.Update(ctx, session); err != nil {
			slog.Warn("failed to persist partial transcript", "session_id", session.ID, "error", err)
		}
	}

	result, err := s.stt.Transcribe(ctx, audio, mimeType, onProgress)
	if err != nil {
		// 辨識失敗時退回 completed，逐字稿可重新產生
		session.Status = models.SessionStatusCompleted
		_ = s.sessionRepo.Update(ctx, session)
		return nil, fmt.Errorf("逐字稿產生失敗: %w", err)
	}

	if result.Confidence < lastConfidence {
		result.Confidence = lastConfidence
	}
	session.Transcript = &result.Text
	session.TranscriptConfidence = &result.Confidence
	session.Status = models.SessionStatusCompleted
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("transcription finished", "session_id", session.ID, "confidence", result.Confidence)
	return session, nil
}

// UpdateTranscript 儲存使用者編輯後的逐字稿（再確認步驟），
// 僅限錄音的與談人本人
func (s *SessionService) UpdateTranscript(ctx context.Context, user *models.User, sessionID uint, text string) (*models.RecordingSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if session.PanelistID != user.ID {
		return nil, ErrNotAuthorized
	}
	if session.Transcript == nil {
		return nil, fmt.Errorf("%w: 尚未產生逐字稿", ErrValidation)
	}

	session.Transcript = &text
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, id uint) (*models.RecordingSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return session, nil
}

func (s *SessionService) MySessions(ctx context.Context, user *models.User) ([]models.RecordingSession, error) {
	return s.sessionRepo.FindByPanelistID(ctx, user.ID)
}

func extForMime(mimeType string) string {
	switch mimeType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".bin"
	}
}

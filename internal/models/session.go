package models

import (
	"gorm.io/gorm"
)

// RecordingSession 表示與談人在座談中錄製的一段音訊成品
type RecordingSession struct {
	gorm.Model
	PanelID       uint   `gorm:"index;not null" json:"panel_id"`
	PanelistID    uint   `gorm:"index;not null" json:"panelist_id"`
	PanelistName  string `json:"panelist_name"`
	PanelistEmail string `json:"panelist_email"`
	Title         string `gorm:"not null" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	Status        SessionStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	// DurationSeconds 只在狀態到達 completed 之後才有意義
	DurationSeconds int    `json:"duration"`
	AudioURL        string `json:"audio_url"`
	ObjectKey       string `json:"-"` // 物件儲存的內部鍵，不對外暴露
	// Transcript 為 nil 表示尚未產生逐字稿；
	// TranscriptConfidence（0-100）只在 Transcript 非 nil 時有意義
	Transcript           *string  `gorm:"type:text" json:"transcript"`
	TranscriptConfidence *float64 `json:"transcript_confidence"`
	IsPublic             bool     `json:"is_public"`
	RecordingQuality     string   `json:"recording_quality"`
	Tags                 []string `gorm:"serializer:json" json:"tags"`
}

// SessionStatus 定義錄音狀態的類型
type SessionStatus string

const (
	SessionStatusDraft        SessionStatus = "draft"
	SessionStatusRecording    SessionStatus = "recording"
	SessionStatusCompleted    SessionStatus = "completed"
	SessionStatusTranscribing SessionStatus = "transcribing"
)

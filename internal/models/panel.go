package models

import (
	"strings"

	"gorm.io/gorm"
)

// Panel 表示一場預定的座談討論
type Panel struct {
	gorm.Model
	Title             string       `gorm:"not null" json:"title"`
	Description       string       `gorm:"type:text" json:"description"`
	Date              string       `json:"date"` // 格式 2006-01-02
	Time              string       `json:"time"` // 格式 15:04
	Duration          int          `json:"duration"` // 以分鐘為單位
	ParticipantsLimit int          `json:"participants_limit"`
	Category          string       `json:"category"`
	Tags              []string     `gorm:"serializer:json" json:"tags"`
	Status            PanelStatus  `gorm:"type:varchar(20);default:'draft'" json:"status"`
	OwnerID           uint         `gorm:"index;not null" json:"owner_id"`
	ModeratorEmail    string       `json:"moderator_email"` // 可選，與擁有者無關
	Panelists         PanelistList `gorm:"serializer:json" json:"panelists"`
}

// Panelist 表示受邀上台的與談人
type Panelist struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Title    string `json:"title"`
	Topic    string `json:"topic"`
	Duration int    `json:"duration"`
}

// PanelistList 是有序的與談人列表，以 JSON 序列化存入資料庫
type PanelistList []Panelist

// HasPanelist 檢查指定電子郵件是否在與談人列表中（不分大小寫）
func (p *Panel) HasPanelist(email string) bool {
	for _, panelist := range p.Panelists {
		if strings.EqualFold(panelist.Email, email) {
			return true
		}
	}
	return false
}

// HasModerator 檢查指定電子郵件是否為主持人（不分大小寫）
func (p *Panel) HasModerator(email string) bool {
	return p.ModeratorEmail != "" && strings.EqualFold(p.ModeratorEmail, email)
}

// PanelStatus 定義座談狀態的類型
type PanelStatus string

const (
	PanelStatusDraft     PanelStatus = "draft"
	PanelStatusScheduled PanelStatus = "scheduled"
	PanelStatusLive      PanelStatus = "live"
	PanelStatusCompleted PanelStatus = "completed"
	PanelStatusCancelled PanelStatus = "cancelled"
)

// Terminal 回報狀態是否為終態
func (s PanelStatus) Terminal() bool {
	return s == PanelStatusCompleted || s == PanelStatusCancelled
}

// CanTransitionTo 檢查狀態轉換是否合法。
// 合法轉換: draft→scheduled→live→completed、
// 任何非終態→cancelled、scheduled/live→draft（退回草稿）。
func (s PanelStatus) CanTransitionTo(next PanelStatus) bool {
	switch {
	case next == PanelStatusCancelled:
		return !s.Terminal()
	case next == PanelStatusDraft:
		return s == PanelStatusScheduled || s == PanelStatusLive
	case s == PanelStatusDraft && next == PanelStatusScheduled:
		return true
	case s == PanelStatusScheduled && next == PanelStatusLive:
		return true
	case s == PanelStatusLive && next == PanelStatusCompleted:
		return true
	default:
		return false
	}
}

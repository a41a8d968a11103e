package models

import (
	"time"

	"gorm.io/gorm"
)

// Invitation 表示邀請某個電子郵件加入座談擔任與談人的邀請函
type Invitation struct {
	gorm.Model
	PanelID       uint             `gorm:"index;not null" json:"panel_id"`
	PanelistEmail string           `gorm:"index;not null" json:"panelist_email"`
	Status        InvitationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ExpiresAt     time.Time        `json:"expires_at"`
}

// InvitationStatus 定義邀請狀態的類型
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
	// expired 不會被寫入資料庫，只在讀取時由 EffectiveStatus 推導
	InvitationStatusExpired InvitationStatus = "expired"
)

// Decided 回報邀請是否已由受邀者定案（accepted/declined 為終態）
func (i *Invitation) Decided() bool {
	return i.Status == InvitationStatusAccepted || i.Status == InvitationStatusDeclined
}

// EffectiveStatus 計算讀取時的有效狀態。
// 仍為 pending 但已過期的邀請顯示為 expired，儲存的狀態欄位不變。
func (i *Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Status == InvitationStatusPending && !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now) {
		return InvitationStatusExpired
	}
	return i.Status
}

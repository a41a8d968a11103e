package models

import (
	"gorm.io/gorm"
)

// Poll 表示屬於某場座談的即時投票
type Poll struct {
	gorm.Model
	PanelID  uint         `gorm:"index;not null" json:"panel_id"`
	Question string       `gorm:"not null" json:"question"`
	Options  []PollOption `gorm:"foreignKey:PollID" json:"options"`
}

// PollOption 表示投票的一個選項，Position 保留建立時的順序
type PollOption struct {
	gorm.Model
	PollID   uint       `gorm:"index;not null" json:"poll_id"`
	Label    string     `gorm:"not null" json:"label"`
	Position int        `json:"position"`
	Votes    []PollVote `gorm:"foreignKey:OptionID" json:"votes"`
}

// PollVote 表示一張票。VoterID 為 nil 時代表匿名投票
type PollVote struct {
	gorm.Model
	OptionID uint  `gorm:"index;not null" json:"option_id"`
	VoterID  *uint `gorm:"index" json:"voter_id"`
}

package models

import (
	"gorm.io/gorm"
)

// Question 表示觀眾對座談提出的問題
type Question struct {
	gorm.Model
	PanelID       uint               `gorm:"index;not null" json:"panel_id"`
	Content       string             `gorm:"type:text;not null" json:"content"`
	IsAnonymous   bool               `json:"is_anonymous"`
	IsAnswered    bool               `json:"is_answered"`
	AuthorName    string             `json:"author_name,omitempty"`
	PanelistEmail string             `json:"panelist_email,omitempty"` // 負責回答的與談人
	Responses     []QuestionResponse `gorm:"foreignKey:QuestionID" json:"responses"`
}

// QuestionResponse 表示對問題的一則回覆
type QuestionResponse struct {
	gorm.Model
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
}

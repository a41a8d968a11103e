package models

import (
	"strings"

	"gorm.io/gorm"
)

// User 表示系統中的已認證使用者
type User struct {
	gorm.Model         // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Email       string `gorm:"uniqueIndex;not null" json:"email"` // 電子郵件，必須唯一，作為跨資料表的比對鍵
	Password    string `gorm:"not null" json:"-"`                 // 密碼，json 序列化時會被忽略
	DisplayName string `json:"display_name"`                      // 顯示名稱
}

// EmailEquals 以不分大小寫的方式比較電子郵件
func (u *User) EmailEquals(email string) bool {
	return strings.EqualFold(u.Email, email)
}

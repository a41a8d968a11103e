package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotAuthorized 表示主體缺少此操作所需的角色
	ErrNotAuthorized = errors.New("沒有執行此操作的權限")
	// ErrValidation 表示必填欄位缺漏，在任何網路呼叫之前就檢查
	ErrValidation = errors.New("必填欄位缺漏")
	// ErrNotFound 表示查無資料
	ErrNotFound = errors.New("資料不存在")
	// ErrInvalidStatusChange 表示不合法的座談狀態轉換
	ErrInvalidStatusChange = errors.New("不合法的狀態轉換")
	// ErrInvitationDecided 表示邀請已由受邀者定案（accepted/declined 為終態）
	ErrInvitationDecided = errors.New("邀請已定案，無法再變更")
	// ErrInvitationExpired 表示邀請已過期，無法回覆
	ErrInvitationExpired = errors.New("邀請已過期")
)

// mapNotFound 把儲存層的查無資料錯誤轉換為服務層錯誤
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

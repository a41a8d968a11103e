package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"panel_web/internal/models"
	"panel_web/internal/service"
)

// currentUser 從認證中間件寫入的上下文重建當前主體。
// 角色判斷只需要 ID 與電子郵件，不必每個請求都查一次資料庫。
func currentUser(c *gin.Context) *models.User {
	userID, _ := c.Get("userID")
	email, _ := c.Get("userEmail")

	user := &models.User{}
	if id, ok := userID.(uint); ok {
		user.ID = id
	}
	if e, ok := email.(string); ok {
		user.Email = e
	}
	return user
}

// respondError 把服務層錯誤轉換為對應的 HTTP 回應。
// 所有儲存層失敗都在這裡被攔截並轉為使用者可見的訊息，不往上傳播。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidStatusChange),
		errors.Is(err, service.ErrInvitationDecided),
		errors.Is(err, service.ErrInvitationExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "操作失敗，請稍後再試"})
	}
}

package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"panel_web/internal/service"
)

// SessionHandler 處理與錄音成品相關的請求
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler 創建一個新的 SessionHandler 實例
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// SaveRecording 儲存錄音成品：先上傳物件儲存，成功後才寫中繼資料
func (h *SessionHandler) SaveRecording(c *gin.Context) {
	var input struct {
		PanelID          uint     `json:"panel_id" binding:"required"`
		Title            string   `json:"title" binding:"required"`
		Description      string   `json:"description"`
		Audio            string   `json:"audio" binding:"required"` // base64 編碼的音訊
		MimeType         string   `json:"mime_type" binding:"required"`
		DurationSeconds  int      `json:"duration"`
		IsPublic         bool     `json:"is_public"`
		RecordingQuality string   `json:"recording_quality"`
		Tags             []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, err := base64.StdEncoding.DecodeString(input.Audio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "音訊內容不是合法的 base64"})
		return
	}

	session, err := h.sessionService.SaveRecording(c.Request.Context(), currentUser(c), service.SaveRecordingInput{
		PanelID:          input.PanelID,
		Title:            input.Title,
		Description:      input.Description,
		Artifact:         service.Artifact{Bytes: audio, MimeType: input.MimeType},
		DurationSeconds:  input.DurationSeconds,
		IsPublic:         input.IsPublic,
		RecordingQuality: input.RecordingQuality,
		Tags:             input.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// MySessions 列出當前主體的所有錄音
func (h *SessionHandler) MySessions(c *gin.Context) {
	sessions, err := h.sessionService.MySessions(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession 取得單一錄音
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, err := parseID(c)
	if err != nil {
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Transcribe 對已完成的錄音產生逐字稿
func (h *SessionHandler) Transcribe(c *gin.Context) {
	sessionID, err := parseID(c)
	if err != nil {
		return
	}

	session, err := h.sessionService.Transcribe(c.Request.Context(), currentUser(c), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateTranscript 儲存使用者編輯後的逐字稿
func (h *SessionHandler) UpdateTranscript(c *gin.Context) {
	sessionID, err := parseID(c)
	if err != nil {
		return
	}

	var input struct {
		Transcript string `json:"transcript" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.UpdateTranscript(c.Request.Context(), currentUser(c), sessionID, input.Transcript)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panel_web/internal/service"
)

// PollHandler 處理與投票相關的請求
type PollHandler struct {
	pollService *service.PollService
}

// NewPollHandler 創建一個新的 PollHandler 實例
func NewPollHandler(pollService *service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// CreatePoll 建立投票與選項，僅限座談的擁有者或主持人
func (h *PollHandler) CreatePoll(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	var input struct {
		Question string   `json:"question" binding:"required"`
		Options  []string `json:"options" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.pollService.CreatePoll(c.Request.Context(), currentUser(c), panelID, input.Question, input.Options)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// ListByPanel 列出座談的所有投票聚合結果。
// 加上 ?sort=votes 時依總票數排序（穩定排序，同票保持原順序）。
func (h *PollHandler) ListByPanel(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	results, err := h.pollService.ListByPanel(c.Request.Context(), panelID)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("sort") == "votes" {
		service.SortByVotes(results)
	}
	c.JSON(http.StatusOK, results)
}

// GetPoll 取得單一投票的聚合結果
func (h *PollHandler) GetPoll(c *gin.Context) {
	pollID, err := parseID(c)
	if err != nil {
		return
	}

	result, err := h.pollService.GetPoll(c.Request.Context(), pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeletePoll 刪除投票，僅限座談擁有者
func (h *PollHandler) DeletePoll(c *gin.Context) {
	pollID, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.pollService.DeletePoll(c.Request.Context(), currentUser(c), pollID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "投票已刪除"})
}

// Vote 對選項投下一票，帶 ?anonymous=true 時不記錄投票者
func (h *PollHandler) Vote(c *gin.Context) {
	optionID, err := parseID(c)
	if err != nil {
		return
	}

	user := currentUser(c)
	if c.Query("anonymous") == "true" {
		user = nil
	}

	if err := h.pollService.Vote(c.Request.Context(), user, optionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "投票成功"})
}

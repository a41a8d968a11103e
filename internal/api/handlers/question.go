package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panel_web/internal/service"
)

// QuestionHandler 處理與觀眾提問相關的請求
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler 創建一個新的 QuestionHandler 實例
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListByPanel 列出座談的所有問題
func (h *QuestionHandler) ListByPanel(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	questions, err := h.questionService.ListByPanel(c.Request.Context(), panelID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestion 處理觀眾提問
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	var input struct {
		Content       string `json:"content" binding:"required"`
		IsAnonymous   bool   `json:"is_anonymous"`
		AuthorName    string `json:"author_name"`
		PanelistEmail string `json:"panelist_email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), service.QuestionInput{
		PanelID:       panelID,
		Content:       input.Content,
		IsAnonymous:   input.IsAnonymous,
		AuthorName:    input.AuthorName,
		PanelistEmail: input.PanelistEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// ToggleAnswered 切換問題的已回答狀態，僅限被指派的與談人
func (h *QuestionHandler) ToggleAnswered(c *gin.Context) {
	questionID, err := parseID(c)
	if err != nil {
		return
	}

	question, err := h.questionService.ToggleAnswered(c.Request.Context(), currentUser(c), questionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// AddResponse 在問題下新增一則回覆
func (h *QuestionHandler) AddResponse(c *gin.Context) {
	questionID, err := parseID(c)
	if err != nil {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.questionService.AddResponse(c.Request.Context(), questionID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

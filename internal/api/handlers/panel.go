package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"panel_web/internal/models"
	"panel_web/internal/service"
)

// PanelHandler 處理與座談相關的請求
type PanelHandler struct {
	panelService    *service.PanelService
	planningService *service.PlanningService
}

// NewPanelHandler 創建一個新的 PanelHandler 實例
func NewPanelHandler(panelService *service.PanelService, planningService *service.PlanningService) *PanelHandler {
	return &PanelHandler{
		panelService:    panelService,
		planningService: planningService,
	}
}

type panelInput struct {
	Title             string              `json:"title" binding:"required"`
	Description       string              `json:"description"`
	Date              string              `json:"date" binding:"required"`
	Time              string              `json:"time" binding:"required"`
	Duration          int                 `json:"duration"`
	ParticipantsLimit int                 `json:"participants_limit"`
	Category          string              `json:"category"`
	Tags              []string            `json:"tags"`
	ModeratorEmail    string              `json:"moderator_email"`
	Panelists         models.PanelistList `json:"panelists"`
}

func (in *panelInput) toServiceInput() service.PanelInput {
	return service.PanelInput{
		Title:             in.Title,
		Description:       in.Description,
		Date:              in.Date,
		Time:              in.Time,
		Duration:          in.Duration,
		ParticipantsLimit: in.ParticipantsLimit,
		Category:          in.Category,
		Tags:              in.Tags,
		ModeratorEmail:    in.ModeratorEmail,
		Panelists:         in.Panelists,
	}
}

// CreatePanel 處理創建新座談的請求
func (h *PanelHandler) CreatePanel(c *gin.Context) {
	var input panelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	panel, err := h.panelService.CreatePanel(c.Request.Context(), currentUser(c), input.toServiceInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, panel)
}

// GetPanel 處理獲取座談訊息的請求
func (h *PanelHandler) GetPanel(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	panel, err := h.panelService.GetPanel(c.Request.Context(), panelID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, panel)
}

// ListPanels 處理獲取座談列表的請求
func (h *PanelHandler) ListPanels(c *gin.Context) {
	panels, err := h.panelService.ListPanels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, panels)
}

// UpdatePanel 處理更新座談的請求，僅限擁有者
func (h *PanelHandler) UpdatePanel(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	var input panelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	panel, err := h.panelService.UpdatePanel(c.Request.Context(), currentUser(c), panelID, input.toServiceInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, panel)
}

// ChangeStatus 處理座談狀態轉換的請求
func (h *PanelHandler) ChangeStatus(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	var input struct {
		Status models.PanelStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	panel, err := h.panelService.ChangeStatus(c.Request.Context(), currentUser(c), panelID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, panel)
}

// DeletePanel 處理刪除座談的請求，僅限擁有者，不可復原
func (h *PanelHandler) DeletePanel(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.panelService.DeletePanel(c.Request.Context(), currentUser(c), panelID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "座談已刪除"})
}

// MyPlanning 回傳當前主體的完整行程集合
func (h *PanelHandler) MyPlanning(c *gin.Context) {
	set, err := h.planningService.BuildUserPanelSet(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// MyUpcoming 回傳行程中今天（含）之後的座談
func (h *PanelHandler) MyUpcoming(c *gin.Context) {
	set, err := h.planningService.UpcomingPanels(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// parseID 解析路徑中的 :id 參數，失敗時直接回應 400
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return 0, err
	}
	return uint(id), nil
}

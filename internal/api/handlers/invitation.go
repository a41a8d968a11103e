package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panel_web/internal/service"
)

// InvitationHandler 處理與邀請相關的請求
type InvitationHandler struct {
	invitationService *service.InvitationService
}

// NewInvitationHandler 創建一個新的 InvitationHandler 實例
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Invite 處理建立邀請的請求，僅限座談的擁有者或主持人
func (h *InvitationHandler) Invite(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.invitationService.Invite(c.Request.Context(), currentUser(c), panelID, input.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// MyInvitations 列出當前主體收到的邀請
func (h *InvitationHandler) MyInvitations(c *gin.Context) {
	invitations, err := h.invitationService.MyInvitations(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invitations)
}

// PanelInvitations 列出某場座談的所有邀請
func (h *InvitationHandler) PanelInvitations(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	invitations, err := h.invitationService.PanelInvitations(c.Request.Context(), currentUser(c), panelID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invitations)
}

// Respond 處理接受或拒絕邀請的請求
func (h *InvitationHandler) Respond(c *gin.Context) {
	invitationID, err := parseID(c)
	if err != nil {
		return
	}

	var input struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.invitationService.Respond(c.Request.Context(), currentUser(c), invitationID, *input.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitation)
}

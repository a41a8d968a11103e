package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"panel_web/internal/models"
	"panel_web/internal/repository"
)

// 邀請預設的有效期限
const defaultInvitationTTL = 7 * 24 * time.Hour

type InvitationService struct {
	invitationRepo repository.InvitationRepository
	panelRepo      repository.PanelRepository
	now            func() time.Time
}

func NewInvitationService(invitationRepo repository.InvitationRepository, panelRepo repository.PanelRepository) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		panelRepo:      panelRepo,
		now:            time.Now,
	}
}

// InvitationView 是邀請的讀取視圖，Status 已套用過期覆蓋
type InvitationView struct {
	models.Invitation
	EffectiveStatus models.InvitationStatus `json:"effective_status"`
}

// Invite 建立新邀請，僅限座談的擁有者或主持人
func (s *InvitationService) Invite(ctx context.Context, user *models.User, panelID uint, email string) (*models.Invitation, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email", ErrValidation)
	}

	panel, err := s.panelRepo.FindByID(ctx, panelID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !CanManagePolls(user, panel) {
		return nil, ErrNotAuthorized
	}

	invitation := &models.Invitation{
		PanelID:       panelID,
		PanelistEmail: email,
		Status:        models.InvitationStatusPending,
		ExpiresAt:     s.now().Add(defaultInvitationTTL),
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}
	slog.Info("invitation created", "invitation_id", invitation.ID, "panel_id", panelID)
	return invitation, nil
}

// MyInvitations 列出主體收到的邀請，狀態套用讀取時的過期覆蓋
func (s *InvitationService) MyInvitations(ctx context.Context, user *models.User) ([]InvitationView, error) {
	invitations, err := s.invitationRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]InvitationView, 0, len(invitations))
	for _, inv := range invitations {
		views = append(views, InvitationView{
			Invitation:      inv,
			EffectiveStatus: inv.EffectiveStatus(now),
		})
	}
	return views, nil
}

// Respond 接受或拒絕邀請，僅限受邀者本人（電子郵件不分大小寫比對）。
// accepted/declined 為終態，定案後不可再變更；已過期的邀請無法回覆。
func (s *InvitationService) Respond(ctx context.Context, user *models.User, invitationID uint, accept bool) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !user.EmailEquals(invitation.PanelistEmail) {
		return nil, ErrNotAuthorized
	}
	if invitation.Decided() {
		return nil, ErrInvitationDecided
	}
	if invitation.EffectiveStatus(s.now()) == models.InvitationStatusExpired {
		return nil, ErrInvitationExpired
	}

	status := models.InvitationStatusDeclined
	if accept {
		status = models.InvitationStatusAccepted
	}
	if err := s.invitationRepo.UpdateStatus(ctx, invitationID, status); err != nil {
		return nil, err
	}

	invitation.Status = status
	slog.Info("invitation responded", "invitation_id", invitationID, "status", status)
	return invitation, nil
}

// PanelInvitations 列出某場座談的所有邀請，僅限擁有者或主持人
func (s *InvitationService) PanelInvitations(ctx context.Context, user *models.User, panelID uint) ([]InvitationView, error) {
	panel, err := s.panelRepo.FindByID(ctx, panelID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !CanManagePolls(user, panel) {
		return nil, ErrNotAuthorized
	}

	invitations, err := s.invitationRepo.FindByPanelID(ctx, panelID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]InvitationView, 0, len(invitations))
	for _, inv := range invitations {
		views = append(views, InvitationView{
			Invitation:      inv,
			EffectiveStatus: inv.EffectiveStatus(now),
		})
	}
	return views, nil
}

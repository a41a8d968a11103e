package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"panel_web/internal/models"
	"panel_web/internal/repository"
)

type PanelService struct {
	panelRepo repository.PanelRepository
}

func NewPanelService(panelRepo repository.PanelRepository) *PanelService {
	return &PanelService{panelRepo: panelRepo}
}

// PanelInput 定義建立或更新座談的欄位
type PanelInput struct {
	Title             string
	Description       string
	Date              string
	Time              string
	Duration          int
	ParticipantsLimit int
	Category          string
	Tags              []string
	ModeratorEmail    string
	Panelists         models.PanelistList
}

// validate 在任何網路呼叫之前檢查必填欄位，避免浪費來回
func (in *PanelInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title", ErrValidation)
	}
	if strings.TrimSpace(in.Date) == "" {
		return fmt.Errorf("%w: date", ErrValidation)
	}
	if strings.TrimSpace(in.Time) == "" {
		return fmt.Errorf("%w: time", ErrValidation)
	}
	return nil
}

func (s *PanelService) CreatePanel(ctx context.Context, owner *models.User, input PanelInput) (*models.Panel, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	panel := &models.Panel{
		Title:             input.Title,
		Description:       input.Description,
		Date:              input.Date,
		Time:              input.Time,
		Duration:          input.Duration,
		ParticipantsLimit: input.ParticipantsLimit,
		Category:          input.Category,
		Tags:              input.Tags,
		Status:            models.PanelStatusDraft,
		OwnerID:           owner.ID,
		ModeratorEmail:    input.ModeratorEmail,
		Panelists:         input.Panelists,
	}

	if err := s.panelRepo.Create(ctx, panel); err != nil {
		return nil, err
	}
	slog.Info("panel created", "panel_id", panel.ID, "owner_id", owner.ID)
	return panel, nil
}

func (s *PanelService) GetPanel(ctx context.Context, id uint) (*models.Panel, error) {
	panel, err := s.panelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return panel, nil
}

func (s *PanelService) ListPanels(ctx context.Context) ([]models.Panel, error) {
	return s.panelRepo.FindAll(ctx)
}

// UpdatePanel 更新座談內容，僅限擁有者
func (s *PanelService) UpdatePanel(ctx context.Context, user *models.User, id uint, input PanelInput) (*models.Panel, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	panel, err := s.panelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !CanManagePanel(user, panel) {
		return nil, ErrNotAuthorized
	}

	panel.Title = input.Title
	panel.Description = input.Description
	panel.Date = input.Date
	panel.Time = input.Time
	panel.Duration = input.Duration
	panel.ParticipantsLimit = input.ParticipantsLimit
	panel.Category = input.Category
	panel.Tags = input.Tags
	panel.ModeratorEmail = input.ModeratorEmail
	panel.Panelists = input.Panelists

	if err := s.panelRepo.Update(ctx, panel); err != nil {
		return nil, err
	}
	return panel, nil
}

// ChangeStatus 變更座談狀態，僅限擁有者，且必須是合法的轉換
func (s *PanelService) ChangeStatus(ctx context.Context, user *models.User, id uint, next models.PanelStatus) (*models.Panel, error) {
	panel, err := s.panelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !CanManagePanel(user, panel) {
		return nil, ErrNotAuthorized
	}
	if !panel.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidStatusChange, panel.Status, next)
	}

	panel.Status = next
	if err := s.panelRepo.Update(ctx, panel); err != nil {
		return nil, err
	}
	slog.Info("panel status changed", "panel_id", panel.ID, "status", next)
	return panel, nil
}

// DeletePanel 刪除座談，僅限擁有者，不可復原
func (s *PanelService) DeletePanel(ctx context.Context, user *models.User, id uint) error {
	panel, err := s.panelRepo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if !CanManagePanel(user, panel) {
		return ErrNotAuthorized
	}
	return s.panelRepo.Delete(ctx, id)
}

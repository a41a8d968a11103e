package repository

import (
	"context"

	"panel_web/internal/models"
	"panel_web/internal/storage"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	FindByID(ctx context.Context, id uint) (*models.Invitation, error)
	FindByEmail(ctx context.Context, email string) ([]models.Invitation, error)
	FindAcceptedByEmail(ctx context.Context, email string) ([]models.Invitation, error)
	FindByPanelID(ctx context.Context, panelID uint) ([]models.Invitation, error)
	UpdateStatus(ctx context.Context, id uint, status models.InvitationStatus) error
}

type invitationRepository struct {
	db *storage.PostgresDB
}

func NewInvitationRepository(db *storage.PostgresDB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(invitation).Error
	})
}

func (r *invitationRepository) FindByID(ctx context.Context, id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&invitation, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("lower(panelist_email) = lower(?)", email).
			Order("created_at DESC").
			Find(&invitations).Error
	})
	return invitations, err
}

func (r *invitationRepository) FindAcceptedByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("lower(panelist_email) = lower(?) AND status = ?", email, models.InvitationStatusAccepted).
			Find(&invitations).Error
	})
	return invitations, err
}

func (r *invitationRepository) FindByPanelID(ctx context.Context, panelID uint) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("panel_id = ?", panelID).
			Order("created_at DESC").
			Find(&invitations).Error
	})
	return invitations, err
}

// UpdateStatus 只更新狀態欄位，邀請本身永不刪除
func (r *invitationRepository) UpdateStatus(ctx context.Context, id uint, status models.InvitationStatus) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Model(&models.Invitation{}).
			Where("id = ?", id).
			Update("status", status).Error
	})
}

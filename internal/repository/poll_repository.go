package repository

import (
	"context"

	"gorm.io/gorm"

	"panel_web/internal/models"
	"panel_web/internal/storage"
)

func orderOptions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

type PollRepository interface {
	Create(ctx context.Context, poll *models.Poll) error
	FindByID(ctx context.Context, id uint) (*models.Poll, error)
	FindByPanelID(ctx context.Context, panelID uint) ([]models.Poll, error)
	FindOptionByID(ctx context.Context, id uint) (*models.PollOption, error)
	Delete(ctx context.Context, id uint) error
	AddVote(ctx context.Context, vote *models.PollVote) error
}

type pollRepository struct {
	db *storage.PostgresDB
}

func NewPollRepository(db *storage.PostgresDB) PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) Create(ctx context.Context, poll *models.Poll) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(poll).Error
	})
}

// FindByID 一次取回投票、其選項與每個選項的票。
// 選項依建立時的 Position 排序，保留插入順序。
func (r *pollRepository) FindByID(ctx context.Context, id uint) (*models.Poll, error) {
	var poll models.Poll
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Preload("Options", orderOptions).
			Preload("Options.Votes").
			First(&poll, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepository) FindByPanelID(ctx context.Context, panelID uint) ([]models.Poll, error) {
	var polls []models.Poll
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Preload("Options", orderOptions).
			Preload("Options.Votes").
			Where("panel_id = ?", panelID).
			Order("created_at DESC").
			Find(&polls).Error
	})
	return polls, err
}

func (r *pollRepository) FindOptionByID(ctx context.Context, id uint) (*models.PollOption, error) {
	var option models.PollOption
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&option, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *pollRepository) Delete(ctx context.Context, id uint) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Delete(&models.Poll{}, id).Error
	})
}

func (r *pollRepository) AddVote(ctx context.Context, vote *models.PollVote) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(vote).Error
	})
}

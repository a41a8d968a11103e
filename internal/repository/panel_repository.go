package repository

import (
	"context"

	"panel_web/internal/models"
	"panel_web/internal/storage"
)

type PanelRepository interface {
	Create(ctx context.Context, panel *models.Panel) error
	FindByID(ctx context.Context, id uint) (*models.Panel, error)
	Update(ctx context.Context, panel *models.Panel) error
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.Panel, error)
}

type panelRepository struct {
	db *storage.PostgresDB
}

func NewPanelRepository(db *storage.PostgresDB) PanelRepository {
	return &panelRepository{db: db}
}

func (r *panelRepository) Create(ctx context.Context, panel *models.Panel) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(panel).Error
	})
}

func (r *panelRepository) FindByID(ctx context.Context, id uint) (*models.Panel, error) {
	var panel models.Panel
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&panel, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &panel, nil
}

func (r *panelRepository) Update(ctx context.Context, panel *models.Panel) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Save(panel).Error
	})
}

func (r *panelRepository) Delete(ctx context.Context, id uint) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Delete(&models.Panel{}, id).Error
	})
}

// FindAll 查詢所有座談，依建立時間由新到舊排序
func (r *panelRepository) FindAll(ctx context.Context) ([]models.Panel, error) {
	var panels []models.Panel
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Order("created_at DESC").Find(&panels).Error
	})
	return panels, err
}

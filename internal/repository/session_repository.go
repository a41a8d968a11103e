package repository

import (
	"context"

	"panel_web/internal/models"
	"panel_web/internal/storage"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.RecordingSession) error
	FindByID(ctx context.Context, id uint) (*models.RecordingSession, error)
	FindByPanelistID(ctx context.Context, panelistID uint) ([]models.RecordingSession, error)
	Update(ctx context.Context, session *models.RecordingSession) error
}

type sessionRepository struct {
	db *storage.PostgresDB
}

func NewSessionRepository(db *storage.PostgresDB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.RecordingSession) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(session).Error
	})
}

func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*models.RecordingSession, error) {
	var session models.RecordingSession
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&session, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByPanelistID(ctx context.Context, panelistID uint) ([]models.RecordingSession, error) {
	var sessions []models.RecordingSession
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("panelist_id = ?", panelistID).
			Order("created_at DESC").
			Find(&sessions).Error
	})
	return sessions, err
}

func (r *sessionRepository) Update(ctx context.Context, session *models.RecordingSession) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Save(session).Error
	})
}

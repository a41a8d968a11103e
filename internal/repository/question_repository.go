package repository

import (
	"context"

	"panel_web/internal/models"
	"panel_web/internal/storage"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	FindByID(ctx context.Context, id uint) (*models.Question, error)
	FindByPanelID(ctx context.Context, panelID uint) ([]models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	AddResponse(ctx context.Context, response *models.QuestionResponse) error
}

type questionRepository struct {
	db *storage.PostgresDB
}

func NewQuestionRepository(db *storage.PostgresDB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(question).Error
	})
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Preload("Responses").
			First(&question, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByPanelID(ctx context.Context, panelID uint) ([]models.Question, error) {
	var questions []models.Question
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Preload("Responses").
			Where("panel_id = ?", panelID).
			Order("created_at DESC").
			Find(&questions).Error
	})
	return questions, err
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Save(question).Error
	})
}

func (r *questionRepository) AddResponse(ctx context.Context, response *models.QuestionResponse) error {
	return withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(response).Error
	})
}

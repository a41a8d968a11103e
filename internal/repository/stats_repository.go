package repository

import (
	"context"

	"panel_web/internal/storage"
)

// UserStats 是伺服器端聚合函式回傳的每使用者統計，
// 這裡只負責讀取，不重新實作計算
type UserStats struct {
	TotalPanelsModerated int     `json:"total_panels_moderated"`
	TotalParticipants    int     `json:"total_participants"`
	AverageRating        float64 `json:"average_rating"`
	QuestionsAnswered    int     `json:"questions_answered"`
}

type StatsRepository interface {
	UserStats(ctx context.Context, userID uint) (*UserStats, error)
}

type statsRepository struct {
	db *storage.PostgresDB
}

func NewStatsRepository(db *storage.PostgresDB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) UserStats(ctx context.Context, userID uint) (*UserStats, error) {
	var stats UserStats
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Raw("SELECT * FROM get_user_stats(?)", userID).
			Scan(&stats).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

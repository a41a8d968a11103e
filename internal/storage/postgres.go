package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PostgresDB struct {
	*gorm.DB
}

func NewPostgresDB(host, user, password, dbname string, port int) (*PostgresDB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		host, user, password, dbname, port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return &PostgresDB{DB: db}, nil
}

func (db *PostgresDB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate 自動遷移資料庫結構
func (db *PostgresDB) AutoMigrate(models ...interface{}) error {
	return db.DB.AutoMigrate(models...)
}

// EnsureUserStatsFunction 建立伺服器端的每使用者統計聚合函式。
// 統計在資料庫端計算，應用層只做不透明的讀取。
func (db *PostgresDB) EnsureUserStatsFunction() error {
	// TODO: 評分表建立後把 average_rating 改為實際平均
	return db.DB.Exec(`
CREATE OR REPLACE FUNCTION get_user_stats(uid bigint)
RETURNS TABLE (
	total_panels_moderated bigint,
	total_participants bigint,
	average_rating numeric,
	questions_answered bigint
)
LANGUAGE sql STABLE
AS $$
	SELECT
		(SELECT count(*) FROM panels p
			JOIN users u ON lower(p.moderator_email) = lower(u.email)
			WHERE u.id = uid AND p.deleted_at IS NULL),
		(SELECT coalesce(sum(p.participants_limit), 0) FROM panels p
			WHERE p.owner_id = uid AND p.deleted_at IS NULL),
		0::numeric,
		(SELECT count(*) FROM questions q
			JOIN users u ON lower(q.panelist_email) = lower(u.email)
			WHERE u.id = uid AND q.is_answered AND q.deleted_at IS NULL)
$$;
`).Error
}

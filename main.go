package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"panel_web/internal/api"
	"panel_web/internal/middleware"
	"panel_web/internal/models"
	"panel_web/internal/repository"
	"panel_web/internal/service"
	"panel_web/internal/storage"
	"panel_web/internal/transcriber"
	"panel_web/internal/utils"
	"panel_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	utils.SetSecret(cfg.JWT.Secret)

	// 初始化資料庫連接
	// 使用配置中的信息建立到 PostgreSQL 數據庫的連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 根據定義的模型自動創建或更新數據庫表結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Panel{},
		&models.Invitation{},
		&models.Question{},
		&models.QuestionResponse{},
		&models.Poll{},
		&models.PollOption{},
		&models.PollVote{},
		&models.RecordingSession{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}
	if err := db.EnsureUserStatsFunction(); err != nil {
		log.Fatalf("Failed to create stats function: %v", err)
	}

	// 初始化物件儲存，錄音成品會上傳到這裡
	store, err := storage.NewGCSStore(context.Background(), cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}
	defer store.Close()

	// 語音辨識供應商，負責把錄音轉為逐字稿
	stt := transcriber.NewCloudSpeechTranscriber(transcriber.CloudSpeechConfig{
		ProjectID:       cfg.Speech.ProjectID,
		CredentialsJSON: cfg.Speech.CredentialsJSON,
		Language:        cfg.Speech.Language,
		Location:        cfg.Speech.Location,
		Model:           cfg.Speech.Model,
	})

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, store, stt)

	// 設置 Gin 路由
	r := gin.Default()
	r.Use(middleware.MetricsMiddleware())
	api.SetupRoutes(r, services, repos)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

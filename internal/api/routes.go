package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"panel_web/internal/api/handlers"
	"panel_web/internal/middleware"
	"panel_web/internal/repository"
	"panel_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, repos *repository.Repositories) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User, repos.Stats)
	panelHandler := handlers.NewPanelHandler(services.Panel, services.Planning)
	invitationHandler := handlers.NewInvitationHandler(services.Invitation)
	questionHandler := handlers.NewQuestionHandler(services.Question)
	pollHandler := handlers.NewPollHandler(services.Poll)
	sessionHandler := handlers.NewSessionHandler(services.Session)
	wsHandler := handlers.NewWebSocketHandler(services.ChangeFeed)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Prometheus 指標
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 當前主體
		authorized.GET("/me", authHandler.Me)
		authorized.PUT("/me/password", authHandler.UpdatePassword)
		authorized.GET("/me/stats", authHandler.MyStats)

		// 行程視圖
		authorized.GET("/planning", panelHandler.MyPlanning)
		authorized.GET("/planning/upcoming", panelHandler.MyUpcoming)

		// 座談相關
		panels := authorized.Group("/panels")
		{
			panels.GET("", panelHandler.ListPanels)
			panels.POST("", panelHandler.CreatePanel)
			panels.GET("/:id", panelHandler.GetPanel)
			panels.PUT("/:id", panelHandler.UpdatePanel)
			panels.PUT("/:id/status", panelHandler.ChangeStatus)
			panels.DELETE("/:id", panelHandler.DeletePanel)

			// 座談下的邀請
			panels.POST("/:id/invitations", invitationHandler.Invite)
			panels.GET("/:id/invitations", invitationHandler.PanelInvitations)

			// 座談下的問題與投票
			panels.GET("/:id/questions", questionHandler.ListByPanel)
			panels.POST("/:id/questions", questionHandler.CreateQuestion)
			panels.GET("/:id/polls", pollHandler.ListByPanel)
			panels.POST("/:id/polls", pollHandler.CreatePoll)

			// 變更通知訂閱
			panels.GET("/:id/ws", wsHandler.Subscribe)
		}

		// 邀請回覆
		invitations := authorized.Group("/invitations")
		{
			invitations.GET("", invitationHandler.MyInvitations)
			invitations.POST("/:id/respond", invitationHandler.Respond)
		}

		// 問題操作
		questions := authorized.Group("/questions")
		{
			questions.PUT("/:id/answered", questionHandler.ToggleAnswered)
			questions.POST("/:id/responses", questionHandler.AddResponse)
		}

		// 投票操作
		polls := authorized.Group("/polls")
		{
			polls.GET("/:id", pollHandler.GetPoll)
			polls.DELETE("/:id", pollHandler.DeletePoll)
			polls.POST("/options/:id/vote", pollHandler.Vote)
		}

		// 錄音相關
		sessions := authorized.Group("/sessions")
		{
			sessions.GET("", sessionHandler.MySessions)
			sessions.POST("", sessionHandler.SaveRecording)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.POST("/:id/transcribe", sessionHandler.Transcribe)
			sessions.PUT("/:id/transcript", sessionHandler.UpdateTranscript)
		}
	}
}

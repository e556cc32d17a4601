package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/config"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/handler"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/middleware"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/response"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Interview *handler.InterviewHandler
	Admin     *handler.AdminHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokens *service.TokenService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for interview starts (10 requests per minute per IP).
	startLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Interview Group ────────────────────────────────────────────
	interviewAPI := router.Group("/api/v1/interview")
	{
		interviewAPI.POST("/start", startLimiter.Middleware(), handlers.Interview.Start)

		// Session-token protected routes
		protected := interviewAPI.Group("")
		protected.Use(middleware.RequireInterviewToken(tokens))
		{
			protected.GET("/question", handlers.Interview.GetQuestion)
			protected.POST("/answer", handlers.Interview.SubmitAnswer)
			protected.POST("/finalize", handlers.Interview.Finalize)
		}
	}

	// ─── 2. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireInterviewWSAuth(tokens))
	{
		ws.GET("/interview/stream", handlers.WS.InterviewStream)
	}

	// ─── 3. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	{
		adminAPI.GET("/records", handlers.Admin.ListRecords)
		adminAPI.GET("/records/:email", handlers.Admin.GetRecord)
	}

	return router
}

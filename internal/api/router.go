package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Production        bool
	MaxRequestsPerMin int
}

// NewRouter builds the gin engine with middleware and every advisor route.
// Callers may register further routes (the A2A endpoint) on the result.
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.Use(RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-Info", "Apikey"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(RateLimit(cfg.MaxRequestsPerMin, logger))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/documents", h.ProcessDocument)
		api.GET("/chat/suggestions", h.Suggestions)
		api.GET("/updates", h.Updates)
	}

	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/transition", h.Transition)
		sessions.PUT("/:id/profile", h.SetProfile)
		sessions.POST("/:id/documents", h.AttachDocument)
		sessions.POST("/:id/analysis", h.Analyze)
		sessions.GET("/:id/questions", h.Questions)
		sessions.POST("/:id/email", h.GenerateEmail)
		sessions.PUT("/:id/email", h.EditEmail)
		sessions.GET("/:id/email/mailto", h.Mailto)
		sessions.POST("/:id/chat", h.Chat)
		sessions.DELETE("/:id/chat", h.ResetChat)
	}

	return r
}

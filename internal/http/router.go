package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/navneetha-rajan/mindmate/internal/http/handlers"
	httpMW "github.com/navneetha-rajan/mindmate/internal/http/middleware"
	"github.com/navneetha-rajan/mindmate/internal/observability"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	CORSOrigins    []string
	RequestTimeout time.Duration

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	JournalHandler      *httpH.JournalHandler
	ConversationHandler *httpH.ConversationHandler
	InsightsHandler     *httpH.InsightsHandler
	PlanHandler         *httpH.PlanHandler
	MemoryHandler       *httpH.MemoryHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.RequestTimeout(cfg.RequestTimeout))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
			protected.GET("/auth/me", cfg.AuthHandler.Me)
		}

		// Journal
		if h := cfg.JournalHandler; h != nil {
			protected.POST("/journal", h.Create)
			protected.GET("/journal", h.List)
			protected.GET("/journal/weekly-summary", h.WeeklySummary)
			protected.GET("/journal/themes", h.Themes)
			protected.POST("/journal/analyze-text", h.AnalyzeText)
			protected.GET("/journal/analysis/:id", h.Analysis)
			protected.GET("/journal/:id", h.Get)
			protected.DELETE("/journal/:id", h.Delete)
		}

		// Conversation
		if h := cfg.ConversationHandler; h != nil {
			protected.POST("/conversation/start", h.Start)
			protected.POST("/conversation/message", h.Message)
			protected.POST("/conversation/end", h.End)
			protected.GET("/conversation/history", h.History)
			protected.GET("/conversation/suggestions", h.Suggestions)
			protected.GET("/conversation/sessions", h.Sessions)
			protected.GET("/conversation/types", h.Types)
			protected.GET("/conversation/themes", h.Themes)
		}

		// Insights
		if h := cfg.InsightsHandler; h != nil {
			protected.POST("/insights/mood", h.CreateMood)
			protected.GET("/insights/mood", h.ListMoods)
			protected.GET("/insights/mood-analysis", h.MoodAnalysis)
			protected.POST("/insights/habits", h.CreateHabit)
			protected.GET("/insights/habits", h.ListHabits)
			protected.GET("/insights/habit-correlations", h.HabitCorrelations)
			protected.GET("/insights/patterns", h.Patterns)
			protected.GET("/insights/weekly-summary", h.WeeklySummary)
			protected.GET("/insights/stats", h.Stats)
		}

		// Plans
		if h := cfg.PlanHandler; h != nil {
			protected.POST("/plans", h.Create)
			protected.GET("/plans", h.List)
			protected.GET("/plans/current", h.Current)
			protected.POST("/plans/:id/adjust", h.Adjust)
			protected.PATCH("/plans/:id/status", h.UpdateStatus)
		}

		// Memories
		if cfg.MemoryHandler != nil {
			protected.GET("/memories", cfg.MemoryHandler.List)
		}
	}

	return r
}

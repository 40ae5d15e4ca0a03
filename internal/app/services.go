package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation"
	"github.com/navneetha-rajan/mindmate/internal/modules/insights"
	"github.com/navneetha-rajan/mindmate/internal/modules/journal"
	"github.com/navneetha-rajan/mindmate/internal/modules/planner"
	"github.com/navneetha-rajan/mindmate/internal/modules/prompts"
	"github.com/navneetha-rajan/mindmate/internal/observability"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Memory       services.MemoryService
	Journal      services.JournalService
	Conversation services.ConversationService
	Insights     services.InsightsService
	Plan         services.PlanService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	catalog, err := prompts.Load()
	if err != nil {
		return Services{}, fmt.Errorf("load prompts: %w", err)
	}

	// A nil interface must reach analyzer.New, not a typed nil.
	var model analyzer.Model
	var embedder services.Embedder
	if c.OpenAI != nil {
		model = c.OpenAI
		if cfg.EnableEmbeddings {
			embedder = c.OpenAI
		}
	}
	an := analyzer.New(model,
		analyzer.WithLogger(log),
		analyzer.WithMetrics(metrics),
		analyzer.WithTimeout(cfg.LLMTimeout),
		analyzer.WithCatalog(catalog),
	)

	memory := services.NewMemoryService(log, r.Memories, embedder)
	return Services{
		Auth: services.NewAuthService(db, log, r.Users, r.UserTokens,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Memory:  memory,
		Journal: services.NewJournalService(log, r.JournalEntries, memory, journal.NewAgent(an)),
		Conversation: services.NewConversationService(log, r.Conversations, r.JournalEntries, memory,
			conversation.NewAgent(an, c.Transcripts,
				conversation.WithLogger(log),
				conversation.WithMetrics(metrics),
			)),
		Insights: services.NewInsightsService(log, r.MoodEntries, r.HabitEntries, r.JournalEntries, r.Conversations,
			insights.NewAgent(an), services.Features{
				MoodTracking:     cfg.EnableMoodTracking,
				HabitCorrelation: cfg.EnableHabitCorrelation,
			}),
		Plan: services.NewPlanService(log, r.WeeklyPlans, r.JournalEntries, r.MoodEntries, r.Conversations,
			planner.NewAgent(an, planner.WithLogger(log), planner.WithMetrics(metrics))),
	}, nil
}

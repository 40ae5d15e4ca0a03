package app

import (
	httpapi "github.com/navneetha-rajan/mindmate/internal/http"
	httpH "github.com/navneetha-rajan/mindmate/internal/http/handlers"
	httpMW "github.com/navneetha-rajan/mindmate/internal/http/middleware"
	"github.com/navneetha-rajan/mindmate/internal/observability"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

// Version is reported by the root endpoint. Overridden at build time with -ldflags.
var Version = "1.0.0"

func wireServer(log *logger.Logger, cfg Config, s Services, metrics *observability.Metrics) *httpapi.Server {
	log.Info("Wiring HTTP server...")

	rc := httpapi.RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		CORSOrigins:         cfg.CORSOrigins,
		RequestTimeout:      cfg.RequestTimeout,
		AuthHandler:         httpH.NewAuthHandler(s.Auth),
		AuthMiddleware:      httpMW.NewAuthMiddleware(log, s.Auth),
		JournalHandler:      httpH.NewJournalHandler(s.Journal),
		ConversationHandler: httpH.NewConversationHandler(s.Conversation),
		InsightsHandler:     httpH.NewInsightsHandler(s.Insights),
		PlanHandler:         httpH.NewPlanHandler(s.Plan),
		MemoryHandler:       httpH.NewMemoryHandler(s.Memory),
		HealthHandler:       httpH.NewHealthHandler(Version),
	}
	if cfg.OtelEnabled {
		rc.ServiceName = cfg.OtelServiceName
	}
	return httpapi.NewServer(rc)
}

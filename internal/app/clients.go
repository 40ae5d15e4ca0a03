package app

import (
	"fmt"
	"strings"

	"github.com/navneetha-rajan/mindmate/internal/clients/redis"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/openai"
)

type Clients struct {
	// OpenAI is nil when no API key is configured; agents then run on heuristics.
	OpenAI      openai.Client
	Transcripts transcript.Store
	redisStore  *redis.TranscriptStore
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		c, err := openai.NewClient(log, openai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIModel,
			EmbedModel: cfg.OpenAIEmbedModel,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
		out.OpenAI = c
	} else {
		log.Warn("MINDMATE_OPENAI_API_KEY not set; agents will use heuristic analysis")
	}

	switch cfg.SessionStore {
	case SessionStoreRedis:
		rs, err := redis.NewTranscriptStore(log, cfg.RedisAddr, cfg.SessionTTL)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis transcript store: %w", err)
		}
		out.redisStore = rs
		out.Transcripts = rs
	default:
		out.Transcripts = transcript.NewMemoryStore()
	}
	return out, nil
}

func (c Clients) Close() error {
	if c.redisStore != nil {
		return c.redisStore.Close()
	}
	return nil
}

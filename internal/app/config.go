package app

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

const (
	envPrefix = "MINDMATE"

	LogModeProduction = "production"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config is read from MINDMATE_* environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8000"`
	LogMode         string        `envconfig:"LOG_MODE" default:"development"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:"sqlite://mindmate.db"`

	OpenAIAPIKey     string        `envconfig:"OPENAI_API_KEY"`
	OpenAIModel      string        `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
	OpenAIEmbedModel string        `envconfig:"OPENAI_EMBED_MODEL" default:"text-embedding-3-small"`
	OpenAIBaseURL    string        `envconfig:"OPENAI_BASE_URL"`
	LLMTimeout       time.Duration `envconfig:"LLM_TIMEOUT" default:"20s"`

	JWTSecretKey    string        `envconfig:"JWT_SECRET_KEY"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"30m"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"168h"`

	SessionStore string        `envconfig:"SESSION_STORE" default:"memory"`
	RedisAddr    string        `envconfig:"REDIS_ADDR"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	EnableMoodTracking     bool `envconfig:"ENABLE_MOOD_TRACKING" default:"true"`
	EnableHabitCorrelation bool `envconfig:"ENABLE_HABIT_CORRELATION" default:"true"`
	EnableEmbeddings       bool `envconfig:"ENABLE_EMBEDDINGS" default:"false"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`

	OtelEnabled      bool    `envconfig:"OTEL_ENABLED" default:"false"`
	OtelServiceName  string  `envconfig:"OTEL_SERVICE_NAME" default:"mindmate-api"`
	OtelEndpoint     string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure     bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"false"`
	OtelSamplerRatio float64 `envconfig:"OTEL_SAMPLER_RATIO" default:"1"`
}

var errMissingJWTSecret = errors.New("MINDMATE_JWT_SECRET_KEY is required in production")

// LoadConfig reads the environment. Validation happens separately so the
// logger can be built from LogMode first.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.LogMode), LogModeProduction)
}

// Validate checks cross-field rules. Outside production a missing JWT secret
// is replaced with a random one, which invalidates tokens on restart.
func (c *Config) Validate(log *logger.Logger) error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		if c.IsProduction() {
			return errMissingJWTSecret
		}
		c.JWTSecretKey = rand.Text()
		log.Warn("MINDMATE_JWT_SECRET_KEY not set; using a random secret for this process")
	}
	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("session store %q requires MINDMATE_REDIS_ADDR", c.SessionStore)
		}
	default:
		return fmt.Errorf("unknown session store %q", c.SessionStore)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.RequestTimeout > 0 && c.LLMTimeout+analyzer.DeadlineReserve > c.RequestTimeout {
		return fmt.Errorf("MINDMATE_LLM_TIMEOUT %s must leave %s of MINDMATE_REQUEST_TIMEOUT %s",
			c.LLMTimeout, analyzer.DeadlineReserve, c.RequestTimeout)
	}
	if c.EnableEmbeddings && strings.TrimSpace(c.OpenAIAPIKey) == "" {
		log.Warn("embeddings enabled without MINDMATE_OPENAI_API_KEY; memories are stored without vectors")
	}
	return nil
}

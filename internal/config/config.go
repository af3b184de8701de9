package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	InboundModeInline = "inline"
	InboundModeSQS    = "sqs"
)

type Config struct {
	AppEnv             string `env:"APP_ENV" envDefault:"development"`
	ServerPort         int    `env:"SERVER_PORT" envDefault:"10000"`
	PublicBaseURL      string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:10000"`
	JWTSecretKey       string `env:"JWT_SECRET_KEY"`
	JWTExpirationHours int    `env:"JWT_EXPIRATION_HOURS" envDefault:"24"`
	// DefaultRateLimit is messages per minute per tenant.
	DefaultRateLimit int `env:"DEFAULT_RATE_LIMIT" envDefault:"10"`
	// GlobalRateLimit is requests per minute per client IP.
	GlobalRateLimit int `env:"GLOBAL_RATE_LIMIT" envDefault:"10000"`
	// APIRateLimit is management API requests per minute per tenant.
	APIRateLimit int    `env:"API_RATE_LIMIT" envDefault:"1000"`
	AutoMigrate  bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	InboundMode  string `env:"INBOUND_MODE" envDefault:"inline"`

	Gateway GatewayConfig `envPrefix:"WAAPIFY_"`
	CRM     CRMConfig     `envPrefix:"GHL_"`
	OpenAI  OpenAIConfig  `envPrefix:"OPENAI_"`
	Workers WorkerConfig  `envPrefix:"WORKER_"`
}

type GatewayConfig struct {
	BaseURL     string        `env:"BASE_URL" envDefault:"https://stag.waapify.com/api"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"10s"`
	CountryCode string        `env:"COUNTRY_CODE" envDefault:"60"`
}

type CRMConfig struct {
	BaseURL      string        `env:"API_BASE_URL" envDefault:"https://services.leadconnectorhq.com"`
	APIVersion   string        `env:"API_VERSION" envDefault:"2021-07-28"`
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	RedirectURI  string        `env:"REDIRECT_URI"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

type OpenAIConfig struct {
	APIKey  string        `env:"API_KEY"`
	BaseURL string        `env:"BASE_URL"`
	Model   string        `env:"MODEL" envDefault:"gpt-3.5-turbo"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"20s"`
}

// WorkerConfig tunes the background binaries.
type WorkerConfig struct {
	IndexConcurrency    int           `env:"INDEX_CONCURRENCY" envDefault:"3"`
	IndexPollInterval   time.Duration `env:"INDEX_POLL_INTERVAL" envDefault:"5s"`
	InboundConcurrency  int           `env:"INBOUND_CONCURRENCY" envDefault:"2"`
	InboundPollInterval time.Duration `env:"INBOUND_POLL_INTERVAL" envDefault:"1s"`
	BackupInterval      time.Duration `env:"BACKUP_INTERVAL" envDefault:"6h"`
	CleanupInterval     time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
	CounterMaxIdle      time.Duration `env:"COUNTER_MAX_IDLE" envDefault:"24h"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.InboundMode != InboundModeInline && cfg.InboundMode != InboundModeSQS {
		return nil, fmt.Errorf("INBOUND_MODE must be %q or %q, got %q", InboundModeInline, InboundModeSQS, cfg.InboundMode)
	}
	if cfg.Workers.IndexConcurrency <= 0 || cfg.Workers.InboundConcurrency <= 0 {
		return nil, fmt.Errorf("worker concurrency must be positive")
	}
	if cfg.DefaultRateLimit <= 0 {
		return nil, fmt.Errorf("DEFAULT_RATE_LIMIT must be positive, got %d", cfg.DefaultRateLimit)
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, loaded once at process start
// and passed by reference into every component constructor.
type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	OllamaURL  string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	EmbedModel string `envconfig:"EMBED_MODEL" default:"nomic-embed-text"`
	ChatModel  string `envconfig:"CHAT_MODEL" default:"llama3.2:1b"`

	EmbedTimeout  time.Duration `envconfig:"EMBED_TIMEOUT" default:"60s"`
	ChatTimeout   time.Duration `envconfig:"CHAT_TIMEOUT" default:"300s"`
	HealthTimeout time.Duration `envconfig:"HEALTH_TIMEOUT" default:"3s"`

	EmbedDimensions int `envconfig:"EMBED_DIMENSIONS" default:"768"`

	TopKDefault  int `envconfig:"TOP_K_DEFAULT" default:"6"`
	TopKMax      int `envconfig:"TOP_K_MAX" default:"12"`
	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"1200"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"200"`
	PreviewChars int `envconfig:"PREVIEW_CHARS" default:"220"`

	AnswerThreshold float64 `envconfig:"ANSWER_THRESHOLD" default:"0.78"`
	SoftThreshold   float64 `envconfig:"SOFT_THRESHOLD" default:"0.60"`

	IndexPollInterval time.Duration `envconfig:"INDEX_POLL_INTERVAL" default:"30s"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

// Load reads configuration from the environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("MENURAG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad loads configuration or exits the process.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database url is required")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk overlap cannot be negative, got %d", c.ChunkOverlap)
	}
	if c.TopKDefault < 1 || c.TopKDefault > c.TopKMax {
		return fmt.Errorf("top_k default %d out of range [1, %d]", c.TopKDefault, c.TopKMax)
	}
	if c.SoftThreshold > c.AnswerThreshold {
		return fmt.Errorf("soft threshold %.2f cannot exceed answer threshold %.2f", c.SoftThreshold, c.AnswerThreshold)
	}
	return nil
}

// HasSentry reports whether Sentry telemetry is configured.
func (c *Config) HasSentry() bool {
	return c.SentryDSN != ""
}

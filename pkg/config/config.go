package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the coding engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets (API keys,
// database password) must only come from environment variables.
type Config struct {
	Env string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	Database DatabaseConfig `yaml:"database"`
	AI       AIConfig       `yaml:"ai"`
	Engine   EngineConfig   `yaml:"engine"`

	// MigrationsPath is the directory containing numbered SQL migrations.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"coding"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"coding_engine"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
}

// AIConfig holds suggestion-engine provider settings.
type AIConfig struct {
	// OpenAIAPIKey and AnthropicAPIKey are provider credentials. Only the
	// provider matching the selected model needs a key.
	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"`

	// DefaultModel is the baseline model used when a category does not pin
	// one. Anthropic models are routed by the "claude-" prefix.
	DefaultModel string `yaml:"default_model" env:"AI_DEFAULT_MODEL" env-default:"gpt-4o-mini"`

	// MaxRetries bounds retry attempts on transient provider failures.
	MaxRetries     int           `yaml:"max_retries" env:"AI_MAX_RETRIES" env-default:"3"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"AI_REQUEST_TIMEOUT" env-default:"60s"`
}

// EngineConfig holds orchestration tunables.
type EngineConfig struct {
	// SuggestionTTL is the cache freshness window for stored suggestion sets.
	SuggestionTTL time.Duration `yaml:"suggestion_ttl" env:"ENGINE_SUGGESTION_TTL" env-default:"24h"`

	// AutoConfirmThreshold is the minimum best-suggestion confidence for
	// unattended confirmation. A business tunable, not a constant.
	AutoConfirmThreshold float64 `yaml:"auto_confirm_threshold" env:"ENGINE_AUTO_CONFIRM_THRESHOLD" env-default:"0.95"`

	// BatchLimit caps how many uncategorized answers one category sweep
	// picks up per pass.
	BatchLimit int `yaml:"batch_limit" env:"ENGINE_BATCH_LIMIT" env-default:"100"`

	// SweepInterval is how often the background sweep runs. Zero disables it
	// (one-shot mode).
	SweepInterval time.Duration `yaml:"sweep_interval" env:"ENGINE_SWEEP_INTERVAL" env-default:"10m"`

	// SweepConcurrency bounds how many categories are processed in parallel.
	// Answers within a category are always processed sequentially.
	SweepConcurrency int `yaml:"sweep_concurrency" env:"ENGINE_SWEEP_CONCURRENCY" env-default:"4"`
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Load reads configuration from the given YAML path with environment
// variable overrides. When the file does not exist, configuration comes from
// the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	MaxFormBytes      int64  `mapstructure:"MAX_FORM_BYTES"`

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the socket peer is always the client.
	TrustedProxies   []string      `mapstructure:"TRUSTED_PROXIES"`
	RateLimitIdleTTL time.Duration `mapstructure:"RATE_LIMIT_IDLE_TTL"`

	HealthCheckInterval time.Duration `mapstructure:"HEALTH_CHECK_INTERVAL"`

	// Inference server.
	ModelProvider string        `mapstructure:"MODEL_PROVIDER"`
	OllamaBaseURL string        `mapstructure:"OLLAMA_BASE_URL"`
	ModelName     string        `mapstructure:"MODEL_NAME"`
	ModelTimeout  time.Duration `mapstructure:"MODEL_TIMEOUT"`
	GeminiAPIKey  string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string        `mapstructure:"GEMINI_MODEL"`

	// Archive of generated statements.
	ArchiveBackend string        `mapstructure:"ARCHIVE_BACKEND"`
	ArchiveTTL     time.Duration `mapstructure:"ARCHIVE_TTL"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DatabaseName   string        `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisArchiveDB int    `mapstructure:"REDIS_ARCHIVE_DB"`
}

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	ArchiveNone  = "none"
	ArchiveMongo = "mongo"
	ArchiveRedis = "redis"
)

var configKeys = []string{
	"APP_PORT", "ENV", "LOG_LEVEL", "MAX_REQUESTS_PER_MIN", "MAX_FORM_BYTES",
	"TRUSTED_PROXIES", "RATE_LIMIT_IDLE_TTL",
	"HEALTH_CHECK_INTERVAL",
	"MODEL_PROVIDER", "OLLAMA_BASE_URL", "MODEL_NAME", "MODEL_TIMEOUT",
	"GEMINI_API_KEY", "GEMINI_MODEL",
	"ARCHIVE_BACKEND", "ARCHIVE_TTL", "DATABASE_URL", "DATABASE_NAME",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_ARCHIVE_DB",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 30)
	v.SetDefault("MAX_FORM_BYTES", 1<<20)
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("RATE_LIMIT_IDLE_TTL", "10m")
	v.SetDefault("HEALTH_CHECK_INTERVAL", "60s")
	v.SetDefault("MODEL_PROVIDER", ProviderOllama)
	v.SetDefault("OLLAMA_BASE_URL", "http://localhost:11434")
	v.SetDefault("MODEL_NAME", "llama3.1:8b")
	v.SetDefault("MODEL_TIMEOUT", "0s")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	v.SetDefault("ARCHIVE_BACKEND", ArchiveNone)
	v.SetDefault("ARCHIVE_TTL", "720h")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "sopwriter")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_ARCHIVE_DB", 0)
}

// LoadConfig reads config.yaml from the working directory or ./config, lets
// environment variables override it, and falls back to defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)
	// AutomaticEnv only covers keys viper already knows about when Unmarshal runs.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}
	cfg.ModelProvider = strings.ToLower(strings.TrimSpace(cfg.ModelProvider))
	cfg.ArchiveBackend = strings.ToLower(strings.TrimSpace(cfg.ArchiveBackend))
	cfg.OllamaBaseURL = strings.TrimRight(cfg.OllamaBaseURL, "/")
	cfg.TrustedProxies = cleanList(cfg.TrustedProxies)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown provider/backend names and missing credentials.
func (c *Config) Validate() error {
	switch c.ModelProvider {
	case ProviderOllama:
		if c.OllamaBaseURL == "" {
			return fmt.Errorf("config: OLLAMA_BASE_URL is required for provider %q", c.ModelProvider)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config: GEMINI_API_KEY is required for provider %q", c.ModelProvider)
		}
	default:
		return fmt.Errorf("config: unknown MODEL_PROVIDER %q", c.ModelProvider)
	}

	switch c.ArchiveBackend {
	case ArchiveNone, ArchiveMongo, ArchiveRedis:
	default:
		return fmt.Errorf("config: unknown ARCHIVE_BACKEND %q", c.ArchiveBackend)
	}
	return nil
}

// ActiveModel is the model name used for the configured provider.
func (c *Config) ActiveModel() string {
	if c.ModelProvider == ProviderGemini {
		return c.GeminiModel
	}
	return c.ModelName
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

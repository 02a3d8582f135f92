package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
)

var validate = validator.New()

// Config holds all configuration for the application.
type Config struct {
	Host     string `envconfig:"HOST" default:"127.0.0.1" validate:"required"`
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	Env      string `envconfig:"ENV" default:"development" validate:"oneof=development production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	RedisURL string `envconfig:"REDIS_URL" validate:"omitempty,url"`

	MaxBodyBytes       int64    `envconfig:"MAX_BODY_BYTES" default:"8192" validate:"gt=0"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*" validate:"min=1"`

	// Rate limiting, only active when RedisURL is set
	RateLimitWhitelist []string `envconfig:"RATE_LIMIT_WHITELIST"` // IPs or CIDRs exempt from rate limiting
	AutoBlockEnabled   bool     `envconfig:"AUTO_BLOCK_ENABLED" default:"false"`

	// Honour X-Forwarded-For / X-Real-IP; enable only behind a reverse proxy
	TrustProxy bool `envconfig:"TRUST_PROXY" default:"false"`

	InstanceID string `envconfig:"INSTANCE_ID"`
}

// Load reads configuration from the .env file, if present, and the environment.
// Extra files are loaded in order after .env; variables already set win.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load()
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	cfg.RateLimitWhitelist = trimList(cfg.RateLimitWhitelist)
	cfg.CORSAllowedOrigins = trimList(cfg.CORSAllowedOrigins)
	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func trimList(entries []string) []string {
	return lo.Compact(lo.Map(entries, func(entry string, _ int) string {
		return strings.TrimSpace(entry)
	}))
}

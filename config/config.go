package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// Verification code lifetime, in milliseconds to match the wire contract.
	CodeExpiryMS int `env:"VERIFICATION_CODE_EXPIRY" envDefault:"600000" validate:"min=1000"`

	RateLimitWindowMS int `env:"RATE_LIMIT_WINDOW_MS" envDefault:"300000" validate:"min=1000"`
	RateLimitMax      int `env:"RATE_LIMIT_MAX" envDefault:"10" validate:"min=1"`

	SweepCron string `env:"SWEEP_CRON" envDefault:"*/15 * * * *" validate:"required"`

	// Whether /generate echoes the plaintext code back to the caller.
	// Convenient for development and trusted internal callers; turn off
	// when the code must only ever travel over email.
	ExposeCode bool `env:"EXPOSE_CODE_IN_RESPONSE" envDefault:"true"`

	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"log" validate:"oneof=log smtp resend"`

	SMTPHost string `env:"SMTP_HOST" validate:"required_if=EmailProvider smtp"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	SMTPFrom string `env:"SMTP_FROM" validate:"required_if=EmailProvider smtp"`
	SMTPTLS  bool   `env:"SMTP_TLS" envDefault:"true"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=EmailProvider resend"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=EmailProvider resend"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) CodeExpiry() time.Duration {
	return time.Duration(c.CodeExpiryMS) * time.Millisecond
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMS) * time.Millisecond
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the gateway and the suggestion client.
// It is built once at startup and passed explicitly to whatever needs it.
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      string
	ShutdownTimeout time.Duration
	// TrustedProxies may set X-Forwarded-For; empty means the peer address is the client
	TrustedProxies []string

	// Database configuration
	DatabaseURL string

	// Redis configuration, optional; the rate limiter keeps its counters in memory without it
	RedisURL string

	// Browser facing settings
	FrontendURL   string
	SessionSecret string
	SessionName   string
	SessionMaxAge time.Duration

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// IsProduction reports whether cookies and headers should use their production settings
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig reads .env files (when present) and the process environment into a Config
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	v := newViper()
	cfg := fromViper(v)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads the given files, or ./.env when none are given. Existing
// environment variables are never overwritten. A missing default .env is not an error.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env files %v: %w", files, err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("PORT", "4000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("SESSION_NAME", "recipes.sid")
	v.SetDefault("SESSION_MAX_AGE", "24h")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
	return v
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Environment:     GetEnvironment(),
		ServerHost:      v.GetString("SERVER_HOST"),
		ServerPort:      v.GetString("PORT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		TrustedProxies:  splitList(v.GetString("TRUSTED_PROXIES")),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		RedisURL:        v.GetString("REDIS_URL"),
		FrontendURL:     strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		SessionSecret:   v.GetString("SESSION_SECRET"),
		SessionName:     v.GetString("SESSION_NAME"),
		SessionMaxAge:   v.GetDuration("SESSION_MAX_AGE"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTTTL:          v.GetDuration("JWT_TTL"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
	}

	// MONGODB_URI is what the first deployments exported
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = v.GetString("MONGODB_URI")
	}
	// Tokens fall back to the session secret so a single secret is enough to boot
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.SessionSecret
	}
	if cfg.LogFormat == "" {
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		} else {
			cfg.LogFormat = "console"
		}
	}

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMinConns  int32  `envconfig:"BBI_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"BBI_DB_MAX_CONNS" default:"8"`

	// RedisURL is optional. When empty the content cache falls back to the
	// in-process memory backend.
	RedisURL    string        `envconfig:"REDIS_URL" default:""`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"300s"`
	CachePrefix string        `envconfig:"CACHE_PREFIX" default:"bbi:"`

	TranslateAPIURL  string        `envconfig:"TRANSLATE_API_URL" default:"https://translate.argosopentech.com"`
	TranslateAPIKey  string        `envconfig:"TRANSLATE_API_KEY" default:""`
	TranslateTimeout time.Duration `envconfig:"TRANSLATE_TIMEOUT" default:"8s"`
	TranslateTarget  string        `envconfig:"TRANSLATE_TARGET_LANG" default:"en"`

	UploadDir     string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	UploadMaxSize int64  `envconfig:"UPLOAD_MAX_SIZE" default:"5242880"`

	SessionTTLHours     int    `envconfig:"SESSION_TTL_HOURS" default:"168"`
	SessionCookieName   string `envconfig:"SESSION_COOKIE_NAME" default:"bbi_session"`
	SessionCookieSecure bool   `envconfig:"SESSION_COOKIE_SECURE" default:"false"`
	CORSAllowedOrigins  string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("BBI_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("BBI_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("BBI_DB_MIN_CONNS (%d) cannot exceed BBI_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if strings.TrimSpace(c.TranslateAPIURL) == "" {
		return fmt.Errorf("TRANSLATE_API_URL is required")
	}
	if c.TranslateTimeout <= 0 {
		return fmt.Errorf("TRANSLATE_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.TranslateTarget) == "" {
		return fmt.Errorf("TRANSLATE_TARGET_LANG is required")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.SessionTTLHours < 1 {
		return fmt.Errorf("SESSION_TTL_HOURS must be >= 1")
	}
	if strings.TrimSpace(c.SessionCookieName) == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME is required")
	}
	return nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}

package cache

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/muhtegaralfikri/bbi-backend/internal/config"
)

// NewFromConfig selects the cache backend: Redis when REDIS_URL is set,
// in-process memory otherwise. A Redis connection failure falls back to the
// memory backend rather than failing startup, since the cache is advisory.
func NewFromConfig(cfg *config.Config, logger zerolog.Logger) Cache {
	redisURL := strings.TrimSpace(cfg.RedisURL)
	if redisURL == "" {
		logger.Debug().Msg("content cache using memory backend")
		return NewMemoryCache(cfg.CacheTTL)
	}

	redisCache, err := NewRedisCache(redisURL, cfg.CachePrefix, cfg.CacheTTL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, content cache using memory backend")
		return NewMemoryCache(cfg.CacheTTL)
	}

	logger.Info().Msg("content cache using redis backend")
	return redisCache
}

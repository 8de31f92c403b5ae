package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Settings selects and sizes a cache backend.
type Settings struct {
	Type          string
	MemoryEntries int
	TTL           time.Duration
	RedisURL      string
}

// NewCache creates a cache instance based on the cache type
func NewCache(settings Settings, log *zap.Logger) (Cache, error) {
	switch settings.Type {
	case "memory", "":
		log.Info("Using memory cache", zap.Int("max_entries", settings.MemoryEntries), zap.Duration("ttl", settings.TTL))
		return NewMemoryCache(settings.MemoryEntries, settings.TTL), nil
	case "redis":
		log.Info("Using redis cache", zap.Duration("ttl", settings.TTL))
		return NewRedisCache(settings.RedisURL, settings.TTL, log)
	case "disabled":
		log.Info("Cache disabled")
		return NewNoopCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s (supported: memory, redis, disabled)", settings.Type)
	}
}

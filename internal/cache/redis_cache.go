package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"letteravatar/internal/metrics"
)

const redisKeyPrefix = "letteravatar:"

// RedisCache shares rendered avatars between several instances. A failing
// server degrades to cache misses; every failure is logged and counted.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache connects to the redis server at redisURL and checks that it
// answers.
func NewRedisCache(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	c := NewRedisCacheFromClient(redis.NewClient(opts), ttl, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return c, nil
}

func NewRedisCacheFromClient(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(key string) ([]byte, bool) {
	b, err := c.client.Get(context.TODO(), redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.reportError("get", key, err)
		return nil, false
	}
	return b, true
}

func (c *RedisCache) Set(key string, value []byte) {
	if err := c.client.Set(context.TODO(), redisKeyPrefix+key, value, c.ttl).Err(); err != nil {
		c.reportError("set", key, err)
	}
}

func (c *RedisCache) Has(key string) bool {
	n, err := c.client.Exists(context.TODO(), redisKeyPrefix+key).Result()
	if err != nil {
		c.reportError("exists", key, err)
		return false
	}
	return n > 0
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) reportError(op, key string, err error) {
	metrics.CacheErrors.WithLabelValues(op).Inc()
	c.logger.Warn("Redis cache call failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err))
}

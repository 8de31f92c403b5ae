package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Size bounds applied when AVATAR_MIN_SIZE and AVATAR_MAX_SIZE are unset.
const (
	DefaultMinSize = 16
	DefaultMaxSize = 1024
)

type Config struct {
	Port              int
	LogLevel          string
	LogFile           string
	LogFileMaxSizeMB  int
	LogFileMaxBackups int
	LogFileMaxAgeDays int

	MinSize       int
	MaxSize       int
	DefaultSize   int
	DefaultFormat string
	DefaultShape  string
	FontFile      string

	CacheType          string
	CacheMemoryEntries int
	CacheTTL           time.Duration
	RedisURL           string

	VipsMaxCacheMB  int
	VipsConcurrency int

	AllowedOrigin string
	WarmupNames   []string
	WarmupWorkers int
}

// Load reads the configuration from the environment. Variables found in a
// .env file in the working directory are loaded first, without overriding
// the ones already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Port:              getEnvInt("PORT", 8080),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
		LogFileMaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 100),
		LogFileMaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 5),
		LogFileMaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 30),

		MinSize:       getEnvInt("AVATAR_MIN_SIZE", DefaultMinSize),
		MaxSize:       getEnvInt("AVATAR_MAX_SIZE", DefaultMaxSize),
		DefaultSize:   getEnvInt("AVATAR_DEFAULT_SIZE", 64),
		DefaultFormat: getEnv("AVATAR_DEFAULT_FORMAT", "png"),
		DefaultShape:  getEnv("AVATAR_DEFAULT_SHAPE", "square"),
		FontFile:      getEnv("FONT_FILE", ""),

		CacheType:          getEnv("CACHE", "memory"),
		CacheMemoryEntries: getEnvInt("CACHE_MEMORY_ENTRIES", 10000),
		CacheTTL:           getEnvDuration("CACHE_TTL", 0),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),

		VipsMaxCacheMB:  getEnvInt("VIPS_MAX_CACHE_MB", 64),
		VipsConcurrency: getEnvInt("VIPS_CONCURRENCY", 1),

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", ""),
		WarmupNames:   getEnvList("WARMUP_NAMES"),
		WarmupWorkers: getEnvInt("WARMUP_WORKERS", 1),
	}

	if cfg.MinSize < 1 {
		cfg.MinSize = 1
	}
	if cfg.MaxSize < cfg.MinSize {
		cfg.MaxSize = cfg.MinSize
	}
	cfg.DefaultSize = cfg.ClampSize(cfg.DefaultSize)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func (c *Config) ClampSize(size int) int {
	if size < c.MinSize {
		return c.MinSize
	}
	if size > c.MaxSize {
		return c.MaxSize
	}
	return size
}

func (c *Config) SizeInRange(size int) bool {
	return size >= c.MinSize && size <= c.MaxSize
}

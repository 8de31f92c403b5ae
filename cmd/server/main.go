package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cshum/vipsgen/vips"
	"go.uber.org/zap"

	"letteravatar/internal/avatar"
	"letteravatar/internal/cache"
	"letteravatar/internal/config"
	httphandlers "letteravatar/internal/http"
	"letteravatar/internal/image_encoder"
	"letteravatar/internal/image_renderer"
	"letteravatar/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	log, err := logger.New(cfg.LogLevel, logger.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogFileMaxSizeMB,
		MaxBackups: cfg.LogFileMaxBackups,
		MaxAgeDays: cfg.LogFileMaxAgeDays,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	vipsConfig := &vips.Config{
		ConcurrencyLevel: cfg.VipsConcurrency,
		MaxCacheMem:      cfg.VipsMaxCacheMB * 1024 * 1024, // Convert MB to bytes
		MaxCacheFiles:    0,                                // Disable disk cache
		MaxCacheSize:     0,                                // Disable disk cache
		ReportLeaks:      false,
		CacheTrace:       false,
		VectorEnabled:    true,
	}

	// Forward libvips warnings and errors to zap
	vips.SetLogging(func(domain string, level vips.LogLevel, message string) {
		if level >= vips.LogLevelError {
			log.Error("vips", zap.String("domain", domain), zap.Int("level", int(level)), zap.String("message", message))
		} else if level >= vips.LogLevelWarning {
			log.Warn("vips", zap.String("domain", domain), zap.Int("level", int(level)), zap.String("message", message))
		}
	}, vips.LogLevelError)

	vips.Startup(vipsConfig)
	defer vips.Shutdown()

	log.Info("VIPS initialized",
		zap.Int("max_cache_mb", cfg.VipsMaxCacheMB),
		zap.Int("concurrency", cfg.VipsConcurrency),
	)

	log.Info("Starting letter avatar server",
		zap.Int("port", cfg.Port),
		zap.Int("min_size", cfg.MinSize),
		zap.Int("max_size", cfg.MaxSize),
		zap.String("default_format", cfg.DefaultFormat),
	)

	font, err := image_renderer.LoadFont(cfg.FontFile)
	if err != nil {
		log.Fatal("Failed to load font", zap.String("font_file", cfg.FontFile), zap.Error(err))
	}

	avatarCache, err := cache.NewCache(cache.Settings{
		Type:          cfg.CacheType,
		MemoryEntries: cfg.CacheMemoryEntries,
		TTL:           cfg.CacheTTL,
		RedisURL:      cfg.RedisURL,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	renderer := image_renderer.New(font, avatarCache, log)

	handlers := httphandlers.New(cfg, log, renderer)

	if len(cfg.WarmupNames) > 0 {
		go renderer.Warmup(warmupList(cfg), cfg.WarmupWorkers)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handlers.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.Int("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}

// warmupList resolves the configured names with the default parameters so
// the first requests for them are served from the cache.
func warmupList(cfg *config.Config) []avatar.Options {
	defaultFormat := image_encoder.ParseFormatOr(cfg.DefaultFormat, image_encoder.DefaultFormat)

	list := make([]avatar.Options, 0, len(cfg.WarmupNames))
	for _, name := range cfg.WarmupNames {
		list = append(list, avatar.Resolve(avatar.Params{
			Name:          name,
			Size:          cfg.DefaultSize,
			Shape:         cfg.DefaultShape,
			DefaultFormat: defaultFormat,
		}))
	}
	return list
}

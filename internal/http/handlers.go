package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"letteravatar/internal/avatar"
	"letteravatar/internal/config"
	"letteravatar/internal/image_encoder"
	"letteravatar/internal/image_renderer"
	"letteravatar/internal/metrics"
)

var (
	ErrMissingName     = errors.New("name is required")
	ErrInvalidSize     = errors.New("size must be an integer")
	ErrSizeOutOfRange  = errors.New("size is out of range")
	errMethodForbidden = errors.New("method not allowed")
)

type Handlers struct {
	config   *config.Config
	logger   *zap.Logger
	renderer *image_renderer.Renderer
}

func New(config *config.Config, logger *zap.Logger, renderer *image_renderer.Renderer) *Handlers {
	return &Handlers{
		config:   config,
		logger:   logger,
		renderer: renderer,
	}
}

func (h *Handlers) RequestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		start := time.Now()

		ip := h.extractIP(r)

		w.Header().Set("X-Request-Id", requestID)
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		bytes := wrapped.bytesWritten

		metrics.HTTPRequestDurations.
			WithLabelValues(r.Method, strconv.Itoa(wrapped.statusCode)).
			Observe(duration.Seconds())

		h.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("ip", ip),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.statusCode),
			zap.Int64("bytes", bytes),
			zap.Int64("duration_ms", duration.Milliseconds()),
			zap.String("user_agent", r.UserAgent()),
		)
	})
}

func (h *Handlers) CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigin := "*"
		if h.config.AllowedOrigin != "" {
			allowedOrigin = h.config.AllowedOrigin
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, If-None-Match")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// HandleAvatar serves /avatar/{name} and /avatar?name=...
func (h *Handlers) HandleAvatar(w http.ResponseWriter, r *http.Request) {
	params, err := h.bindParams(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errMethodForbidden) {
			status = http.StatusMethodNotAllowed
		}
		http.Error(w, err.Error(), status)
		return
	}

	opts := avatar.Resolve(params)

	result, err := h.renderer.Render(opts)
	if err != nil {
		h.logger.Error("Failed to render avatar", zap.String("name", params.Name), zap.Error(err))
		http.Error(w, "Failed to render avatar", http.StatusInternalServerError)
		return
	}

	etag := `"` + result.ETag + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("Content-Type", result.ContentType)

	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Length", fmt.Sprintf("%d", result.Size))

	// HEAD request doesn't send body
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Write(result.Data)
}

// bindParams validates the request and maps it to the avatar parameters.
func (h *Handlers) bindParams(r *http.Request) (avatar.Params, error) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return avatar.Params{}, errMethodForbidden
	}

	query := r.URL.Query()

	name := strings.TrimPrefix(r.URL.Path, "/avatar")
	name = strings.Trim(name, "/")
	if name == "" {
		name = query.Get("name")
	}
	if strings.TrimSpace(name) == "" {
		return avatar.Params{}, ErrMissingName
	}

	size := h.config.DefaultSize
	if raw := query.Get("size"); raw != "" {
		var err error
		size, err = strconv.Atoi(raw)
		if err != nil {
			return avatar.Params{}, ErrInvalidSize
		}
		if !h.config.SizeInRange(size) {
			return avatar.Params{}, fmt.Errorf("%w: must be between %d and %d", ErrSizeOutOfRange, h.config.MinSize, h.config.MaxSize)
		}
	}

	shape := firstNonEmpty(query.Get("shape"), query.Get("backgroundShape"))
	if shape == "" {
		shape = h.config.DefaultShape
	}

	return avatar.Params{
		Name:            name,
		Size:            size,
		BackgroundColor: firstNonEmpty(query.Get("backgroundColor"), query.Get("background")),
		ForegroundColor: firstNonEmpty(query.Get("foregroundColor"), query.Get("color")),
		Format:          firstNonEmpty(query.Get("format"), query.Get("outputFormat")),
		Shape:           shape,
		DefaultFormat:   image_encoder.ParseFormatOr(h.config.DefaultFormat, image_encoder.DefaultFormat),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// Not for real production use due to potential spoofing
func (h *Handlers) extractIP(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip != "" {
		return strings.Split(ip, ":")[0]
	}

	addr := r.RemoteAddr
	if addr != "" {
		return strings.Split(addr, ":")[0]
	}

	return "unknown"
}

type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

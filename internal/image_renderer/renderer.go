package image_renderer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font/opentype"

	"letteravatar/internal/avatar"
	"letteravatar/internal/cache"
	"letteravatar/internal/image_encoder"
	"letteravatar/internal/metrics"
)

// ErrRender wraps every failure to draw or encode an avatar.
var ErrRender = errors.New("failed to render avatar")

type Renderer struct {
	font   *opentype.Font
	loader *cache.Loader
	logger *zap.Logger
}

type Result struct {
	Data        []byte
	ETag        string
	ContentType string
	Size        int
}

func New(font *opentype.Font, avatarCache cache.Cache, logger *zap.Logger) *Renderer {
	return &Renderer{
		font:   font,
		loader: cache.NewLoader(avatarCache),
		logger: logger,
	}
}

// Render returns the encoded avatar for opts, drawing it only when it is not
// cached yet.
func (r *Renderer) Render(opts avatar.Options) (*Result, error) {
	key := opts.CacheKey()

	data, err := r.loader.GetOrCompute(key, func() ([]byte, error) {
		return r.renderAndMeasure(opts)
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:        data,
		ETag:        generateETag(key),
		ContentType: opts.ContentType(),
		Size:        len(data),
	}, nil
}

// IsCached reports whether the avatar for opts is already stored, without
// reading it.
func (r *Renderer) IsCached(opts avatar.Options) bool {
	return r.loader.Cache().Has(opts.CacheKey())
}

func (r *Renderer) renderAndMeasure(opts avatar.Options) ([]byte, error) {
	start := time.Now()
	data, err := r.Draw(opts)
	duration := time.Since(start)

	if err != nil {
		metrics.Renders.WithLabelValues("error").Inc()
		r.logger.Error("Failed to render avatar",
			zap.String("text", opts.Text),
			zap.Int("size", opts.Size),
			zap.Stringer("format", opts.Format),
			zap.Error(err))
		return nil, err
	}

	metrics.Renders.WithLabelValues("ok").Inc()
	metrics.RenderDuration.Observe(duration.Seconds())
	r.logger.Debug("Rendered avatar",
		zap.String("text", opts.Text),
		zap.Int("size", opts.Size),
		zap.Stringer("shape", opts.Shape),
		zap.Stringer("format", opts.Format),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", duration))
	return data, nil
}

// Draw renders opts without touching the cache.
func (r *Renderer) Draw(opts avatar.Options) ([]byte, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", ErrRender, opts.Size)
	}

	// Step 1: Background shape on a transparent canvas
	c := newCanvas(opts.Size)
	c.fillBackground(opts.Shape, opts.Background)

	// Step 2: Initials centered on top of it
	if err := c.drawText(r.font, opts.Text, opts.FontSize(), opts.Foreground); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	// Step 3: Encode to the requested format
	data, err := image_encoder.Encode(c.img, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return data, nil
}

func generateETag(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])[:16]
}

package http

import (
	"bytes"
	"image"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"letteravatar/internal/cache"
	"letteravatar/internal/config"
	"letteravatar/internal/image_renderer"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		MinSize:       16,
		MaxSize:       1024,
		DefaultSize:   64,
		DefaultFormat: "png",
		DefaultShape:  "square",
	}
	f, err := image_renderer.LoadFont("")
	require.NoError(t, err)

	renderer := image_renderer.New(f, cache.NewMemoryCache(100, 0), zap.NewNop())
	return New(cfg, zap.NewNop(), renderer).Routes()
}

func get(t *testing.T, handler http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleAvatarPath(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/avatar/G%C3%A9rald%20Barr%C3%A9?size=128&shape=circle&format=png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds())
}

func TestHandleAvatarQuery(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/avatar?name=Ada+Lovelace&format=gif&backgroundColor=000000&foregroundColor=fff")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))

	img, err := gif.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
}

func TestHandleAvatarDefaults(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/avatar/cher?format=heic&shape=hexagon&backgroundColor=nope")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
}

func TestHandleAvatarValidation(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		target string
		status int
	}{
		{"/avatar", http.StatusBadRequest},
		{"/avatar/", http.StatusBadRequest},
		{"/avatar?name=%20%20", http.StatusBadRequest},
		{"/avatar/Ada?size=abc", http.StatusBadRequest},
		{"/avatar/Ada?size=15", http.StatusBadRequest},
		{"/avatar/Ada?size=1025", http.StatusBadRequest},
		{"/avatar/Ada?size=16", http.StatusOK},
		{"/avatar/Ada?size=1024", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.status, get(t, server, tt.target).Code)
		})
	}
}

func TestHandleAvatarDifferentSizes(t *testing.T) {
	server := newTestServer(t)

	small := get(t, server, "/avatar/Ada%20Lovelace?size=32")
	large := get(t, server, "/avatar/Ada%20Lovelace?size=48")
	require.Equal(t, http.StatusOK, small.Code)
	require.Equal(t, http.StatusOK, large.Code)

	assert.NotEqual(t, small.Header().Get("ETag"), large.Header().Get("ETag"))
	assert.NotEqual(t, small.Body.Bytes(), large.Body.Bytes())
}

func TestHandleAvatarNotModified(t *testing.T) {
	server := newTestServer(t)

	first := get(t, server, "/avatar/Ada")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")

	second := get(t, server, "/avatar/Ada", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.Bytes())

	third := get(t, server, "/avatar/Ada", "If-None-Match", `"other"`)
	assert.Equal(t, http.StatusOK, third.Code)
	assert.Equal(t, first.Body.Bytes(), third.Body.Bytes())
}

func TestHandleAvatarMethods(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodHead, "/avatar/Ada", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Length"))
	assert.Empty(t, rec.Body.Bytes())

	req = httptest.NewRequest(http.MethodPost, "/avatar/Ada", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/avatar/Ada", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthzAndMetrics(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	get(t, server, "/avatar/Ada")
	rec = get(t, server, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "avatar_cache_lookups_total")
}

func TestEtagMatches(t *testing.T) {
	assert.True(t, etagMatches(`"abc"`, `"abc"`))
	assert.True(t, etagMatches(`"x", W/"abc"`, `"abc"`))
	assert.True(t, etagMatches(`*`, `"abc"`))
	assert.False(t, etagMatches(`"abd"`, `"abc"`))
}

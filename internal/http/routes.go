package http

import (
	"net/http"

	"letteravatar/internal/metrics"
)

// Routes builds the service mux wrapped in the CORS and logging middlewares.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/avatar", h.HandleAvatar)
	mux.HandleFunc("/avatar/", h.HandleAvatar)
	mux.HandleFunc("/healthz", h.HandleHealthz)
	mux.Handle("/metrics", metrics.Handler())

	return h.CORSMiddleware(h.RequestLoggingMiddleware(mux))
}

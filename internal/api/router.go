package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// NewRouter creates a new chi router with all endpoints and middleware
func NewRouter(manager JobManager, apiKey string, maxBodySize int64, timeout time.Duration) http.Handler {
	h := &Handler{
		jobs:        manager,
		apiKey:      apiKey,
		maxBodySize: maxBodySize,
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)

		r.Route("/scans", func(r chi.Router) {
			r.Post("/", h.handleCreateScan)
			r.Get("/{id}", h.handleGetScan)
			r.Delete("/{id}", h.handleCancelScan)
		})
	})

	return r
}

// requestLogger logs one line per request with zerolog
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

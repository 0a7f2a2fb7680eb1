package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter mounts the collector API. Probes bypass the rate limiter.
func NewRouter(handler *Handler, logger *zap.Logger, rateLimiter *RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)
	r.Get("/readyz", handler.Readyz)

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Middleware)

		r.Post("/landing-tracking", handler.RecordLanding)
		r.Get("/landing-tracking", handler.ListLandings)

		r.Post("/events", handler.RelayEvent)
		r.Get("/events/stats", handler.EventStats)
	})

	return r
}

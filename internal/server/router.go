// internal/server/router.go
package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the HTTP surface: the report API, a health probe, and
// the Prometheus scrape endpoint.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/compliance", func(r chi.Router) {
		r.Post("/generate", h.Generate)
	})

	return r
}

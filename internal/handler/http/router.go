package http

import (
	"net/http"

	"minishort/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the two services behind one mux:
//   - the Management API, mounted at /api
//   - the Redirect Service, a single-segment GET at the root
//
// chi matches the static "/api" prefix before the "/{id}" parameter, so
// every /api path (including bare /api) stays inside the management
// sub-router and never triggers a short-ID lookup.
func NewRouter(h *Handler, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery is outermost so it also catches panics from other middleware
	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware)
	r.Use(chimiddleware.RealIP)
	r.Use(LoggingMiddleware(log))
	r.Use(MetricsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/addURL", h.AddURL)
		r.Get("/getURLs", h.GetURLs)
		r.Get("/health", h.HealthCheck)
	})

	r.Get("/{id}", h.RedirectEntry)

	return r
}

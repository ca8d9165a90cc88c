package api

import (
	"net/http"

	"matchwatch/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	"github.com/rs/zerolog"
)

// NewRouter creates the Chi router with middleware and all API routes.
func NewRouter(h *Handler, cfg config.ServerConfig, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedOrigins: cfg.CORSAllowOrigins,
		AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(c.Handler)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/teams-config", h.TeamsConfig)
		r.Get("/config", h.Config)
		r.Get("/metadata", h.Metadata)
		r.Get("/history", h.History)
		r.Get("/status", h.Status)
		r.Post("/update", h.Update)
	})

	return r
}

// requestLogger logs each request with method and path.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	apiLogger := logger.With().Str("component", "API").Logger()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiLogger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("Request")
			next.ServeHTTP(w, r)
		})
	}
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/daycount/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /api/v1/calendars
//	GET /api/v1/calendars/{calendar}/cjdn?year=&month=&day=
//	GET /api/v1/calendars/{calendar}/dates/{cjdn}?year=&month=&day=&strict=
//	GET /api/v1/calendars/{calendar}/range?start=&end=
//	GET /api/v1/weekday/{cjdn}
//	GET /api/v1/convert?date=&from=&to=
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)

	// ==========================================================================
	// Conversion routes (API key when configured)
	// ==========================================================================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg, logger))

		r.Get("/calendars", handlers.ListCalendars)
		r.Route("/calendars/{calendar}", func(r chi.Router) {
			r.Get("/cjdn", handlers.DateToCJDN)
			r.Get("/dates/{cjdn}", handlers.CJDNToDate)
			r.Get("/range", handlers.DateRange)
		})
		r.Get("/weekday/{cjdn}", handlers.DayOfWeek)
		r.Get("/convert", handlers.Convert)
	})

	return r
}

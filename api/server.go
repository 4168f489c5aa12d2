/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend
  5. Auth:       JWT validation on everything under /api

ROUTE GROUPS:
  /api/season, /api/holidays/*    Policy lookups
  /api/calendar/*                 Reconciled day views
  /api/schedules/*                Weekly schedules + weekend approvals
  /api/overrides                  Per-day overrides (managers write)
  /api/timeoff/*                  Time off lifecycle
  /api/stats/*                    Annual day-equivalent report (managers)
  /api/notifications, /api/events Outbox + SSE change feed

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go:     Token validation, role guards
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware)

		// Season & holiday policy
		r.Get("/season", h.GetSeason)
		r.Get("/holidays/{year}", h.ListHolidays)

		// Reconciled calendar views
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/{year}/{month}", h.GetCalendarMonth)
			r.Get("/day/{date}", h.GetCalendarDay)
		})

		// Roster
		r.Get("/staff", h.ListStaff)

		// Weekly schedules
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Group(func(r chi.Router) {
				r.Use(RequireManager)
				r.Put("/{userID}", h.SaveWeeklySchedule)
				r.Post("/{id}/approve", h.ApproveSchedule)
				r.Post("/{id}/deny", h.DenySchedule)
			})
		})

		// Per-day overrides
		r.Route("/overrides", func(r chi.Router) {
			r.Get("/", h.ListOverrides)
			r.With(RequireManager).Put("/", h.SetOverride)
		})

		// Time off lifecycle
		r.Route("/timeoff", func(r chi.Router) {
			r.Get("/", h.ListTimeOff)
			r.Post("/", h.SubmitTimeOff)
			r.Delete("/{id}", h.DeleteTimeOff)
			r.Group(func(r chi.Router) {
				r.Use(RequireManager)
				r.Post("/{id}/approve", h.ApproveTimeOff)
				r.Post("/{id}/reject", h.RejectTimeOff)
			})
		})

		// Annual report
		r.With(RequireManager).Get("/stats/{year}", h.GetStats)

		// Notifications & live updates
		r.Get("/notifications", h.ListNotifications)
		r.Get("/events", h.Events)
	})

	return r
}

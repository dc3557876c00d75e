package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/shift-tracker/internal/auth"
	"github.com/frahmantamala/shift-tracker/internal/export"
	"github.com/frahmantamala/shift-tracker/internal/shift"
	"github.com/frahmantamala/shift-tracker/internal/transport"
	"github.com/frahmantamala/shift-tracker/internal/transport/middleware"
	"github.com/frahmantamala/shift-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth   *auth.Handler
	Guard  *auth.Guard
	Policy *auth.Policy
	Shift  *shift.Handler
	Export *export.Handler

	AllowedOrigins []string
	// MetricsPath mounts the Prometheus endpoint when non-empty.
	MetricsPath string
}

type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(transport.NewBaseHandler(logger), db)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORS(h.AllowedOrigins))
	router.Use(middleware.Metrics)

	router.Get(swagger.SpecPath, swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())
	if h.MetricsPath != "" {
		router.Handle(h.MetricsPath, promhttp.Handler())
	}

	routes := []route{
		{http.MethodGet, "/", healthHandler.rootHandler},
		{http.MethodGet, "/health", healthHandler.healthCheckHandler},
		{http.MethodPost, "/login", h.Auth.Login},
		{http.MethodPost, "/add-shift", h.Shift.RecordShift},
		{http.MethodGet, "/shifts/{user_id}", h.Shift.ListShifts},
		{http.MethodGet, "/export", h.Export.ExportMonthly},
	}

	registered := make(map[string]bool, len(routes))

	// Each route is guarded by the capability its pattern holds in the policy table.
	for _, rt := range routes {
		registered[rt.pattern] = true
		capability := h.Policy.For(rt.pattern)
		router.With(h.Guard.Require(capability), middleware.UserContext).
			MethodFunc(rt.method, rt.pattern, rt.handler)
		logger.Debug("route registered", "method", rt.method, "pattern", rt.pattern, "capability", capability)
	}

	for _, pattern := range h.Policy.Patterns() {
		if !registered[pattern] {
			logger.Warn("access policy names an unknown route", "pattern", pattern)
		}
	}
}

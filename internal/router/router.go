package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/pbx-dashboard/internal/handlers"
	"github.com/GregMSThompson/pbx-dashboard/internal/metrics"
	"github.com/GregMSThompson/pbx-dashboard/internal/middleware"
)

// NewRouter wires the dashboard API. auth resolves the caller's uid; use
// Middleware.FirebaseAuth in production or middleware.StaticUID locally.
func NewRouter(deps *handlers.Deps, auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)

	r.Handle("/metrics", metrics.Handler())

	dh := handlers.NewDashboardHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Mount("/dashboard", dh.DashboardRoutes())
	})
	return r
}

package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tablero-app/tablero-client/internal/handlers"
	"github.com/tablero-app/tablero-client/internal/middleware"
)

// NewRouter wires the localhost API the frontend talks to. Everything except
// the session endpoints requires an active session; the session middleware
// short-circuits before any backend call is made.
func NewRouter(deps *handlers.Deps, corsOrigin string) chi.Router {
	r := chi.NewRouter()

	lmw := middleware.NewLoggerMiddleware(deps.Log)
	smw := middleware.NewMiddleware(deps.SessionSvc)

	r.Use(chimiddleware.RequestID)
	r.Use(lmw.LoggerMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	ssh := handlers.NewSessionHandlers(deps)
	tbh := handlers.NewTableHandlers(deps)
	chh := handlers.NewChartHandlers(deps)
	dbh := handlers.NewDashboardHandlers(deps)
	sch := handlers.NewScenarioHandlers(deps)

	r.Mount("/session", ssh.SessionRoutes())

	r.Group(func(r chi.Router) {
		r.Use(smw.RequireSession)
		r.Mount("/tables", tbh.TableRoutes())
		r.Mount("/charts", chh.ChartRoutes())
		r.Mount("/dashboards", dbh.DashboardRoutes())
		r.Mount("/scenarios", sch.ScenarioRoutes())
	})

	return r
}

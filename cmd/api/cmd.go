package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/tablero-app/tablero-client/internal/bootstrap"
	"github.com/tablero-app/tablero-client/internal/config"
	"github.com/tablero-app/tablero-client/internal/handlers"
	"github.com/tablero-app/tablero-client/internal/response"
	"github.com/tablero-app/tablero-client/internal/router"
	"github.com/tablero-app/tablero-client/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)

	// services
	tserv := services.NewTableService(bs.Backend)
	cserv := services.NewChartService(bs.Backend)
	dserv := services.NewDashboardService(bs.Backend)
	wserv := services.NewWidgetService(bs.Backend, dserv)
	sserv := services.NewScenarioService(bs.Backend)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.SessionSvc = bs.Session
	deps.TableSvc = tserv
	deps.ChartSvc = cserv
	deps.DashboardSvc = dserv
	deps.WidgetSvc = wserv
	deps.ScenarioSvc = sserv

	// router
	r := router.NewRouter(deps, cfg.CORSOrigin)
	bs.Log.Info("listening", "addr", cfg.ListenAddr, "backend", cfg.BackendURL)
	err = http.ListenAndServe(cfg.ListenAddr, r)
	exitOnError("server start failed", err, bs.Log)
}

package handlers

import (
	"log/slog"

	"github.com/tablero-app/tablero-client/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	SessionSvc      SessionService
	TableSvc        TableService
	ChartSvc        ChartService
	DashboardSvc    DashboardService
	WidgetSvc       WidgetService
	ScenarioSvc     ScenarioService
}

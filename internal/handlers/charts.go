package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/response"
	"github.com/tablero-app/tablero-client/internal/services"
)

type ChartService interface {
	GetChartData(ctx context.Context, req services.ChartRequest) (dto.ChartDataResponse, error)
}

type chartHandlers struct {
	ResponseHandler response.ResponseHandler
	ChartSvc        ChartService
}

func NewChartHandlers(deps *Deps) *chartHandlers {
	return &chartHandlers{
		ResponseHandler: deps.ResponseHandler,
		ChartSvc:        deps.ChartSvc,
	}
}

func (h *chartHandlers) ChartRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{table}", h.GetChartData)
	return r
}

func (h *chartHandlers) GetChartData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := services.ChartRequest{
		Table:     chi.URLParam(r, "table"),
		Kind:      q.Get("kind"),
		X:         q.Get("x"),
		Y:         q.Get("y"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
	data, err := h.ChartSvc.GetChartData(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, data)
}

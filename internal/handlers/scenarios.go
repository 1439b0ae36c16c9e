package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/response"
	"github.com/tablero-app/tablero-client/internal/services"
)

type ScenarioService interface {
	CreateComparison(ctx context.Context, name string) (dto.CreateComparisonResponse, error)
	List(ctx context.Context) ([]dto.Comparison, error)
	Get(ctx context.Context, compID int) (dto.Comparison, error)
	Delete(ctx context.Context, compID int) error
	AddScenario(ctx context.Context, compID int, in services.NewScenarioInput) (dto.AddScenarioResponse, error)
	DeleteScenario(ctx context.Context, compID, scenarioID int) error
	Run(ctx context.Context, scenarioIDs []int) (dto.ComparisonResult, error)
	Project(ctx context.Context, scenarioID, periods int) (dto.Scenario, error)
}

type scenarioHandlers struct {
	ResponseHandler response.ResponseHandler
	ScenarioSvc     ScenarioService
}

func NewScenarioHandlers(deps *Deps) *scenarioHandlers {
	return &scenarioHandlers{
		ResponseHandler: deps.ResponseHandler,
		ScenarioSvc:     deps.ScenarioSvc,
	}
}

func (h *scenarioHandlers) ScenarioRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListComparisons)
	r.Post("/", h.CreateComparison)
	r.Post("/compare", h.RunComparison) // must be before /{comparisonId}
	r.Get("/{comparisonId}", h.GetComparison)
	r.Delete("/{comparisonId}", h.DeleteComparison)
	r.Post("/{comparisonId}/scenarios", h.AddScenario)
	r.Delete("/{comparisonId}/scenarios/{scenarioId}", h.DeleteScenario)
	r.Post("/scenarios/{scenarioId}/project", h.GenerateProjection)
	return r
}

func (h *scenarioHandlers) ListComparisons(w http.ResponseWriter, r *http.Request) {
	comparisons, err := h.ScenarioSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, comparisons)
}

type createComparisonRequest struct {
	Name string `json:"name"`
}

func (h *scenarioHandlers) CreateComparison(w http.ResponseWriter, r *http.Request) {
	var req createComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	resp, err := h.ScenarioSvc.CreateComparison(r.Context(), req.Name)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, resp)
}

func (h *scenarioHandlers) GetComparison(w http.ResponseWriter, r *http.Request) {
	compID, err := urlInt(r, "comparisonId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	comparison, err := h.ScenarioSvc.Get(r.Context(), compID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, comparison)
}

func (h *scenarioHandlers) DeleteComparison(w http.ResponseWriter, r *http.Request) {
	compID, err := urlInt(r, "comparisonId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.ScenarioSvc.Delete(r.Context(), compID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

type addScenarioRequest struct {
	Name         string               `json:"name"`
	SourceType   string               `json:"source_type,omitempty"`
	SourceID     string               `json:"source_id"`
	Columns      []string             `json:"columns,omitempty"`
	Filters      []services.RawFilter `json:"filters,omitempty"`
	TakeSnapshot bool                 `json:"take_snapshot,omitempty"`
}

func (h *scenarioHandlers) AddScenario(w http.ResponseWriter, r *http.Request) {
	compID, err := urlInt(r, "comparisonId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var req addScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	resp, err := h.ScenarioSvc.AddScenario(r.Context(), compID, services.NewScenarioInput{
		Name:         req.Name,
		SourceType:   req.SourceType,
		SourceID:     req.SourceID,
		Columns:      req.Columns,
		Filters:      req.Filters,
		TakeSnapshot: req.TakeSnapshot,
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, resp)
}

func (h *scenarioHandlers) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	compID, err := urlInt(r, "comparisonId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	scenarioID, err := urlInt(r, "scenarioId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.ScenarioSvc.DeleteScenario(r.Context(), compID, scenarioID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

type runComparisonRequest struct {
	ScenarioIDs []int `json:"scenario_ids"`
}

func (h *scenarioHandlers) RunComparison(w http.ResponseWriter, r *http.Request) {
	var req runComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	result, err := h.ScenarioSvc.Run(r.Context(), req.ScenarioIDs)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

type projectionRequest struct {
	Periods int `json:"periods"`
}

func (h *scenarioHandlers) GenerateProjection(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := urlInt(r, "scenarioId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var req projectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	scenario, err := h.ScenarioSvc.Project(r.Context(), scenarioID, req.Periods)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, scenario)
}

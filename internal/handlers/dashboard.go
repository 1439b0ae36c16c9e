package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/models"
	"github.com/tablero-app/tablero-client/internal/response"
	"github.com/tablero-app/tablero-client/internal/services"
)

type DashboardService interface {
	List(ctx context.Context) ([]dto.Dashboard, error)
	Create(ctx context.Context, req dto.CreateDashboardRequest) (dto.Dashboard, error)
	Update(ctx context.Context, id int, req dto.UpdateDashboardRequest) (dto.Dashboard, error)
	Delete(ctx context.Context, id int) error
	Load(ctx context.Context, id int) error
	Active() (*models.Dashboard, services.LayoutState)
	AddItem(ctx context.Context, itemType, chartType string, tableID int) (*models.Item, error)
	AddScenarioItem(ctx context.Context, dashID, scenarioID int) (dto.Item, error)
	RemoveItem(ctx context.Context, itemID int) error
	ApplyLayout(ctx context.Context, proposals []services.GeometryProposal) (int, error)
	ItemData(ctx context.Context, dashID, itemID int) (json.RawMessage, error)
}

type WidgetService interface {
	SaveItem(ctx context.Context, dashID int, item *models.Item) (dto.Item, error)
	EditorChoices(ctx context.Context, tableID int, itemType, chartType string) (dto.ValidColumnsResponse, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    DashboardService
	WidgetSvc       WidgetService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
		WidgetSvc:       deps.WidgetSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListDashboards)
	r.Post("/", h.CreateDashboard)
	r.Get("/active", h.GetActive) // must be before /{dashboardId}
	r.Get("/valid-columns", h.GetEditorChoices)
	r.Put("/{dashboardId}", h.UpdateDashboard)
	r.Delete("/{dashboardId}", h.DeleteDashboard)
	r.Post("/{dashboardId}/load", h.LoadDashboard)
	r.Post("/{dashboardId}/layout", h.ApplyLayout)
	r.Post("/{dashboardId}/items", h.SaveNewItem)
	r.Post("/{dashboardId}/items/quick", h.QuickAddItem)
	r.Post("/{dashboardId}/scenario-items", h.PinScenario)
	r.Put("/{dashboardId}/items/{itemId}", h.SaveExistingItem)
	r.Delete("/{dashboardId}/items/{itemId}", h.DeleteItem)
	r.Get("/{dashboardId}/items/{itemId}/data", h.GetItemData)
	return r
}

func (h *dashboardHandlers) ListDashboards(w http.ResponseWriter, r *http.Request) {
	dashboards, err := h.DashboardSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dashboards)
}

func (h *dashboardHandlers) CreateDashboard(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	dash, err := h.DashboardSvc.Create(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dash)
}

func (h *dashboardHandlers) UpdateDashboard(w http.ResponseWriter, r *http.Request) {
	dashID, err := urlInt(r, "dashboardId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var req dto.UpdateDashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	dash, err := h.DashboardSvc.Update(r.Context(), dashID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dash)
}

func (h *dashboardHandlers) DeleteDashboard(w http.ResponseWriter, r *http.Request) {
	dashID, err := urlInt(r, "dashboardId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.DashboardSvc.Delete(r.Context(), dashID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

// activeView is the layout model snapshot exposed to the frontend.
type activeView struct {
	State     services.LayoutState `json:"state"`
	Dashboard *models.Dashboard    `json:"dashboard,omitempty"`
}

func (h *dashboardHandlers) LoadDashboard(w http.ResponseWriter, r *http.Request) {
	dashID, err := urlInt(r, "dashboardId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.DashboardSvc.Load(r.Context(), dashID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	dash, state := h.DashboardSvc.Active()
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, activeView{State: state, Dashboard: dash})
}

func (h *dashboardHandlers) GetActive(w http.ResponseWriter, r *http.Request) {
	dash, state := h.DashboardSvc.Active()
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, activeView{State: state, Dashboard: dash})
}

type applyLayoutRequest struct {
	Changes []services.GeometryProposal `json:"changes"`
}

type applyLayoutResponse struct {
	Updated int `json:"updated"`
}

func (h *dashboardHandlers) ApplyLayout(w http.ResponseWriter, r *http.Request) {
	var req applyLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	updated, err := h.DashboardSvc.ApplyLayout(r.Context(), req.Changes)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, applyLayoutResponse{Updated: updated})
}

type quickAddRequest struct {
	ItemType  string `json:"item_type"`
	ChartType string `json:"chart_type,omitempty"`
	TableID   int    `json:"table_id,omitempty"`
}

func (h *dashboardHandlers) QuickAddItem(w http.ResponseWriter, r *http.Request) {
	var req quickAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	item, err := h.DashboardSvc.AddItem(r.Context(), req.ItemType, req.ChartType, req.TableID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, item)
}

type pinScenarioRequest struct {
	ScenarioID int `json:"scenario_id"`
}

func (h *dashboardHandlers) PinScenario(w http.ResponseWriter, r *http.Request) {
	dashID, err := urlInt(r, "dashboardId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var req pinScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	item, err := h.DashboardSvc.AddScenarioItem(r.Context(), dashID, req.ScenarioID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, item)
}

// saveItemRequest is the editor's save payload. Config arrives as the flat
// key map the frontend edits; it is lifted into the typed variant before
// validation.
type saveItemRequest struct {
	ItemType        string          `json:"item_type"`
	ChartType       string          `json:"chart_type,omitempty"`
	TableID         int             `json:"table_id,omitempty"`
	Geometry        models.Geometry `json:"geometry"`
	Config          map[string]any  `json:"config"`
	Filters         map[string]any  `json:"filters,omitempty"`
	RefreshInterval *int            `json:"refresh_interval,omitempty"`
}

func (req *saveItemRequest) toModel(itemID int) (*models.Item, error) {
	cfg, err := models.ConfigFromMap(req.ItemType, req.Config)
	if err != nil {
		return nil, errs.NewValidationError(err.Error())
	}
	return &models.Item{
		ID:              itemID,
		ItemType:        req.ItemType,
		ChartType:       req.ChartType,
		TableID:         req.TableID,
		Geometry:        req.Geometry,
		Config:          cfg,
		Filters:         req.Filters,
		RefreshInterval: req.RefreshInterval,
	}, nil
}

func (h *dashboardHandlers) SaveNewItem(w http.ResponseWriter, r *http.Request) {
	h.saveItem(w, r, 0)
}

func (h *dashboardHandlers) SaveExistingItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlInt(r, "itemId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.saveItem(w, r, itemID)
}

func (h *dashboardHandlers) saveItem(w http.ResponseWriter, r *http.Request, itemID int) {
	dashID, err := urlInt(r, "dashboardId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var req saveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	if req.Config == nil {
		req.Config = map[string]any{}
	}
	item, err := req.toModel(itemID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	saved, err := h.WidgetSvc.SaveItem(r.Context(), dashID, item)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	status := http.StatusOK
	if itemID == 0 {
		status = http.StatusCreated
	}
	h.ResponseHandler.WriteSuccess(w, r, status, saved)
}

func (h *dashboardHandlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlInt(r, "itemId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.DashboardSvc.RemoveItem(r.Context(), itemID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *dashboardHandlers) GetItemData(w http.ResponseWriter, r *http.Request) {
	dashID, err := urlInt(r, "dashboardId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	itemID, err := urlInt(r, "itemId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	data, err := h.DashboardSvc.ItemData(r.Context(), dashID, itemID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, data)
}

func (h *dashboardHandlers) GetEditorChoices(w http.ResponseWriter, r *http.Request) {
	tableID, err := queryInt(r, "table_id", 0)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	q := r.URL.Query()
	choices, err := h.WidgetSvc.EditorChoices(r.Context(), tableID, q.Get("item_type"), q.Get("chart_type"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, choices)
}

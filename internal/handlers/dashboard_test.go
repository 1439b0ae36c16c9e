package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/models"
	"github.com/tablero-app/tablero-client/internal/response"
	"github.com/tablero-app/tablero-client/internal/services"
	"github.com/tablero-app/tablero-client/pkg/logger"
)

// --- Stubs ---

type stubDashboardService struct {
	layoutUpdated  int
	layoutErr      error
	lastProposals  []services.GeometryProposal
	activeDash     *models.Dashboard
	activeState    services.LayoutState
	loadErr        error
	removeErr      error
	removedItem    int
	scenarioResult dto.Item
}

func (s *stubDashboardService) List(_ context.Context) ([]dto.Dashboard, error) {
	return []dto.Dashboard{{ID: 1, Title: "Sales"}}, nil
}

func (s *stubDashboardService) Create(_ context.Context, req dto.CreateDashboardRequest) (dto.Dashboard, error) {
	if strings.TrimSpace(req.Title) == "" {
		return dto.Dashboard{}, errs.NewValidationError("dashboard title is required")
	}
	return dto.Dashboard{ID: 2, Title: req.Title}, nil
}

func (s *stubDashboardService) Update(_ context.Context, id int, _ dto.UpdateDashboardRequest) (dto.Dashboard, error) {
	return dto.Dashboard{ID: id}, nil
}

func (s *stubDashboardService) Delete(_ context.Context, _ int) error { return nil }

func (s *stubDashboardService) Load(_ context.Context, _ int) error { return s.loadErr }

func (s *stubDashboardService) Active() (*models.Dashboard, services.LayoutState) {
	return s.activeDash, s.activeState
}

func (s *stubDashboardService) AddItem(_ context.Context, itemType, chartType string, _ int) (*models.Item, error) {
	return &models.Item{ID: 9, ItemType: itemType, ChartType: chartType}, nil
}

func (s *stubDashboardService) AddScenarioItem(_ context.Context, _, _ int) (dto.Item, error) {
	return s.scenarioResult, nil
}

func (s *stubDashboardService) RemoveItem(_ context.Context, itemID int) error {
	s.removedItem = itemID
	return s.removeErr
}

func (s *stubDashboardService) ApplyLayout(_ context.Context, proposals []services.GeometryProposal) (int, error) {
	s.lastProposals = proposals
	return s.layoutUpdated, s.layoutErr
}

func (s *stubDashboardService) ItemData(_ context.Context, _, _ int) (json.RawMessage, error) {
	return json.RawMessage(`{"tipo":"barras"}`), nil
}

type stubWidgetService struct {
	saved    dto.Item
	saveErr  error
	lastItem *models.Item
	lastDash int
}

func (s *stubWidgetService) SaveItem(_ context.Context, dashID int, item *models.Item) (dto.Item, error) {
	s.lastDash = dashID
	s.lastItem = item
	if s.saveErr != nil {
		return dto.Item{}, s.saveErr
	}
	return s.saved, nil
}

func (s *stubWidgetService) EditorChoices(_ context.Context, _ int, _, _ string) (dto.ValidColumnsResponse, error) {
	return dto.ValidColumnsResponse{X: []string{"pais"}}, nil
}

func newDashboardDeps(dsvc *stubDashboardService, wsvc *stubWidgetService) *Deps {
	log := logger.New("info", logger.NewTestHandler)
	return &Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		DashboardSvc:    dsvc,
		WidgetSvc:       wsvc,
	}
}

func doRequest(t *testing.T, deps *Deps, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewDashboardHandlers(deps)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.DashboardRoutes().ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestApplyLayoutEndpoint(t *testing.T) {
	dsvc := &stubDashboardService{layoutUpdated: 2}
	deps := newDashboardDeps(dsvc, &stubWidgetService{})

	body := `{"changes":[
		{"item_id":1,"geometry":{"x":0,"y":0,"width":4,"height":3}},
		{"item_id":2,"geometry":{"x":4,"y":0,"width":4,"height":3}}
	]}`
	rec := doRequest(t, deps, http.MethodPost, "/7/layout", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(dsvc.lastProposals) != 2 {
		t.Fatalf("proposals = %d, want 2", len(dsvc.lastProposals))
	}
	if g := dsvc.lastProposals[1].Geometry; g.X != 4 || g.Width != 4 {
		t.Errorf("second proposal geometry = %+v", g)
	}

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Updated int `json:"updated"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !env.Success || env.Data.Updated != 2 {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestApplyLayoutEndpoint_ValidationErrorIs400(t *testing.T) {
	dsvc := &stubDashboardService{layoutErr: errs.NewValidationError("geometry out of range")}
	deps := newDashboardDeps(dsvc, &stubWidgetService{})

	rec := doRequest(t, deps, http.MethodPost, "/7/layout", `{"changes":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body response.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Code != "invalid_input" {
		t.Errorf("code = %q, want invalid_input", body.Code)
	}
}

func TestCreateDashboardEndpoint_EmptyTitle(t *testing.T) {
	deps := newDashboardDeps(&stubDashboardService{}, &stubWidgetService{})
	rec := doRequest(t, deps, http.MethodPost, "/", `{"title":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSaveItemEndpoint_BuildsTypedConfig(t *testing.T) {
	wsvc := &stubWidgetService{saved: dto.Item{ID: 12}}
	deps := newDashboardDeps(&stubDashboardService{}, wsvc)

	body := `{
		"item_type":"chart","chart_type":"bar","table_id":3,
		"geometry":{"x":0,"y":0,"width":4,"height":3},
		"config":{"title":"Sales","x_axis":"pais","y_axis":"ventas"}
	}`
	rec := doRequest(t, deps, http.MethodPut, "/7/items/12", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if wsvc.lastDash != 7 || wsvc.lastItem.ID != 12 {
		t.Errorf("save got dash=%d item=%d", wsvc.lastDash, wsvc.lastItem.ID)
	}
	cfg, ok := wsvc.lastItem.Config.(models.ChartConfig)
	if !ok {
		t.Fatalf("config type = %T, want ChartConfig", wsvc.lastItem.Config)
	}
	if cfg.XAxis != "pais" || cfg.YAxis != "ventas" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestSaveItemEndpoint_UnknownItemType(t *testing.T) {
	deps := newDashboardDeps(&stubDashboardService{}, &stubWidgetService{})
	rec := doRequest(t, deps, http.MethodPost, "/7/items", `{"item_type":"gauge","config":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSessionExpiredMapsTo401(t *testing.T) {
	wsvc := &stubWidgetService{saveErr: errs.NewSessionExpiredError()}
	deps := newDashboardDeps(&stubDashboardService{}, wsvc)

	body := `{"item_type":"text","config":{"title":"Note","text":"hi"}}`
	rec := doRequest(t, deps, http.MethodPost, "/7/items", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var errBody response.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if errBody.Code != "session_expired" {
		t.Errorf("code = %q, want session_expired", errBody.Code)
	}
}

func TestBackendErrorStatusPropagates(t *testing.T) {
	wsvc := &stubWidgetService{saveErr: errs.NewRequestError(409, "duplicate item")}
	deps := newDashboardDeps(&stubDashboardService{}, wsvc)

	body := `{"item_type":"text","config":{"title":"Note","text":"hi"}}`
	rec := doRequest(t, deps, http.MethodPost, "/7/items", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestDeleteItemEndpoint(t *testing.T) {
	dsvc := &stubDashboardService{}
	deps := newDashboardDeps(dsvc, &stubWidgetService{})

	rec := doRequest(t, deps, http.MethodDelete, "/7/items/12", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if dsvc.removedItem != 12 {
		t.Errorf("removed item = %d, want 12", dsvc.removedItem)
	}
}

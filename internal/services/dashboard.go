package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/models"
	"github.com/tablero-app/tablero-client/pkg/helpers"
)

// dashboardAPI is the backend dashboard surface used by dashboardService.
type dashboardAPI interface {
	ListDashboards(ctx context.Context) ([]dto.Dashboard, error)
	CreateDashboard(ctx context.Context, req dto.CreateDashboardRequest) (dto.Dashboard, error)
	GetDashboard(ctx context.Context, id int) (dto.Dashboard, error)
	UpdateDashboard(ctx context.Context, id int, req dto.UpdateDashboardRequest) (dto.Dashboard, error)
	DeleteDashboard(ctx context.Context, id int) error
	AddItem(ctx context.Context, dashID int, req dto.CreateItemRequest) (dto.Item, error)
	UpdateItem(ctx context.Context, dashID, itemID int, req dto.UpdateItemRequest) (dto.Item, error)
	DeleteItem(ctx context.Context, dashID, itemID int) error
	GetItemData(ctx context.Context, dashID, itemID int) (json.RawMessage, error)
}

// LayoutState is the lifecycle of the active dashboard.
type LayoutState string

const (
	StateUnloaded LayoutState = "unloaded"
	StateLoading  LayoutState = "loading"
	StateLoaded   LayoutState = "loaded"
	StateError    LayoutState = "error"
)

// GeometryProposal is one entry of a layout-engine batch: the geometry an
// item should have after a drag or resize.
type GeometryProposal struct {
	ItemID   int             `json:"item_id"`
	Geometry models.Geometry `json:"geometry"`
}

// dashboardService holds the authoritative in-memory layout of the active
// dashboard and reconciles layout-engine batches into minimal update calls.
//
// The mutex guards the snapshot only; network calls run outside it, so
// overlapping batches keep the product's semantics: the later-resolving
// response wins and the reload-after-batch is the consistency backstop.
type dashboardService struct {
	api dashboardAPI

	mu      sync.Mutex
	state   LayoutState
	active  *models.Dashboard
	lastErr error
}

func NewDashboardService(api dashboardAPI) *dashboardService {
	return &dashboardService{api: api, state: StateUnloaded}
}

func (s *dashboardService) List(ctx context.Context) ([]dto.Dashboard, error) {
	return s.api.ListDashboards(ctx)
}

func (s *dashboardService) Create(ctx context.Context, req dto.CreateDashboardRequest) (dto.Dashboard, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return dto.Dashboard{}, errs.NewValidationError("dashboard title is required")
	}
	if req.Theme == "" {
		req.Theme = "light"
	}
	return s.api.CreateDashboard(ctx, req)
}

func (s *dashboardService) Update(ctx context.Context, id int, req dto.UpdateDashboardRequest) (dto.Dashboard, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return dto.Dashboard{}, errs.NewValidationError("dashboard title cannot be empty")
	}
	d, err := s.api.UpdateDashboard(ctx, id, req)
	if err != nil {
		return dto.Dashboard{}, err
	}
	if s.activeID() == id {
		return d, s.Load(ctx, id)
	}
	return d, nil
}

// Delete removes a dashboard; the backend cascades to its items. Deleting
// the active dashboard resets the layout model.
func (s *dashboardService) Delete(ctx context.Context, id int) error {
	if err := s.api.DeleteDashboard(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	if s.active != nil && s.active.ID == id {
		s.active = nil
		s.state = StateUnloaded
	}
	s.mu.Unlock()
	return nil
}

// Load fetches the full dashboard representation and makes it the active
// layout. A failed fetch moves the model to StateError; calling Load again
// retries.
func (s *dashboardService) Load(ctx context.Context, id int) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	d, err := s.api.GetDashboard(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.lastErr = err
		return err
	}
	s.active = dashboardFromDTO(d)
	s.state = StateLoaded
	s.lastErr = nil
	return nil
}

// Active returns a snapshot of the active dashboard and the model state.
func (s *dashboardService) Active() (*models.Dashboard, LayoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.state
}

// ReloadIfActive refreshes the layout model when dashID is the active
// dashboard; writes to other dashboards leave it untouched.
func (s *dashboardService) ReloadIfActive(ctx context.Context, dashID int) error {
	if s.activeID() != dashID {
		return nil
	}
	return s.Load(ctx, dashID)
}

// ItemData fetches a widget's display payload. The shape depends on the
// widget type, so it passes through undecoded.
func (s *dashboardService) ItemData(ctx context.Context, dashID, itemID int) (json.RawMessage, error) {
	return s.api.GetItemData(ctx, dashID, itemID)
}

func (s *dashboardService) activeID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return 0
	}
	return s.active.ID
}

// AddItem appends a new widget with the product's placement defaults: top
// left of the first free band, 4×3 cells, a placeholder title. The dashboard
// is reloaded afterwards so backend-assigned fields come back.
func (s *dashboardService) AddItem(ctx context.Context, itemType, chartType string, tableID int) (*models.Item, error) {
	s.mu.Lock()
	if s.state != StateLoaded || s.active == nil {
		s.mu.Unlock()
		return nil, errs.NewValidationError("no active dashboard")
	}
	dashID := s.active.ID
	stack := len(s.active.Items)
	s.mu.Unlock()

	if itemType != dto.ItemTypeChart {
		chartType = ""
	}
	item := &models.Item{
		ItemType:  itemType,
		ChartType: chartType,
		TableID:   tableID,
		Geometry:  models.Geometry{X: 0, Y: stack * 2, Width: 4, Height: 3},
	}
	cfg, err := models.ConfigFromMap(itemType, map[string]any{"title": itemType + " demo"})
	if err != nil {
		return nil, errs.NewValidationError(err.Error())
	}
	item.Config = cfg

	created, err := s.api.AddItem(ctx, dashID, createItemRequest(item))
	if err != nil {
		return nil, err
	}
	if err := s.Load(ctx, dashID); err != nil {
		return nil, err
	}
	return itemFromDTO(&created), nil
}

// AddScenarioItem pins a scenario comparison onto a dashboard as a 6×4
// widget.
func (s *dashboardService) AddScenarioItem(ctx context.Context, dashID, scenarioID int) (dto.Item, error) {
	item := &models.Item{
		ItemType: dto.ItemTypeScenario,
		Geometry: models.Geometry{X: 0, Y: 0, Width: 6, Height: 4},
		Config:   models.ScenarioRefConfig{Title: "Scenario comparison", ScenarioID: scenarioID},
	}
	created, err := s.api.AddItem(ctx, dashID, createItemRequest(item))
	if err != nil {
		return dto.Item{}, err
	}
	if err := s.ReloadIfActive(ctx, dashID); err != nil {
		return dto.Item{}, err
	}
	return created, nil
}

// RemoveItem deletes a widget and reloads the active dashboard.
func (s *dashboardService) RemoveItem(ctx context.Context, itemID int) error {
	s.mu.Lock()
	if s.state != StateLoaded || s.active == nil {
		s.mu.Unlock()
		return errs.NewValidationError("no active dashboard")
	}
	dashID := s.active.ID
	item := s.active.Item(itemID)
	s.mu.Unlock()

	if item == nil {
		return errs.NewNotFoundError("item not on the active dashboard")
	}

	if err := s.api.DeleteItem(ctx, dashID, itemID); err != nil {
		return err
	}
	return s.Load(ctx, dashID)
}

// ApplyLayout reconciles a layout-engine batch against the stored geometry.
// Only items whose geometry actually changed produce an update request;
// updates succeed or fail independently (no rollback) and the dashboard is
// reloaded afterwards to resynchronize with backend-assigned state. A batch
// with no changes issues no network calls. Returns the number of update
// requests issued.
func (s *dashboardService) ApplyLayout(ctx context.Context, proposals []GeometryProposal) (int, error) {
	for _, p := range proposals {
		if err := p.Geometry.Validate(); err != nil {
			return 0, errs.NewValidationError(err.Error())
		}
	}

	s.mu.Lock()
	if s.state != StateLoaded || s.active == nil {
		s.mu.Unlock()
		return 0, errs.NewValidationError("no active dashboard")
	}
	dashID := s.active.ID
	current := make(map[int]models.Geometry, len(s.active.Items))
	for _, it := range s.active.Items {
		current[it.ID] = it.Geometry
	}
	s.mu.Unlock()

	var firstErr error
	updated := 0
	for _, p := range proposals {
		stored, ok := current[p.ItemID]
		if !ok || stored.Equal(p.Geometry) {
			continue
		}
		req := dto.UpdateItemRequest{
			PositionX: helpers.Ptr(p.Geometry.X),
			PositionY: helpers.Ptr(p.Geometry.Y),
			Width:     helpers.Ptr(p.Geometry.Width),
			Height:    helpers.Ptr(p.Geometry.Height),
		}
		if _, err := s.api.UpdateItem(ctx, dashID, p.ItemID, req); err != nil && firstErr == nil {
			firstErr = err
		}
		updated++
	}

	if updated == 0 {
		return 0, nil
	}
	if err := s.Load(ctx, dashID); err != nil && firstErr == nil {
		firstErr = err
	}
	return updated, firstErr
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/models"
)

// --- Fakes ---

type fakeWidgetAPI struct {
	columns         []string
	columnsErr      error
	validColumns    dto.ValidColumnsResponse
	lastKind        string
	addCalls        int
	lastAdd         dto.CreateItemRequest
	updateCalls     int
	lastUpdate      dto.UpdateItemRequest
	lastUpdateID    int
	writeErr        error
	validColumnsErr error
}

func (f *fakeWidgetAPI) AddItem(_ context.Context, _ int, req dto.CreateItemRequest) (dto.Item, error) {
	f.addCalls++
	f.lastAdd = req
	if f.writeErr != nil {
		return dto.Item{}, f.writeErr
	}
	return dto.Item{ID: 99, ItemType: req.ItemType, Config: req.Config}, nil
}

func (f *fakeWidgetAPI) UpdateItem(_ context.Context, _, itemID int, req dto.UpdateItemRequest) (dto.Item, error) {
	f.updateCalls++
	f.lastUpdateID = itemID
	f.lastUpdate = req
	if f.writeErr != nil {
		return dto.Item{}, f.writeErr
	}
	return dto.Item{ID: itemID}, nil
}

func (f *fakeWidgetAPI) GetValidColumns(_ context.Context, _ int, kind string) (dto.ValidColumnsResponse, error) {
	f.lastKind = kind
	if f.validColumnsErr != nil {
		return dto.ValidColumnsResponse{}, f.validColumnsErr
	}
	return f.validColumns, nil
}

func (f *fakeWidgetAPI) GetTableColumns(_ context.Context, _ int) ([]string, error) {
	if f.columnsErr != nil {
		return nil, f.columnsErr
	}
	return f.columns, nil
}

type fakeLayout struct {
	reloads int
	lastID  int
}

func (f *fakeLayout) ReloadIfActive(_ context.Context, dashID int) error {
	f.reloads++
	f.lastID = dashID
	return nil
}

func chartItem(chartType, x, y string) *models.Item {
	return &models.Item{
		ItemType:  dto.ItemTypeChart,
		ChartType: chartType,
		TableID:   3,
		Config:    models.ChartConfig{Title: "Sales", XAxis: x, YAxis: y},
	}
}

// --- Validation tests ---

func TestValidateItemConfig_BarChartNeedsBothAxes(t *testing.T) {
	item := chartItem(dto.ChartTypeBar, "pais", "")
	err := ValidateItemConfig(item, nil)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestValidateItemConfig_UnknownChartType(t *testing.T) {
	item := chartItem("sunburst", "pais", "ventas")
	err := ValidateItemConfig(item, nil)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestValidateItemConfig_ChartNeedsTable(t *testing.T) {
	item := chartItem(dto.ChartTypeBar, "pais", "ventas")
	item.TableID = 0
	err := ValidateItemConfig(item, nil)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestValidateItemConfig_TableKeepsStaleSelection(t *testing.T) {
	item := &models.Item{
		ItemType: dto.ItemTypeTable,
		TableID:  3,
		Config:   models.TableConfig{Title: "Rows", Columns: []string{"renamed_away"}},
	}
	if err := ValidateItemConfig(item, []string{"pais", "ventas"}); err != nil {
		t.Fatalf("stale selections must be kept, got %v", err)
	}
}

func TestValidateItemConfig_ScenarioNeedsReference(t *testing.T) {
	item := &models.Item{
		ItemType: dto.ItemTypeScenario,
		Config:   models.ScenarioRefConfig{Title: "Comparison"},
	}
	err := ValidateItemConfig(item, nil)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

// --- SaveItem tests ---

func TestSaveItem_InvalidChart_NoRequest(t *testing.T) {
	api := &fakeWidgetAPI{}
	layout := &fakeLayout{}
	svc := NewWidgetService(api, layout)

	_, err := svc.SaveItem(context.Background(), 7, chartItem(dto.ChartTypeBar, "pais", ""))
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if api.addCalls != 0 || api.updateCalls != 0 {
		t.Errorf("expected no write, add=%d update=%d", api.addCalls, api.updateCalls)
	}
	if layout.reloads != 0 {
		t.Errorf("expected no reload, got %d", layout.reloads)
	}
}

func TestSaveItem_CreatesWithConfigMap(t *testing.T) {
	api := &fakeWidgetAPI{}
	layout := &fakeLayout{}
	svc := NewWidgetService(api, layout)

	_, err := svc.SaveItem(context.Background(), 7, chartItem(dto.ChartTypeBar, "pais", "ventas"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.addCalls != 1 {
		t.Fatalf("add calls = %d, want 1", api.addCalls)
	}
	cfg := api.lastAdd.Config
	if cfg["x_axis"] != "pais" || cfg["y_axis"] != "ventas" {
		t.Errorf("config = %v, want both axes present", cfg)
	}
	if layout.reloads != 1 || layout.lastID != 7 {
		t.Errorf("reload = %d (dash %d), want 1 on dash 7", layout.reloads, layout.lastID)
	}
}

func TestSaveItem_KPIDefaultsToSum(t *testing.T) {
	api := &fakeWidgetAPI{}
	svc := NewWidgetService(api, &fakeLayout{})

	item := &models.Item{
		ItemType: dto.ItemTypeKPI,
		TableID:  3,
		Config:   models.KPIConfig{Title: "Total", Column: "ventas"},
	}
	if _, err := svc.SaveItem(context.Background(), 7, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastAdd.Config["agg"] != dto.AggSum {
		t.Errorf("agg = %v, want SUM", api.lastAdd.Config["agg"])
	}
}

func TestSaveItem_KPIInvalidAggregation(t *testing.T) {
	svc := NewWidgetService(&fakeWidgetAPI{}, &fakeLayout{})

	item := &models.Item{
		ItemType: dto.ItemTypeKPI,
		TableID:  3,
		Config:   models.KPIConfig{Title: "Total", Column: "ventas", Agg: "MEDIAN"},
	}
	_, err := svc.SaveItem(context.Background(), 7, item)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestSaveItem_SanitizesTextBody(t *testing.T) {
	api := &fakeWidgetAPI{}
	svc := NewWidgetService(api, &fakeLayout{})

	item := &models.Item{
		ItemType: dto.ItemTypeText,
		Config:   models.TextConfig{Title: "Note", Text: `<script>alert(1)</script><b>hello</b>`},
	}
	if _, err := svc.SaveItem(context.Background(), 7, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, _ := api.lastAdd.Config["text"].(string)
	if strings.Contains(text, "<script>") {
		t.Errorf("script tag survived sanitization: %q", text)
	}
	if !strings.Contains(text, "hello") {
		t.Errorf("benign content lost: %q", text)
	}
}

func TestSaveItem_TableFetchesColumns(t *testing.T) {
	api := &fakeWidgetAPI{columns: []string{"pais", "ventas"}}
	svc := NewWidgetService(api, &fakeLayout{})

	item := &models.Item{
		ItemType: dto.ItemTypeTable,
		TableID:  3,
		Config:   models.TableConfig{Title: "Rows"},
	}
	if _, err := svc.SaveItem(context.Background(), 7, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.addCalls != 1 {
		t.Errorf("add calls = %d, want 1", api.addCalls)
	}
}

func TestSaveItem_TableWithoutColumnsRejected(t *testing.T) {
	api := &fakeWidgetAPI{columns: nil}
	svc := NewWidgetService(api, &fakeLayout{})

	item := &models.Item{
		ItemType: dto.ItemTypeTable,
		TableID:  3,
		Config:   models.TableConfig{Title: "Rows"},
	}
	_, err := svc.SaveItem(context.Background(), 7, item)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestSaveItem_ExistingItemUpdates(t *testing.T) {
	api := &fakeWidgetAPI{}
	svc := NewWidgetService(api, &fakeLayout{})

	item := chartItem(dto.ChartTypeLine, "fecha", "ventas")
	item.ID = 12
	if _, err := svc.SaveItem(context.Background(), 7, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.updateCalls != 1 || api.lastUpdateID != 12 {
		t.Fatalf("update calls = %d (item %d), want 1 on item 12", api.updateCalls, api.lastUpdateID)
	}
	if api.lastUpdate.Config["x_axis"] != "fecha" {
		t.Errorf("config = %v, want updated axes", api.lastUpdate.Config)
	}
	if api.addCalls != 0 {
		t.Errorf("add calls = %d, want 0", api.addCalls)
	}
}

// --- EditorChoices tests ---

func TestEditorChoices_KPIUsesKPIKind(t *testing.T) {
	api := &fakeWidgetAPI{validColumns: dto.ValidColumnsResponse{Value: []string{"ventas"}}}
	svc := NewWidgetService(api, &fakeLayout{})

	if _, err := svc.EditorChoices(context.Background(), 3, dto.ItemTypeKPI, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastKind != "kpi" {
		t.Errorf("kind = %q, want kpi", api.lastKind)
	}
}

func TestEditorChoices_MissingChartType(t *testing.T) {
	svc := NewWidgetService(&fakeWidgetAPI{}, &fakeLayout{})
	_, err := svc.EditorChoices(context.Background(), 3, dto.ItemTypeChart, "")
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestEditorChoices_MissingTable(t *testing.T) {
	svc := NewWidgetService(&fakeWidgetAPI{}, &fakeLayout{})
	_, err := svc.EditorChoices(context.Background(), 0, dto.ItemTypeChart, dto.ChartTypeBar)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

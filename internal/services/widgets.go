package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/models"
	"github.com/tablero-app/tablero-client/pkg/helpers"
)

// widgetAPI is the backend surface used by widgetService.
type widgetAPI interface {
	AddItem(ctx context.Context, dashID int, req dto.CreateItemRequest) (dto.Item, error)
	UpdateItem(ctx context.Context, dashID, itemID int, req dto.UpdateItemRequest) (dto.Item, error)
	GetValidColumns(ctx context.Context, tableID int, kind string) (dto.ValidColumnsResponse, error)
	GetTableColumns(ctx context.Context, tableID int) ([]string, error)
}

// layoutReloader resynchronizes the layout model after a widget write.
type layoutReloader interface {
	ReloadIfActive(ctx context.Context, dashID int) error
}

type widgetService struct {
	api    widgetAPI
	layout layoutReloader
	html   *bluemonday.Policy
}

func NewWidgetService(api widgetAPI, layout layoutReloader) *widgetService {
	return &widgetService{
		api:    api,
		layout: layout,
		html:   bluemonday.UGCPolicy(),
	}
}

// validAggregations for KPI widgets.
var validAggregations = map[string]bool{
	dto.AggSum:   true,
	dto.AggCount: true,
	dto.AggAvg:   true,
	dto.AggMin:   true,
	dto.AggMax:   true,
}

// applyDefaults fills per-type defaults before validation.
func applyDefaults(item *models.Item) {
	if cfg, ok := item.Config.(models.KPIConfig); ok && cfg.Agg == "" {
		cfg.Agg = dto.AggSum
		item.Config = cfg
	}
}

// ValidateItemConfig enforces the per-(item_type, chart_type) rules of the
// widget editor. availableColumns is the source table's column list; it is
// only consulted for table items. Failures block the submission; the caller
// must not issue a request.
func ValidateItemConfig(item *models.Item, availableColumns []string) error {
	switch item.ItemType {
	case dto.ItemTypeChart:
		cfg, ok := item.Config.(models.ChartConfig)
		if !ok {
			return errs.NewValidationError("chart item requires a chart config")
		}
		if item.TableID == 0 {
			return errs.NewValidationError("chart item requires a source table")
		}
		switch item.ChartType {
		case dto.ChartTypeBar, dto.ChartTypeLine:
			if cfg.XAxis == "" || cfg.YAxis == "" {
				return errs.NewValidationError(
					fmt.Sprintf("%s chart requires both x_axis and y_axis", item.ChartType))
			}
		case dto.ChartTypePie:
			// Label and value ride the x_axis/y_axis keys.
			if cfg.XAxis == "" || cfg.YAxis == "" {
				return errs.NewValidationError("pie chart requires label and value columns")
			}
		default:
			return errs.NewValidationError("unknown chart type: " + item.ChartType)
		}

	case dto.ItemTypeKPI:
		cfg, ok := item.Config.(models.KPIConfig)
		if !ok {
			return errs.NewValidationError("kpi item requires a kpi config")
		}
		if item.TableID == 0 {
			return errs.NewValidationError("kpi item requires a source table")
		}
		if cfg.Column == "" {
			return errs.NewValidationError("kpi item requires a metric column")
		}
		if !validAggregations[cfg.Agg] {
			return errs.NewValidationError("kpi aggregation must be one of SUM, COUNT, AVG, MIN, MAX")
		}

	case dto.ItemTypeTable:
		if _, ok := item.Config.(models.TableConfig); !ok {
			return errs.NewValidationError("table item requires a table config")
		}
		if item.TableID == 0 {
			return errs.NewValidationError("table item requires a source table")
		}
		if len(availableColumns) == 0 {
			return errs.NewValidationError("source table has no columns")
		}
		// The chosen subset is optional; empty means all columns. Stale
		// selections referencing renamed columns are kept until the user
		// changes them.

	case dto.ItemTypeText:
		cfg, ok := item.Config.(models.TextConfig)
		if !ok {
			return errs.NewValidationError("text item requires a text config")
		}
		if strings.TrimSpace(cfg.Title) == "" {
			return errs.NewValidationError("text item requires a title")
		}

	case dto.ItemTypeScenario:
		cfg, ok := item.Config.(models.ScenarioRefConfig)
		if !ok || cfg.ScenarioID == 0 {
			return errs.NewValidationError("scenario item requires a scenario reference")
		}

	default:
		return errs.NewValidationError("unknown item type: " + item.ItemType)
	}
	return nil
}

// SaveItem validates and submits a widget: create when item.ID is zero,
// otherwise a config/type update of the existing item. Text bodies are
// sanitized before they are persisted. The active dashboard is reloaded
// after a successful write.
func (s *widgetService) SaveItem(ctx context.Context, dashID int, item *models.Item) (dto.Item, error) {
	if cfg, ok := item.Config.(models.TextConfig); ok {
		cfg.Text = s.html.Sanitize(cfg.Text)
		item.Config = cfg
	}
	applyDefaults(item)

	var available []string
	if item.ItemType == dto.ItemTypeTable {
		cols, err := s.api.GetTableColumns(ctx, item.TableID)
		if err != nil {
			return dto.Item{}, err
		}
		available = cols
	}
	if err := ValidateItemConfig(item, available); err != nil {
		return dto.Item{}, err
	}

	var (
		saved dto.Item
		err   error
	)
	if item.ID == 0 {
		if item.Geometry == (models.Geometry{}) {
			item.Geometry = models.Geometry{X: 0, Y: 0, Width: 4, Height: 3}
		}
		if gerr := item.Geometry.Validate(); gerr != nil {
			return dto.Item{}, errs.NewValidationError(gerr.Error())
		}
		saved, err = s.api.AddItem(ctx, dashID, createItemRequest(item))
	} else {
		req := dto.UpdateItemRequest{
			ItemType: helpers.Ptr(item.ItemType),
			Config:   item.Config.ConfigMap(),
		}
		if item.ChartType != "" {
			req.ChartType = helpers.Ptr(item.ChartType)
		}
		if item.TableID != 0 {
			req.TableID = helpers.Ptr(item.TableID)
		}
		saved, err = s.api.UpdateItem(ctx, dashID, item.ID, req)
	}
	if err != nil {
		return dto.Item{}, err
	}

	if rerr := s.layout.ReloadIfActive(ctx, dashID); rerr != nil {
		return saved, rerr
	}
	return saved, nil
}

// EditorChoices re-derives the column choices for an item's editor from the
// backend column policy: the chart type's axis roles, or the KPI metric
// role. Selections no longer present in the returned set are not cleared
// here; they persist until the user changes them.
func (s *widgetService) EditorChoices(ctx context.Context, tableID int, itemType, chartType string) (dto.ValidColumnsResponse, error) {
	kind := chartType
	if itemType == dto.ItemTypeKPI {
		kind = "kpi"
	}
	if kind == "" {
		return dto.ValidColumnsResponse{}, errs.NewValidationError("item has no chart type")
	}
	if tableID == 0 {
		return dto.ValidColumnsResponse{}, errs.NewValidationError("item has no source table")
	}
	return s.api.GetValidColumns(ctx, tableID, kind)
}

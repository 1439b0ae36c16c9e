package services

import (
	"context"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
)

// chartAPI is the backend chart surface used by chartService.
type chartAPI interface {
	GetChartData(ctx context.Context, table, kind, x, y, start, end string) (dto.ChartDataResponse, error)
}

// ChartSpec fixes the axis requirements of one chart kind and the category
// string the rendering backend expects.
type ChartSpec struct {
	Backend   string
	RequiresX bool
	RequiresY bool
}

// chartPolicy is the full policy table, keyed by backend category with the
// English UI aliases mapped alongside. KPI widgets ride the policy too: no X,
// a metric column in the Y role.
var chartPolicy = map[string]ChartSpec{
	dto.ChartPie:       {Backend: dto.ChartPie, RequiresX: true, RequiresY: false},
	"pie":              {Backend: dto.ChartPie, RequiresX: true, RequiresY: false},
	dto.ChartBar:       {Backend: dto.ChartBar, RequiresX: true, RequiresY: false},
	"bar":              {Backend: dto.ChartBar, RequiresX: true, RequiresY: false},
	dto.ChartLine:      {Backend: dto.ChartLine, RequiresX: true, RequiresY: true},
	"line":             {Backend: dto.ChartLine, RequiresX: true, RequiresY: true},
	dto.ChartHistogram: {Backend: dto.ChartHistogram, RequiresX: true, RequiresY: false},
	dto.ChartHeatmap:   {Backend: dto.ChartHeatmap, RequiresX: false, RequiresY: false},
	dto.ChartBoxplot:   {Backend: dto.ChartBoxplot, RequiresX: false, RequiresY: true},
	dto.ChartScatter:   {Backend: dto.ChartScatter, RequiresX: true, RequiresY: true},
	"scatter":          {Backend: dto.ChartScatter, RequiresX: true, RequiresY: true},
	"kpi":              {Backend: "kpi", RequiresX: false, RequiresY: true},
}

// PolicyFor resolves a chart kind to its spec. Unknown kinds fail validation
// here, before any request is issued.
func PolicyFor(kind string) (ChartSpec, error) {
	spec, ok := chartPolicy[kind]
	if !ok {
		return ChartSpec{}, errs.NewValidationError("unsupported chart kind: " + kind)
	}
	return spec, nil
}

// ChartRequest describes one chart-data fetch.
type ChartRequest struct {
	Table     string
	Kind      string
	X         string
	Y         string
	StartDate string
	EndDate   string
}

type chartService struct {
	api chartAPI
}

func NewChartService(api chartAPI) *chartService {
	return &chartService{api: api}
}

// GetChartData validates the request against the chart policy, then fetches.
func (s *chartService) GetChartData(ctx context.Context, req ChartRequest) (dto.ChartDataResponse, error) {
	spec, err := PolicyFor(req.Kind)
	if err != nil {
		return dto.ChartDataResponse{}, err
	}
	if spec.RequiresX && req.X == "" {
		return dto.ChartDataResponse{}, errs.NewValidationError("chart kind " + req.Kind + " requires an X column")
	}
	if spec.RequiresY && req.Y == "" {
		return dto.ChartDataResponse{}, errs.NewValidationError("chart kind " + req.Kind + " requires a Y column")
	}
	return s.api.GetChartData(ctx, req.Table, spec.Backend, req.X, req.Y, req.StartDate, req.EndDate)
}

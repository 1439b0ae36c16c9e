package services

import (
	"context"
	"strings"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
)

// scenarioAPI is the backend comparison/scenario surface.
type scenarioAPI interface {
	CreateComparison(ctx context.Context, name string) (dto.CreateComparisonResponse, error)
	ListComparisons(ctx context.Context) ([]dto.Comparison, error)
	GetComparison(ctx context.Context, compID int) (dto.Comparison, error)
	DeleteComparison(ctx context.Context, compID int) error
	AddScenario(ctx context.Context, compID int, req dto.AddScenarioRequest) (dto.AddScenarioResponse, error)
	DeleteScenario(ctx context.Context, compID, scenarioID int) error
	RunComparison(ctx context.Context, scenarioIDs []int) (dto.ComparisonResult, error)
	GenerateProjection(ctx context.Context, scenarioID, periods int) (dto.Scenario, error)
}

// NewScenarioInput is the scenario form's payload before normalization.
type NewScenarioInput struct {
	Name         string
	SourceType   string
	SourceID     string
	Columns      []string
	Filters      []RawFilter
	TakeSnapshot bool
}

type scenarioService struct {
	api scenarioAPI
}

func NewScenarioService(api scenarioAPI) *scenarioService {
	return &scenarioService{api: api}
}

func (s *scenarioService) CreateComparison(ctx context.Context, name string) (dto.CreateComparisonResponse, error) {
	if strings.TrimSpace(name) == "" {
		return dto.CreateComparisonResponse{}, errs.NewValidationError("comparison name is required")
	}
	return s.api.CreateComparison(ctx, name)
}

func (s *scenarioService) List(ctx context.Context) ([]dto.Comparison, error) {
	return s.api.ListComparisons(ctx)
}

func (s *scenarioService) Get(ctx context.Context, compID int) (dto.Comparison, error) {
	return s.api.GetComparison(ctx, compID)
}

func (s *scenarioService) Delete(ctx context.Context, compID int) error {
	return s.api.DeleteComparison(ctx, compID)
}

// AddScenario normalizes the form filters into canonical predicates and
// submits the scenario. Filters are never persisted client-side; they travel
// once with this request.
func (s *scenarioService) AddScenario(ctx context.Context, compID int, in NewScenarioInput) (dto.AddScenarioResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return dto.AddScenarioResponse{}, errs.NewValidationError("scenario name is required")
	}
	if in.SourceID == "" {
		return dto.AddScenarioResponse{}, errs.NewValidationError("scenario source is required")
	}
	if in.SourceType == "" {
		in.SourceType = dto.SourceTypeTable
	}

	req := dto.AddScenarioRequest{
		Name:         in.Name,
		SourceType:   in.SourceType,
		SourceID:     in.SourceID,
		Columns:      in.Columns,
		Filters:      NormalizeFilters(in.Filters),
		TakeSnapshot: in.TakeSnapshot,
	}
	return s.api.AddScenario(ctx, compID, req)
}

func (s *scenarioService) DeleteScenario(ctx context.Context, compID, scenarioID int) error {
	return s.api.DeleteScenario(ctx, compID, scenarioID)
}

// Run compares exactly two scenarios; anything else is rejected before the
// request is issued.
func (s *scenarioService) Run(ctx context.Context, scenarioIDs []int) (dto.ComparisonResult, error) {
	if len(scenarioIDs) != 2 {
		return dto.ComparisonResult{}, errs.NewValidationError("a comparison requires exactly two scenarios")
	}
	return s.api.RunComparison(ctx, scenarioIDs)
}

func (s *scenarioService) Project(ctx context.Context, scenarioID, periods int) (dto.Scenario, error) {
	if periods < 1 {
		return dto.Scenario{}, errs.NewValidationError("projection periods must be at least 1")
	}
	return s.api.GenerateProjection(ctx, scenarioID, periods)
}

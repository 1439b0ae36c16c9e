package backendclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tablero-app/tablero-client/internal/dto"
)

func (a *Adapter) CreateComparison(ctx context.Context, name string) (dto.CreateComparisonResponse, error) {
	var out dto.CreateComparisonResponse
	err := a.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/scenario",
		body:   dto.CreateComparisonRequest{Name: name},
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) ListComparisons(ctx context.Context) ([]dto.Comparison, error) {
	var out []dto.Comparison
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/scenario",
		authed: true,
	}, &out)
	return out, err
}

// GetComparison returns a comparison with its scenarios and, if it has been
// run, the computed statistics.
func (a *Adapter) GetComparison(ctx context.Context, compID int) (dto.Comparison, error) {
	var out dto.Comparison
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/scenario/" + strconv.Itoa(compID) + "/scenarios",
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) DeleteComparison(ctx context.Context, compID int) error {
	return a.doJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/scenario/" + strconv.Itoa(compID),
		authed: true,
	}, nil)
}

func (a *Adapter) AddScenario(ctx context.Context, compID int, req dto.AddScenarioRequest) (dto.AddScenarioResponse, error) {
	var out dto.AddScenarioResponse
	err := a.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/scenario/" + strconv.Itoa(compID) + "/scenarios",
		body:   req,
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) DeleteScenario(ctx context.Context, compID, scenarioID int) error {
	return a.doJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/scenario/" + strconv.Itoa(compID) + "/scenarios/" + strconv.Itoa(scenarioID),
		authed: true,
	}, nil)
}

func (a *Adapter) RunComparison(ctx context.Context, scenarioIDs []int) (dto.ComparisonResult, error) {
	var out dto.ComparisonResult
	err := a.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/scenario/compare",
		body:   dto.RunComparisonRequest{ScenarioIDs: scenarioIDs},
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) GenerateProjection(ctx context.Context, scenarioID, periods int) (dto.Scenario, error) {
	var out dto.Scenario
	err := a.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/scenario/" + strconv.Itoa(scenarioID) + "/project",
		body:   dto.ProjectionRequest{Periods: periods},
		authed: true,
	}, &out)
	return out, err
}

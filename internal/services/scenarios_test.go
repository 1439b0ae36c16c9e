package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
)

// --- Fakes ---

type fakeScenarioAPI struct {
	addCalls    int
	lastAdd     dto.AddScenarioRequest
	runCalls    int
	lastRunIDs  []int
	createCalls int
}

func (f *fakeScenarioAPI) CreateComparison(_ context.Context, _ string) (dto.CreateComparisonResponse, error) {
	f.createCalls++
	return dto.CreateComparisonResponse{ID: 1}, nil
}

func (f *fakeScenarioAPI) ListComparisons(_ context.Context) ([]dto.Comparison, error) {
	return nil, nil
}

func (f *fakeScenarioAPI) GetComparison(_ context.Context, compID int) (dto.Comparison, error) {
	return dto.Comparison{ID: compID}, nil
}

func (f *fakeScenarioAPI) DeleteComparison(_ context.Context, _ int) error {
	return nil
}

func (f *fakeScenarioAPI) AddScenario(_ context.Context, _ int, req dto.AddScenarioRequest) (dto.AddScenarioResponse, error) {
	f.addCalls++
	f.lastAdd = req
	return dto.AddScenarioResponse{ID: 5}, nil
}

func (f *fakeScenarioAPI) DeleteScenario(_ context.Context, _, _ int) error {
	return nil
}

func (f *fakeScenarioAPI) RunComparison(_ context.Context, scenarioIDs []int) (dto.ComparisonResult, error) {
	f.runCalls++
	f.lastRunIDs = scenarioIDs
	return dto.ComparisonResult{}, nil
}

func (f *fakeScenarioAPI) GenerateProjection(_ context.Context, scenarioID, _ int) (dto.Scenario, error) {
	return dto.Scenario{ID: scenarioID}, nil
}

// --- Tests ---

func TestCreateComparison_RequiresName(t *testing.T) {
	api := &fakeScenarioAPI{}
	svc := NewScenarioService(api)

	_, err := svc.CreateComparison(context.Background(), "  ")
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if api.createCalls != 0 {
		t.Errorf("expected no request, got %d", api.createCalls)
	}
}

func TestAddScenario_NormalizesFilters(t *testing.T) {
	api := &fakeScenarioAPI{}
	svc := NewScenarioService(api)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	_, err := svc.AddScenario(context.Background(), 1, NewScenarioInput{
		Name:     "Optimista",
		SourceID: "3",
		Filters: []RawFilter{
			{Column: "pais", Value: ""},
			{Column: "fecha", Value: []time.Time{start, end}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.lastAdd.Filters) != 1 {
		t.Fatalf("filters = %v, want the empty one dropped", api.lastAdd.Filters)
	}
	if api.lastAdd.Filters[0].Operator != dto.OperatorBetween {
		t.Errorf("operator = %q, want between", api.lastAdd.Filters[0].Operator)
	}
	if api.lastAdd.SourceType != dto.SourceTypeTable {
		t.Errorf("source type = %q, want default table", api.lastAdd.SourceType)
	}
}

func TestAddScenario_RequiresNameAndSource(t *testing.T) {
	api := &fakeScenarioAPI{}
	svc := NewScenarioService(api)

	cases := []NewScenarioInput{
		{Name: "", SourceID: "3"},
		{Name: "Optimista", SourceID: ""},
	}
	for _, in := range cases {
		_, err := svc.AddScenario(context.Background(), 1, in)
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%+v: expected ValidationError, got %T: %v", in, err, err)
		}
	}
	if api.addCalls != 0 {
		t.Errorf("expected no requests, got %d", api.addCalls)
	}
}

func TestRun_RequiresExactlyTwoScenarios(t *testing.T) {
	api := &fakeScenarioAPI{}
	svc := NewScenarioService(api)

	for _, ids := range [][]int{nil, {1}, {1, 2, 3}} {
		_, err := svc.Run(context.Background(), ids)
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%v: expected ValidationError, got %T: %v", ids, err, err)
		}
	}
	if api.runCalls != 0 {
		t.Errorf("expected no requests, got %d", api.runCalls)
	}

	if _, err := svc.Run(context.Background(), []int{4, 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.lastRunIDs) != 2 {
		t.Errorf("sent ids = %v, want two", api.lastRunIDs)
	}
}

func TestProject_RequiresPositivePeriods(t *testing.T) {
	svc := NewScenarioService(&fakeScenarioAPI{})
	_, err := svc.Project(context.Background(), 4, 0)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

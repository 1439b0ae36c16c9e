package dto

import "encoding/json"

// Scenario source types
const (
	SourceTypeTable  = "table"
	SourceTypeCSV    = "csv"
	SourceTypeManual = "manual"
)

// Filter operators
const (
	OperatorEquals  = "="
	OperatorBetween = "between"
)

// FilterPredicate is one canonical filter sent with a scenario. Value is a
// scalar for "=" and a two-element [start, end] slice for "between".
type FilterPredicate struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type CreateComparisonRequest struct {
	Name string `json:"name"`
}

type CreateComparisonResponse struct {
	ID int `json:"id"`
}

type Comparison struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	CreatedAt string      `json:"created_at"`
	Scenarios []*Scenario `json:"scenarios,omitempty"`
}

type Scenario struct {
	ID           int             `json:"id"`
	ComparisonID int             `json:"comparison_id"`
	Name         string          `json:"name"`
	SourceType   string          `json:"source_type"`
	SourceID     string          `json:"source_id"`
	DataSnapshot json.RawMessage `json:"data_snapshot,omitempty"`
}

type AddScenarioRequest struct {
	Name         string            `json:"name"`
	SourceType   string            `json:"source_type"`
	SourceID     string            `json:"source_id"`
	Columns      []string          `json:"columns,omitempty"`
	Filters      []FilterPredicate `json:"filters"`
	TakeSnapshot bool              `json:"take_snapshot"`
}

type AddScenarioResponse struct {
	ID int `json:"id"`
}

type RunComparisonRequest struct {
	ScenarioIDs []int `json:"scenario_ids"`
}

// ComparisonResult holds the backend-computed statistics. The client never
// interprets these beyond passing them through.
type ComparisonResult struct {
	Comparison    json.RawMessage `json:"comparison,omitempty"`
	Suggestions   json.RawMessage `json:"suggestions,omitempty"`
	Visualization json.RawMessage `json:"visualization,omitempty"`
}

type ProjectionRequest struct {
	Periods int `json:"periods"`
}

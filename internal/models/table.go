package models

// ColumnType is the inferred filter type of a table column.
type ColumnType string

const (
	ColumnNumber ColumnType = "number"
	ColumnDate   ColumnType = "date"
	ColumnString ColumnType = "string"
)

// ColumnProfile is the inference result for one column: its type and up to
// MaxDistinctValues sampled values for categorical filter choices.
type ColumnProfile struct {
	Name           string     `json:"name"`
	Type           ColumnType `json:"type"`
	DistinctValues []any      `json:"distinct_values"`
}

// MaxDistinctValues caps the categorical choices offered per column.
const MaxDistinctValues = 20

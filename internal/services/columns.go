package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tablero-app/tablero-client/internal/models"
)

// dateLayouts are the formats accepted when sniffing date columns.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
}

// ProfileColumns classifies every column of a sampled page and collects its
// categorical filter choices. rows are row-major and follow the order of
// columns.
func ProfileColumns(columns []string, rows [][]any) []models.ColumnProfile {
	profiles := make([]models.ColumnProfile, len(columns))
	for idx, name := range columns {
		values := make([]any, 0, len(rows))
		for _, row := range rows {
			if idx >= len(row) || row[idx] == nil {
				continue
			}
			values = append(values, row[idx])
		}
		profiles[idx] = models.ColumnProfile{
			Name:           name,
			Type:           InferColumnType(values),
			DistinctValues: DistinctValues(values),
		}
	}
	return profiles
}

// InferColumnType classifies a column from its non-null samples: numeric if
// the first sample parses as a number (boolean literals and the empty string
// never do), date if it parses as a date, string otherwise. An all-null
// column is a string column.
func InferColumnType(values []any) models.ColumnType {
	if len(values) == 0 {
		return models.ColumnString
	}
	sample := values[0]

	switch v := sample.(type) {
	case float64, int, int64:
		return models.ColumnNumber
	case bool:
		return models.ColumnString
	case string:
		if v == "" || v == "true" || v == "false" {
			return models.ColumnString
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return models.ColumnNumber
		}
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, v); err == nil {
				return models.ColumnDate
			}
		}
	}
	return models.ColumnString
}

// DistinctValues returns the distinct non-null samples in first-seen order,
// capped at models.MaxDistinctValues.
func DistinctValues(values []any) []any {
	seen := make(map[string]struct{}, len(values))
	out := make([]any, 0, models.MaxDistinctValues)
	for _, v := range values {
		if v == nil {
			continue
		}
		key := fmt.Sprintf("%T:%v", v, v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
		if len(out) == models.MaxDistinctValues {
			break
		}
	}
	return out
}

package services

import (
	"time"

	"github.com/tablero-app/tablero-client/internal/dto"
)

const filterDateLayout = "2006-01-02"

// RawFilter is one column's free-form filter input, in form order. Value may
// be a scalar, a two-element range, or empty.
type RawFilter struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

// NormalizeFilters converts form input into the canonical predicate list
// sent to the backend. Empty entries are dropped; two-element ranges become
// "between" predicates with date endpoints formatted to YYYY-MM-DD; any
// other value becomes an "=" predicate. Input order is preserved, nothing is
// deduplicated.
func NormalizeFilters(inputs []RawFilter) []dto.FilterPredicate {
	out := make([]dto.FilterPredicate, 0, len(inputs))
	for _, in := range inputs {
		if in.Value == nil {
			continue
		}
		if s, ok := in.Value.(string); ok && s == "" {
			continue
		}

		if start, end, ok := rangeEndpoints(in.Value); ok {
			out = append(out, dto.FilterPredicate{
				Column:   in.Column,
				Operator: dto.OperatorBetween,
				Value:    []any{formatEndpoint(start), formatEndpoint(end)},
			})
			continue
		}

		out = append(out, dto.FilterPredicate{
			Column:   in.Column,
			Operator: dto.OperatorEquals,
			Value:    in.Value,
		})
	}
	return out
}

func rangeEndpoints(v any) (start, end any, ok bool) {
	switch r := v.(type) {
	case []any:
		if len(r) == 2 {
			return r[0], r[1], true
		}
	case []time.Time:
		if len(r) == 2 {
			return r[0], r[1], true
		}
	case [2]time.Time:
		return r[0], r[1], true
	}
	return nil, nil, false
}

// formatEndpoint formats endpoints that expose a date representation;
// everything else passes through verbatim.
func formatEndpoint(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(filterDateLayout)
	}
	return v
}

package models

import (
	"fmt"
)

// MinItemSpan is the smallest width/height of an item in grid units.
const MinItemSpan = 2

// Geometry is an item's grid position and size.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (g Geometry) Equal(other Geometry) bool {
	return g == other
}

func (g Geometry) Validate() error {
	if g.X < 0 || g.Y < 0 {
		return fmt.Errorf("geometry position must be non-negative, got (%d,%d)", g.X, g.Y)
	}
	if g.Width < MinItemSpan || g.Height < MinItemSpan {
		return fmt.Errorf("geometry size must be at least %dx%d grid units, got %dx%d",
			MinItemSpan, MinItemSpan, g.Width, g.Height)
	}
	return nil
}

// Item is a widget placed on a dashboard's grid. Config is a tagged union:
// exactly one variant is set, matching ItemType, so a config valid only for
// another type cannot be carried by accident.
type Item struct {
	ID              int
	DashboardID     int
	ItemType        string
	ChartType       string
	TableID         int
	Geometry        Geometry
	Config          ItemConfig
	Filters         map[string]any
	RefreshInterval *int
}

// ItemConfig is one of ChartConfig, KPIConfig, TableConfig, TextConfig or
// ScenarioRefConfig.
type ItemConfig interface {
	// ConfigMap renders the variant as the flat key map the backend stores.
	ConfigMap() map[string]any

	isItemConfig()
}

// ChartConfig configures a chart item. For pie charts XAxis/YAxis are
// reinterpreted as label/value selections but keep their keys.
type ChartConfig struct {
	Title       string
	XAxis       string
	YAxis       string
	Aggregation string
}

// KPIConfig configures a single-value metric item.
type KPIConfig struct {
	Title  string
	Column string
	Agg    string
}

// TableConfig configures a table item. An empty Columns subset means all
// columns.
type TableConfig struct {
	Title   string
	Columns []string
}

// TextConfig configures a static text item.
type TextConfig struct {
	Title string
	Text  string
}

// ScenarioRefConfig pins a scenario comparison onto a dashboard.
type ScenarioRefConfig struct {
	Title      string
	ScenarioID int
}

func (ChartConfig) isItemConfig()       {}
func (KPIConfig) isItemConfig()         {}
func (TableConfig) isItemConfig()       {}
func (TextConfig) isItemConfig()        {}
func (ScenarioRefConfig) isItemConfig() {}

func (c ChartConfig) ConfigMap() map[string]any {
	m := map[string]any{"title": c.Title}
	if c.XAxis != "" {
		m["x_axis"] = c.XAxis
	}
	if c.YAxis != "" {
		m["y_axis"] = c.YAxis
	}
	if c.Aggregation != "" {
		m["aggregation"] = c.Aggregation
	}
	return m
}

func (c KPIConfig) ConfigMap() map[string]any {
	m := map[string]any{"title": c.Title}
	if c.Column != "" {
		m["column"] = c.Column
	}
	if c.Agg != "" {
		m["agg"] = c.Agg
	}
	return m
}

func (c TableConfig) ConfigMap() map[string]any {
	m := map[string]any{"title": c.Title}
	if len(c.Columns) > 0 {
		cols := make([]any, len(c.Columns))
		for i, col := range c.Columns {
			cols[i] = col
		}
		m["columns"] = cols
	}
	return m
}

func (c TextConfig) ConfigMap() map[string]any {
	return map[string]any{"title": c.Title, "text": c.Text}
}

func (c ScenarioRefConfig) ConfigMap() map[string]any {
	return map[string]any{"title": c.Title, "scenario_id": c.ScenarioID}
}

// ConfigFromMap builds the typed variant for itemType from the backend's
// flat config map. Unrecognized keys are dropped.
func ConfigFromMap(itemType string, m map[string]any) (ItemConfig, error) {
	get := func(key string) string {
		s, _ := m[key].(string)
		return s
	}

	switch itemType {
	case "chart":
		return ChartConfig{
			Title:       get("title"),
			XAxis:       get("x_axis"),
			YAxis:       get("y_axis"),
			Aggregation: get("aggregation"),
		}, nil
	case "kpi":
		return KPIConfig{
			Title:  get("title"),
			Column: get("column"),
			Agg:    get("agg"),
		}, nil
	case "table":
		cfg := TableConfig{Title: get("title")}
		if raw, ok := m["columns"].([]any); ok {
			for _, v := range raw {
				if s, ok := v.(string); ok {
					cfg.Columns = append(cfg.Columns, s)
				}
			}
		}
		return cfg, nil
	case "text":
		return TextConfig{Title: get("title"), Text: get("text")}, nil
	case "scenario":
		cfg := ScenarioRefConfig{Title: get("title")}
		switch id := m["scenario_id"].(type) {
		case float64:
			cfg.ScenarioID = int(id)
		case int:
			cfg.ScenarioID = id
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("unknown item type: %q", itemType)
}

package dto

// Item type constants
const (
	ItemTypeChart    = "chart"
	ItemTypeKPI      = "kpi"
	ItemTypeTable    = "table"
	ItemTypeText     = "text"
	ItemTypeScenario = "scenario"
)

// Chart type constants (UI-facing; the data request maps these onto the
// backend categories in dto/chart.go)
const (
	ChartTypeBar  = "bar"
	ChartTypeLine = "line"
	ChartTypePie  = "pie"
)

// KPI aggregation constants
const (
	AggSum   = "SUM"
	AggCount = "COUNT"
	AggAvg   = "AVG"
	AggMin   = "MIN"
	AggMax   = "MAX"
)

// Dashboard is the backend representation. Items is only populated on the
// detail endpoint.
type Dashboard struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Theme       string  `json:"theme"`
	IsPublic    bool    `json:"is_public"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	Items       []*Item `json:"items,omitempty"`
}

// Item is a positioned widget on a dashboard's grid. Config holds the
// per-type configuration as the backend stores it: a flat key map.
type Item struct {
	ID              int            `json:"id"`
	DashboardID     int            `json:"dashboard_id"`
	ItemType        string         `json:"item_type"`
	ChartType       string         `json:"chart_type,omitempty"`
	TableID         int            `json:"table_id,omitempty"`
	PositionX       int            `json:"position_x"`
	PositionY       int            `json:"position_y"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	Config          map[string]any `json:"config"`
	Filters         map[string]any `json:"filters,omitempty"`
	RefreshInterval *int           `json:"refresh_interval,omitempty"`
	LastRefresh     string         `json:"last_refresh,omitempty"`
}

type CreateDashboardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Theme       string `json:"theme,omitempty"`
	IsPublic    bool   `json:"is_public,omitempty"`
}

type UpdateDashboardRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Theme       *string `json:"theme,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

type CreateItemRequest struct {
	ItemType        string         `json:"item_type"`
	ChartType       string         `json:"chart_type,omitempty"`
	TableID         int            `json:"table_id,omitempty"`
	PositionX       int            `json:"position_x"`
	PositionY       int            `json:"position_y"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	Config          map[string]any `json:"config"`
	Filters         map[string]any `json:"filters,omitempty"`
	RefreshInterval *int           `json:"refresh_interval,omitempty"`
}

// UpdateItemRequest is a partial update; only set fields are sent. Layout
// drags send geometry only, the editor sends config/type fields.
type UpdateItemRequest struct {
	ItemType  *string        `json:"item_type,omitempty"`
	ChartType *string        `json:"chart_type,omitempty"`
	TableID   *int           `json:"table_id,omitempty"`
	PositionX *int           `json:"position_x,omitempty"`
	PositionY *int           `json:"position_y,omitempty"`
	Width     *int           `json:"width,omitempty"`
	Height    *int           `json:"height,omitempty"`
	Config    map[string]any `json:"config,omitempty"`
	Filters   map[string]any `json:"filters,omitempty"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}

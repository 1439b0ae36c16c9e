package dto

import "encoding/json"

// Backend chart categories. The rendering backend predates the English UI
// labels, so the request parameter stays Spanish.
const (
	ChartPie       = "pastel"
	ChartBar       = "barras"
	ChartLine      = "lineas"
	ChartHistogram = "histograma"
	ChartHeatmap   = "heatmap"
	ChartBoxplot   = "boxplot"
	ChartScatter   = "dispersión"
)

// ChartDataResponse is the raw chart payload. Data's shape depends on Kind:
// a label→value map for pastel/barras/lineas, {labels, values} for
// histograma, a column→column matrix for heatmap, {points} for dispersión
// and a describe-map for boxplot. Callers decode Data per kind.
type ChartDataResponse struct {
	Kind string          `json:"tipo"`
	Data json.RawMessage `json:"datos"`
}

// HistogramData is the decoded histograma payload.
type HistogramData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ValidColumnsResponse lists the columns usable per axis role for a chart
// kind (or for a KPI metric) on a given table.
type ValidColumnsResponse struct {
	X     []string `json:"x,omitempty"`
	Y     []string `json:"y,omitempty"`
	Label []string `json:"label,omitempty"`
	Value []string `json:"value,omitempty"`
}

package backendclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tablero-app/tablero-client/internal/dto"
)

// GetChartData fetches render-ready data for one chart. kind must already be
// the backend category (see services.ChartPolicy); x/y/start/end are only
// sent when set.
func (a *Adapter) GetChartData(ctx context.Context, table, kind, x, y, start, end string) (dto.ChartDataResponse, error) {
	q := url.Values{}
	q.Set("tipo", kind)
	if x != "" {
		q.Set("x", x)
	}
	if y != "" {
		q.Set("y", y)
	}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}

	var out dto.ChartDataResponse
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/graficar/" + url.PathEscape(table),
		query:  q,
		authed: true,
	}, &out)
	return out, err
}

// GetValidColumns asks the column-policy endpoint which columns may serve
// each axis role for a chart kind (or "kpi") on a table.
func (a *Adapter) GetValidColumns(ctx context.Context, tableID int, kind string) (dto.ValidColumnsResponse, error) {
	q := url.Values{}
	q.Set("table_id", strconv.Itoa(tableID))
	q.Set("kind", kind)

	var out dto.ValidColumnsResponse
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/dashboards/valid-columns",
		query:  q,
		authed: true,
	}, &out)
	return out, err
}

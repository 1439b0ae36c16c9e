package backendclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tablero-app/tablero-client/internal/dto"
)

func (a *Adapter) ListDashboards(ctx context.Context) ([]dto.Dashboard, error) {
	var out []dto.Dashboard
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/dashboards",
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) CreateDashboard(ctx context.Context, req dto.CreateDashboardRequest) (dto.Dashboard, error) {
	var out dto.Dashboard
	err := a.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/dashboards",
		body:   req,
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) GetDashboard(ctx context.Context, id int) (dto.Dashboard, error) {
	var out dto.Dashboard
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/dashboards/" + strconv.Itoa(id),
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) UpdateDashboard(ctx context.Context, id int, req dto.UpdateDashboardRequest) (dto.Dashboard, error) {
	var out dto.Dashboard
	err := a.doJSON(ctx, request{
		method: http.MethodPut,
		path:   "/dashboards/" + strconv.Itoa(id),
		body:   req,
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) DeleteDashboard(ctx context.Context, id int) error {
	return a.doJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/dashboards/" + strconv.Itoa(id),
		authed: true,
	}, nil)
}

func (a *Adapter) AddItem(ctx context.Context, dashID int, req dto.CreateItemRequest) (dto.Item, error) {
	var out dto.Item
	err := a.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/dashboards/" + strconv.Itoa(dashID) + "/items",
		body:   req,
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) UpdateItem(ctx context.Context, dashID, itemID int, req dto.UpdateItemRequest) (dto.Item, error) {
	var out dto.Item
	err := a.doJSON(ctx, request{
		method: http.MethodPut,
		path:   "/dashboards/" + strconv.Itoa(dashID) + "/items/" + strconv.Itoa(itemID),
		body:   req,
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) DeleteItem(ctx context.Context, dashID, itemID int) error {
	return a.doJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/dashboards/" + strconv.Itoa(dashID) + "/items/" + strconv.Itoa(itemID),
		authed: true,
	}, nil)
}

// GetItemData fetches the widget's display payload: chart points, table rows
// or a single KPI value, depending on the item type.
func (a *Adapter) GetItemData(ctx context.Context, dashID, itemID int) (json.RawMessage, error) {
	var out json.RawMessage
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/dashboards/" + strconv.Itoa(dashID) + "/items/" + strconv.Itoa(itemID) + "/data",
		authed: true,
	}, &out)
	return out, err
}

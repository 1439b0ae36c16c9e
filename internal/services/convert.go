package services

import (
	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/models"
)

func dashboardFromDTO(d dto.Dashboard) *models.Dashboard {
	dash := &models.Dashboard{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Theme:       d.Theme,
		IsPublic:    d.IsPublic,
	}
	for _, it := range d.Items {
		dash.Items = append(dash.Items, itemFromDTO(it))
	}
	return dash
}

func itemFromDTO(it *dto.Item) *models.Item {
	item := &models.Item{
		ID:          it.ID,
		DashboardID: it.DashboardID,
		ItemType:    it.ItemType,
		ChartType:   it.ChartType,
		TableID:     it.TableID,
		Geometry: models.Geometry{
			X:      it.PositionX,
			Y:      it.PositionY,
			Width:  it.Width,
			Height: it.Height,
		},
		Filters:         it.Filters,
		RefreshInterval: it.RefreshInterval,
	}
	// Tolerate configs of retired types; the item still occupies its cell.
	if cfg, err := models.ConfigFromMap(it.ItemType, it.Config); err == nil {
		item.Config = cfg
	}
	return item
}

func createItemRequest(item *models.Item) dto.CreateItemRequest {
	req := dto.CreateItemRequest{
		ItemType:        item.ItemType,
		ChartType:       item.ChartType,
		TableID:         item.TableID,
		PositionX:       item.Geometry.X,
		PositionY:       item.Geometry.Y,
		Width:           item.Geometry.Width,
		Height:          item.Geometry.Height,
		Filters:         item.Filters,
		RefreshInterval: item.RefreshInterval,
	}
	if item.Config != nil {
		req.Config = item.Config.ConfigMap()
	} else {
		req.Config = map[string]any{}
	}
	return req
}

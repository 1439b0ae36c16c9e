package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/models"
	"github.com/tablero-app/tablero-client/internal/response"
)

const maxUploadBytes = 32 << 20

type TableService interface {
	List(ctx context.Context) ([]dto.TableMeta, error)
	Columns(ctx context.Context, tableID int) ([]string, error)
	Page(ctx context.Context, tableID, limit, offset int) (dto.TablePage, error)
	Delete(ctx context.Context, tableID int) error
	Upload(ctx context.Context, tableName, fileName string, file io.Reader) (dto.UploadResponse, error)
	Profile(ctx context.Context, tableID int) ([]models.ColumnProfile, error)
}

type tableHandlers struct {
	ResponseHandler response.ResponseHandler
	TableSvc        TableService
}

func NewTableHandlers(deps *Deps) *tableHandlers {
	return &tableHandlers{
		ResponseHandler: deps.ResponseHandler,
		TableSvc:        deps.TableSvc,
	}
}

func (h *tableHandlers) TableRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTables)
	r.Post("/upload", h.Upload)
	r.Get("/{tableId}/columns", h.GetColumns)
	r.Get("/{tableId}/data", h.GetData)
	r.Get("/{tableId}/profile", h.GetProfile)
	r.Delete("/{tableId}", h.DeleteTable)
	return r
}

func (h *tableHandlers) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.TableSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tables)
}

func (h *tableHandlers) GetColumns(w http.ResponseWriter, r *http.Request) {
	tableID, err := urlInt(r, "tableId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	cols, err := h.TableSvc.Columns(r.Context(), tableID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cols)
}

func (h *tableHandlers) GetData(w http.ResponseWriter, r *http.Request) {
	tableID, err := urlInt(r, "tableId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	page, err := h.TableSvc.Page(r.Context(), tableID, limit, offset)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, page)
}

func (h *tableHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	tableID, err := urlInt(r, "tableId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	profiles, err := h.TableSvc.Profile(r.Context(), tableID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, profiles)
}

func (h *tableHandlers) DeleteTable(w http.ResponseWriter, r *http.Request) {
	tableID, err := urlInt(r, "tableId")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.TableSvc.Delete(r.Context(), tableID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *tableHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("missing file field"))
		return
	}
	defer file.Close()

	name := r.FormValue("table_name")
	resp, err := h.TableSvc.Upload(r.Context(), name, header.Filename, file)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, resp)
}

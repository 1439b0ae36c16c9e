package services

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/models"
)

// profileSampleSize rows are fetched when profiling a table's columns, the
// same sample the filter form sees.
const profileSampleSize = 20

var tableNameRe = regexp.MustCompile(`^\w+$`)

// tableAPI is the backend table surface used by tableService.
type tableAPI interface {
	ListTables(ctx context.Context) ([]dto.TableMeta, error)
	GetTableData(ctx context.Context, tableID, limit, offset int) (dto.TablePage, error)
	GetTableColumns(ctx context.Context, tableID int) ([]string, error)
	DeleteTable(ctx context.Context, tableID int) error
	UploadFile(ctx context.Context, tableName, fileName string, file io.Reader) (dto.UploadResponse, error)
}

type tableService struct {
	api tableAPI
}

func NewTableService(api tableAPI) *tableService {
	return &tableService{api: api}
}

func (s *tableService) List(ctx context.Context) ([]dto.TableMeta, error) {
	return s.api.ListTables(ctx)
}

func (s *tableService) Columns(ctx context.Context, tableID int) ([]string, error) {
	return s.api.GetTableColumns(ctx, tableID)
}

// Page fetches one page of rows. Limit defaults to 10, matching the backend.
func (s *tableService) Page(ctx context.Context, tableID, limit, offset int) (dto.TablePage, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.api.GetTableData(ctx, tableID, limit, offset)
}

func (s *tableService) Delete(ctx context.Context, tableID int) error {
	return s.api.DeleteTable(ctx, tableID)
}

// Upload validates the table name and file extension before sending the
// multipart request; both rules mirror the ingestion endpoint so bad input
// never leaves the client.
func (s *tableService) Upload(ctx context.Context, tableName, fileName string, file io.Reader) (dto.UploadResponse, error) {
	if !tableNameRe.MatchString(tableName) {
		return dto.UploadResponse{}, errs.NewValidationError("table name must contain only letters, digits and underscores")
	}
	ext := strings.ToLower(fileName)
	if !strings.HasSuffix(ext, ".csv") && !strings.HasSuffix(ext, ".xlsx") {
		return dto.UploadResponse{}, errs.NewValidationError("only .csv and .xlsx files are supported")
	}
	return s.api.UploadFile(ctx, tableName, fileName, file)
}

// Profile samples the table and infers each column's filter type and
// categorical choices.
func (s *tableService) Profile(ctx context.Context, tableID int) ([]models.ColumnProfile, error) {
	page, err := s.api.GetTableData(ctx, tableID, profileSampleSize, 0)
	if err != nil {
		return nil, err
	}
	return ProfileColumns(page.Columns, page.Rows), nil
}

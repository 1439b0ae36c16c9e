package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/models"
)

// --- Fakes ---

type fakeTableAPI struct {
	page        dto.TablePage
	pageErr     error
	lastLimit   int
	lastOffset  int
	uploadCalls int
	lastName    string
}

func (f *fakeTableAPI) ListTables(_ context.Context) ([]dto.TableMeta, error) {
	return []dto.TableMeta{{ID: 1, Name: "ventas"}}, nil
}

func (f *fakeTableAPI) GetTableData(_ context.Context, _, limit, offset int) (dto.TablePage, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	return f.page, f.pageErr
}

func (f *fakeTableAPI) GetTableColumns(_ context.Context, _ int) ([]string, error) {
	return f.page.Columns, nil
}

func (f *fakeTableAPI) DeleteTable(_ context.Context, _ int) error {
	return nil
}

func (f *fakeTableAPI) UploadFile(_ context.Context, tableName, _ string, _ io.Reader) (dto.UploadResponse, error) {
	f.uploadCalls++
	f.lastName = tableName
	return dto.UploadResponse{Message: "ok"}, nil
}

// --- Tests ---

func TestPage_DefaultsLimitAndOffset(t *testing.T) {
	api := &fakeTableAPI{}
	svc := NewTableService(api)

	if _, err := svc.Page(context.Background(), 1, 0, -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastLimit != 10 {
		t.Errorf("limit = %d, want 10", api.lastLimit)
	}
	if api.lastOffset != 0 {
		t.Errorf("offset = %d, want 0", api.lastOffset)
	}
}

func TestUpload_RejectsBadTableName(t *testing.T) {
	api := &fakeTableAPI{}
	svc := NewTableService(api)

	for _, name := range []string{"", "ventas 2024", "ventas-2024", "ventas;drop"} {
		_, err := svc.Upload(context.Background(), name, "data.csv", strings.NewReader("a,b"))
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%q: expected ValidationError, got %T: %v", name, err, err)
		}
	}
	if api.uploadCalls != 0 {
		t.Errorf("expected no upload, got %d", api.uploadCalls)
	}
}

func TestUpload_RejectsBadExtension(t *testing.T) {
	api := &fakeTableAPI{}
	svc := NewTableService(api)

	_, err := svc.Upload(context.Background(), "ventas", "data.pdf", strings.NewReader("x"))
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if api.uploadCalls != 0 {
		t.Errorf("expected no upload, got %d", api.uploadCalls)
	}
}

func TestUpload_AcceptsCSVAndXLSX(t *testing.T) {
	api := &fakeTableAPI{}
	svc := NewTableService(api)

	for _, file := range []string{"data.csv", "Data.XLSX"} {
		if _, err := svc.Upload(context.Background(), "ventas_2024", file, strings.NewReader("x")); err != nil {
			t.Errorf("%q: unexpected error: %v", file, err)
		}
	}
	if api.uploadCalls != 2 {
		t.Errorf("upload calls = %d, want 2", api.uploadCalls)
	}
}

func TestProfile_SamplesAndClassifies(t *testing.T) {
	api := &fakeTableAPI{page: dto.TablePage{
		Columns: []string{"pais", "ventas"},
		Rows: [][]any{
			{"España", "1000"},
			{"México", "2000"},
		},
	}}
	svc := NewTableService(api)

	profiles, err := svc.Profile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastLimit != profileSampleSize {
		t.Errorf("sample limit = %d, want %d", api.lastLimit, profileSampleSize)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if profiles[1].Type != models.ColumnNumber {
		t.Errorf("ventas type = %q, want number", profiles[1].Type)
	}
}

package backendclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
)

func (a *Adapter) ListTables(ctx context.Context) ([]dto.TableMeta, error) {
	var out []dto.TableMeta
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/tablas",
		authed: true,
	}, &out)
	return out, err
}

func (a *Adapter) GetTableData(ctx context.Context, tableID, limit, offset int) (dto.TablePage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out dto.TablePage
	err := a.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/datos/" + strconv.Itoa(tableID),
		query:  q,
		authed: true,
	}, &out)
	return out, err
}

// GetTableColumns returns the column names of a table. The backend has no
// dedicated columns endpoint; a single-row data page carries them.
func (a *Adapter) GetTableColumns(ctx context.Context, tableID int) ([]string, error) {
	page, err := a.GetTableData(ctx, tableID, 1, 0)
	if err != nil {
		return nil, err
	}
	return page.Columns, nil
}

func (a *Adapter) DeleteTable(ctx context.Context, tableID int) error {
	return a.doJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/tablas/" + strconv.Itoa(tableID),
		authed: true,
	}, nil)
}

// UploadFile sends a tabular file as multipart form data. The retry-once
// refresh logic is inlined since the body reader cannot pass through doJSON.
func (a *Adapter) UploadFile(ctx context.Context, tableName, fileName string, file io.Reader) (dto.UploadResponse, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return dto.UploadResponse{}, err
	}

	out, err := a.postMultipart(ctx, tableName, fileName, content)
	if err != nil {
		re, ok := err.(*errs.RequestError)
		if !ok || re.Status != http.StatusUnauthorized {
			return dto.UploadResponse{}, err
		}
		if _, rerr := a.tokens.Refresh(ctx); rerr != nil {
			return dto.UploadResponse{}, rerr
		}
		return a.postMultipart(ctx, tableName, fileName, content)
	}
	return out, nil
}

func (a *Adapter) postMultipart(ctx context.Context, tableName, fileName string, content []byte) (dto.UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return dto.UploadResponse{}, err
	}
	if _, err := fw.Write(content); err != nil {
		return dto.UploadResponse{}, err
	}
	if err := mw.WriteField("nombre_tabla", tableName); err != nil {
		return dto.UploadResponse{}, err
	}
	if err := mw.Close(); err != nil {
		return dto.UploadResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/upload", &buf)
	if err != nil {
		return dto.UploadResponse{}, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("X-Request-ID", uuid.New().String())

	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return dto.UploadResponse{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return dto.UploadResponse{}, errs.NewRequestError(0, fmt.Sprintf("backend unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = decodeBody(resp.Body, &eb)
		return dto.UploadResponse{}, errs.NewRequestError(resp.StatusCode, eb.Error)
	}

	var out dto.UploadResponse
	if err := decodeBody(resp.Body, &out); err != nil {
		return dto.UploadResponse{}, err
	}
	return out, nil
}

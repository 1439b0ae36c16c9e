package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tablero-app/tablero-client/internal/errs"
)

// urlInt reads a chi URL parameter as an integer.
func urlInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, errs.NewValidationError(name + " must be an integer")
	}
	return v, nil
}

// queryInt reads an optional integer query parameter, returning def when the
// parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(name + " must be an integer")
	}
	return v, nil
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lexprep/lexprep/internal/errors"
)

// parseIDParam reads a positive integer URL parameter.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

package extractions

import (
	"errors"
	"net/http"
)

// Domain errors for extraction operations.
var (
	ErrNotFound  = errors.New("extraction not found")
	ErrDuplicate = errors.New("extraction already exists")
	ErrInvalidID = errors.New("invalid identifier")
)

// MapHTTPStatus maps extraction domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

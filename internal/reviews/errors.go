package reviews

import (
	"errors"
	"net/http"
)

// Domain errors for review operations.
var (
	ErrNotFound          = errors.New("finding not found")
	ErrDuplicate         = errors.New("finding already exists")
	ErrInvalidVerdict    = errors.New("invalid verdict")
	ErrMissingCorrection = errors.New("disagreement requires a correction")
	ErrInvalidID         = errors.New("invalid identifier")
)

// MapHTTPStatus maps review domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidVerdict),
		errors.Is(err, ErrMissingCorrection),
		errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package learnings

import (
	"errors"
	"net/http"
)

// Domain errors for learning operations.
var (
	ErrNotFound     = errors.New("learning not found")
	ErrDuplicate    = errors.New("learning already exists")
	ErrBlankSection = errors.New("learning section is blank")
	ErrEmptyPatch   = errors.New("learning patch is empty")
	ErrInvalidID    = errors.New("invalid identifier")
)

// MapHTTPStatus maps learning domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrBlankSection), errors.Is(err, ErrEmptyPatch), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package documents_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/documents"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", documents.ErrNotFound, http.StatusNotFound},
		{"duplicate", documents.ErrDuplicate, http.StatusConflict},
		{"too large", documents.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", documents.ErrInvalidFile, http.StatusBadRequest},
		{"invalid map", documents.ErrInvalidMap, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("find document: %w", documents.ErrNotFound), http.StatusNotFound},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := documents.MapHTTPStatus(test.err); got != test.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("status", "sectioned")
	values.Set("stem", "brf_268882")

	filters := documents.FiltersFromQuery(values)

	if filters.Status == nil || *filters.Status != "sectioned" {
		t.Errorf("Status = %v, want sectioned", filters.Status)
	}
	if filters.Stem == nil || *filters.Stem != "brf_268882" {
		t.Errorf("Stem = %v, want brf_268882", filters.Stem)
	}
	if filters.Filename != nil {
		t.Errorf("Filename = %v, want nil", filters.Filename)
	}
	if filters.ContentType != nil {
		t.Errorf("ContentType = %v, want nil", filters.ContentType)
	}
}

func TestFiltersFromQueryEmpty(t *testing.T) {
	filters := documents.FiltersFromQuery(url.Values{})
	if filters.Status != nil || filters.Stem != nil || filters.Filename != nil || filters.ContentType != nil {
		t.Errorf("Filters = %+v, want all nil", filters)
	}
}

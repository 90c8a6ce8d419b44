package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/pagination"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/query"
)

var cfg = pagination.Config{DefaultPageSize: 25, MaxPageSize: 100}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		request      pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 25},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid request", pagination.PageRequest{Page: 3, PageSize: 50}, 3, 50},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.request.Normalize(cfg)
			if test.request.Page != test.wantPage {
				t.Errorf("Page = %d, want %d", test.request.Page, test.wantPage)
			}
			if test.request.PageSize != test.wantPageSize {
				t.Errorf("PageSize = %d, want %d", test.request.PageSize, test.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "brf")
	values.Set("sort", "-uploaded_at")

	req := pagination.FromQuery(values, cfg)

	if req.Page != 2 || req.PageSize != 10 {
		t.Errorf("page = %d/%d, want 2/10", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "brf" {
		t.Errorf("Search = %v, want brf", req.Search)
	}
	if len(req.Sort) != 1 || req.Sort[0].Field != "uploaded_at" || !req.Sort[0].Descending {
		t.Errorf("Sort = %v", req.Sort)
	}
}

func TestFromQueryEmpty(t *testing.T) {
	req := pagination.FromQuery(url.Values{}, cfg)

	if req.Page != 1 || req.PageSize != 25 {
		t.Errorf("page = %d/%d, want normalized defaults 1/25", req.Page, req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{
			name:  "comma string",
			input: `"stem,-uploaded_at"`,
			want:  []query.SortField{{Field: "stem"}, {Field: "uploaded_at", Descending: true}},
		},
		{
			name:  "object array",
			input: `[{"Field":"stem","Descending":true}]`,
			want:  []query.SortField{{Field: "stem", Descending: true}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var fields pagination.SortFields
			if err := json.Unmarshal([]byte(test.input), &fields); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(fields) != len(test.want) {
				t.Fatalf("len = %d, want %d", len(fields), len(test.want))
			}
			for i := range test.want {
				if fields[i] != test.want[i] {
					t.Errorf("fields[%d] = %v, want %v", i, fields[i], test.want[i])
				}
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		data           []string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"even division", []string{"a"}, 50, 25, 2},
		{"remainder rounds up", []string{"a"}, 51, 25, 3},
		{"empty", nil, 0, 25, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := pagination.NewPageResult(test.data, test.total, 1, test.pageSize)
			if result.TotalPages != test.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, test.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("Data is nil, want empty slice")
			}
		})
	}
}

package documents

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/sections"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/query"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("stem", "Stem").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("section_map", "SectionMap").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries. Nil
// fields are ignored. Status and ContentType use exact matching; Stem and
// Filename use case-insensitive contains matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	Stem        *string `json:"stem,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Stem", f.Stem).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if st := values.Get("stem"); st != "" {
		f.Stem = &st
	}
	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}
	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	var rawMap []byte

	err := s.Scan(
		&d.ID,
		&d.Stem,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.Status,
		&rawMap,
		&d.UploadedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return d, err
	}

	if len(rawMap) > 0 {
		var m sections.Map
		if err := json.Unmarshal(rawMap, &m); err != nil {
			return d, fmt.Errorf("decode section map: %w", err)
		}
		d.SectionMap = &m
	}

	return d, nil
}

// Package documents implements the document domain: registration of scanned
// annual reports, blob storage integration, and the section map each report
// carries once the upstream sectionizer has processed it.
package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/sections"
)

// Document statuses. A document is registered on upload and becomes
// sectioned once a section map is attached; only sectioned documents are
// eligible for extraction runs.
const (
	StatusRegistered = "registered"
	StatusSectioned  = "sectioned"
)

// Document is a registered annual report with its metadata, blob reference,
// and optional section map. Stem is the canonical short name the pipeline
// keys goldens and receipts by (for example "brf_268882").
type Document struct {
	ID          uuid.UUID     `json:"id"`
	Stem        string        `json:"stem"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"content_type"`
	SizeBytes   int64         `json:"size_bytes"`
	PageCount   *int          `json:"page_count"`
	StorageKey  string        `json:"storage_key"`
	Status      string        `json:"status"`
	SectionMap  *sections.Map `json:"section_map,omitempty"`
	UploadedAt  time.Time     `json:"uploaded_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new
// document. Data holds the raw file bytes; PageCount is optional and stored
// as NULL when nil.
type CreateCommand struct {
	Data        []byte
	Stem        string
	Filename    string
	ContentType string
	PageCount   *int
}

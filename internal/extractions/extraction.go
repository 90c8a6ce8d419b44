// Package extractions persists the outcome of extraction runs as immutable
// snapshot rows. A document accumulates one row per run; the most recent
// successful row is its current extraction.
package extractions

import (
	"time"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// Extraction is one recorded run. Result is the merged, coached section
// object; it is null for failed runs. Rows are never updated after insert.
type Extraction struct {
	ID            uuid.UUID     `json:"id"`
	DocumentID    uuid.UUID     `json:"document_id"`
	Stem          string        `json:"stem"`
	Status        string        `json:"status"`
	Message       string        `json:"message,omitempty"`
	Result        payload.Value `json:"result"`
	CoachedFields int           `json:"coached_fields"`
	ReceiptCount  int           `json:"receipt_count"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

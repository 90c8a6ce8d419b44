// Package reviews implements the human review loop: verdicts recorded
// against extracted fields, the queue of extractions awaiting review, and
// derivation of coaching learnings from disagreements.
package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// Review verdicts.
const (
	VerdictAgree    = "agree"
	VerdictDisagree = "disagree"
	VerdictUnsure   = "unsure"
)

// Finding is one reviewer judgment on one extracted field. Correction is
// the reviewer's value and is required for disagreements; Page optionally
// records where in the document the truth was found.
type Finding struct {
	ID           uuid.UUID     `json:"id"`
	ExtractionID uuid.UUID     `json:"extraction_id"`
	Stem         string        `json:"stem"`
	Section      string        `json:"section"`
	Field        string        `json:"field"`
	Verdict      string        `json:"verdict"`
	Correction   payload.Value `json:"correction"`
	Page         *int          `json:"page,omitempty"`
	Note         string        `json:"note,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// AddCommand carries a new finding.
type AddCommand struct {
	ExtractionID uuid.UUID     `json:"extraction_id"`
	Stem         string        `json:"stem"`
	Section      string        `json:"section"`
	Field        string        `json:"field"`
	Verdict      string        `json:"verdict"`
	Correction   payload.Value `json:"correction"`
	Page         *int          `json:"page,omitempty"`
	Note         string        `json:"note,omitempty"`
}

// QueueEntry is one extraction awaiting review.
type QueueEntry struct {
	ExtractionID uuid.UUID `json:"extraction_id"`
	DocumentID   uuid.UUID `json:"document_id"`
	Stem         string    `json:"stem"`
	FinishedAt   time.Time `json:"finished_at"`
}

func validVerdict(v string) bool {
	return v == VerdictAgree || v == VerdictDisagree || v == VerdictUnsure
}

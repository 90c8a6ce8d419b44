// Package learnings persists coaching deltas: section-level patches derived
// from human review that future runs merge into extraction results. Deltas
// are deactivated rather than deleted so the coaching history stays
// auditable.
package learnings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/coaching"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// AddCommand carries a new coaching delta. SourceDoc is the stem of the
// document whose review produced the patch.
type AddCommand struct {
	Section   string        `json:"section"`
	Patch     payload.Value `json:"patch"`
	SourceDoc string        `json:"source_doc"`
}

// Learning is a stored coaching delta row.
type Learning struct {
	ID        uuid.UUID     `json:"id"`
	Section   string        `json:"section"`
	Patch     payload.Value `json:"patch"`
	SourceDoc string        `json:"source_doc"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
}

// Delta converts the row to the coaching representation.
func (l Learning) Delta() coaching.Delta {
	return coaching.Delta{
		ID:        l.ID,
		Section:   l.Section,
		Patch:     l.Patch,
		SourceDoc: l.SourceDoc,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
	}
}

// System defines the public contract for learning persistence.
type System interface {
	Handler() *Handler

	// Active returns all active deltas, oldest first, ready to seed a
	// coaching memory.
	Active(ctx context.Context) ([]coaching.Delta, error)

	Add(ctx context.Context, cmd AddCommand) (*Learning, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Learning, error)
}

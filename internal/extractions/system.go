package extractions

import (
	"context"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/orchestrator"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/pagination"
)

// System defines the public contract for extraction persistence.
type System interface {
	Handler() *Handler

	// Record snapshots a completed run as a new immutable row.
	Record(ctx context.Context, run orchestrator.RunResult) (*Extraction, error)

	Find(ctx context.Context, id uuid.UUID) (*Extraction, error)

	// Latest returns the most recent successful extraction for a document,
	// or ErrNotFound when the document has never completed a run.
	Latest(ctx context.Context, documentID uuid.UUID) (*Extraction, error)

	ListForDocument(
		ctx context.Context,
		documentID uuid.UUID,
		page pagination.PageRequest,
	) (*pagination.PageResult[Extraction], error)
}

package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/learnings"
)

// System defines the public contract for review domain operations.
type System interface {
	Handler() *Handler

	Add(ctx context.Context, cmd AddCommand) (*Finding, error)
	ListForExtraction(ctx context.Context, extractionID uuid.UUID) ([]Finding, error)

	// Queue lists successful extractions that have no findings yet, oldest
	// first.
	Queue(ctx context.Context) ([]QueueEntry, error)

	// PromoteLearnings converts an extraction's disagreement findings into
	// coaching learnings and returns how many were stored.
	PromoteLearnings(ctx context.Context, extractionID uuid.UUID) (int, error)
}

// LearningStore is the slice of the learning system reviews write to.
type LearningStore interface {
	Add(ctx context.Context, cmd learnings.AddCommand) (*learnings.Learning, error)
}

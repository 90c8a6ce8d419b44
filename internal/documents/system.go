package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/sections"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByStem(ctx context.Context, stem string) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	SetSectionMap(ctx context.Context, id uuid.UUID, m sections.Map) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

package extractions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/orchestrator"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/pagination"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/query"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an extraction repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "extractions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Record(ctx context.Context, run orchestrator.RunResult) (*Extraction, error) {
	rawResult, err := json.Marshal(run.Result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	q := `
		INSERT INTO extractions(id, document_id, stem, status, message, result, coached_fields, receipt_count, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, document_id, stem, status, message, result, coached_fields, receipt_count, started_at, finished_at, created_at`

	insertArgs := []any{
		uuid.New(),
		run.DocumentID,
		run.Stem,
		string(run.Status),
		run.Message,
		rawResult,
		run.CoachedFields,
		len(run.Receipts),
		run.StartedAt,
		run.FinishedAt,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Extraction, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanExtraction)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("extraction recorded",
		"id", e.ID,
		"document", e.Stem,
		"status", e.Status,
		"receipts", e.ReceiptCount)
	return &e, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Extraction, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanExtraction)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Latest(ctx context.Context, documentID uuid.UUID) (*Extraction, error) {
	status := string(orchestrator.StatusDone)
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentID", documentID).
		WhereEquals("Status", &status).
		BuildSingleOrNull()

	e, err := repository.QueryOne(ctx, r.db, q, args, scanExtraction)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) ListForDocument(
	ctx context.Context,
	documentID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[Extraction], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentID", documentID)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count extractions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	rows, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanExtraction)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}

	result := pagination.NewPageResult(rows, total, page.Page, page.PageSize)
	return &result, nil
}

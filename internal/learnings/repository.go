package learnings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/coaching"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/query"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "learnings", "l").
	Project("id", "ID").
	Project("section", "Section").
	Project("patch", "Patch").
	Project("source_doc", "SourceDoc").
	Project("active", "Active").
	Project("created_at", "CreatedAt")

// Oldest first so earlier learnings take precedence under merge-missing.
var defaultSort = query.SortField{Field: "CreatedAt"}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a learning repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "learnings"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Active(ctx context.Context) ([]coaching.Delta, error) {
	active := true
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("Active", &active).
		BuildPage(1, allLearnings)

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanLearning)
	if err != nil {
		return nil, fmt.Errorf("query active learnings: %w", err)
	}

	deltas := make([]coaching.Delta, len(rows))
	for i, row := range rows {
		deltas[i] = row.Delta()
	}
	return deltas, nil
}

func (r *repo) Add(ctx context.Context, cmd AddCommand) (*Learning, error) {
	if cmd.Section == "" {
		return nil, ErrBlankSection
	}
	if cmd.Patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	rawPatch, err := json.Marshal(cmd.Patch)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}

	q := `
		INSERT INTO learnings(id, section, patch, source_doc)
		VALUES ($1, $2, $3, $4)
		RETURNING id, section, patch, source_doc, active, created_at`

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Learning, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), cmd.Section, rawPatch, cmd.SourceDoc}, scanLearning)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("learning added", "id", l.ID, "section", l.Section, "source", l.SourceDoc)
	return &l, nil
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE learnings SET active = false WHERE id = $1",
			id,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("learning deactivated", "id", id)
	return nil
}

func (r *repo) List(ctx context.Context) ([]Learning, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildPage(1, allLearnings)

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanLearning)
	if err != nil {
		return nil, fmt.Errorf("query learnings: %w", err)
	}
	return rows, nil
}

// allLearnings bounds unpaginated learning queries. A memory anywhere near
// this size points at a review-process problem, not a paging one.
const allLearnings = 10000

func scanLearning(s repository.Scanner) (Learning, error) {
	var l Learning
	var rawPatch []byte

	err := s.Scan(
		&l.ID,
		&l.Section,
		&rawPatch,
		&l.SourceDoc,
		&l.Active,
		&l.CreatedAt,
	)
	if err != nil {
		return l, err
	}

	if len(rawPatch) > 0 {
		var v payload.Value
		if err := json.Unmarshal(rawPatch, &v); err != nil {
			return l, fmt.Errorf("decode patch: %w", err)
		}
		l.Patch = v
	}

	return l, nil
}

package baselines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/gate"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/query"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/repository"
)

// Domain errors for baseline operations.
var (
	ErrNotFound  = errors.New("baseline not found")
	ErrDuplicate = errors.New("baseline already exists")
)

// MapHTTPStatus maps baseline domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var projection = query.
	NewProjectionMap("public", "baselines", "b").
	Project("id", "ID").
	Project("coverage_percent", "CoveragePercent").
	Project("accuracy_percent", "AccuracyPercent").
	Project("promoted_at", "PromotedAt")

var defaultSort = query.SortField{
	Field:      "PromotedAt",
	Descending: true,
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a baseline repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "baselines"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Current(ctx context.Context) (*gate.Metrics, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingleOrNull()

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBaseline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query current baseline: %w", err)
	}

	m := b.Metrics()
	return &m, nil
}

func (r *repo) Promote(ctx context.Context, m gate.Metrics) (*Baseline, error) {
	q := `
		INSERT INTO baselines(id, coverage_percent, accuracy_percent)
		VALUES ($1, $2, $3)
		RETURNING id, coverage_percent, accuracy_percent, promoted_at`

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Baseline, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), m.CoveragePercent, m.AccuracyPercent}, scanBaseline)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("baseline promoted",
		"id", b.ID,
		"coverage", b.CoveragePercent,
		"accuracy", b.AccuracyPercent)
	return &b, nil
}

func (r *repo) History(ctx context.Context) ([]Baseline, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildPage(1, maxHistory)

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanBaseline)
	if err != nil {
		return nil, fmt.Errorf("query baseline history: %w", err)
	}
	return rows, nil
}

// maxHistory bounds the history query. One row lands per promoted batch, so
// growth is slow.
const maxHistory = 1000

func scanBaseline(s repository.Scanner) (Baseline, error) {
	var b Baseline
	err := s.Scan(&b.ID, &b.CoveragePercent, &b.AccuracyPercent, &b.PromotedAt)
	return b, err
}

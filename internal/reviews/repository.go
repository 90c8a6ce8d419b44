package reviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/learnings"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/query"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "review_findings", "f").
	Project("id", "ID").
	Project("extraction_id", "ExtractionID").
	Project("stem", "Stem").
	Project("section", "Section").
	Project("field", "Field").
	Project("verdict", "Verdict").
	Project("correction", "Correction").
	Project("page", "Page").
	Project("note", "Note").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt"}

type repo struct {
	db        *sql.DB
	learnings LearningStore
	logger    *slog.Logger
}

// New creates a review repository implementing the System interface.
func New(db *sql.DB, store LearningStore, logger *slog.Logger) System {
	return &repo{
		db:        db,
		learnings: store,
		logger:    logger.With("system", "reviews"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Add(ctx context.Context, cmd AddCommand) (*Finding, error) {
	if !validVerdict(cmd.Verdict) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVerdict, cmd.Verdict)
	}
	if cmd.Verdict == VerdictDisagree && cmd.Correction.IsEmpty() {
		return nil, ErrMissingCorrection
	}

	rawCorrection, err := json.Marshal(cmd.Correction)
	if err != nil {
		return nil, fmt.Errorf("encode correction: %w", err)
	}

	q := `
		INSERT INTO review_findings(id, extraction_id, stem, section, field, verdict, correction, page, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, extraction_id, stem, section, field, verdict, correction, page, note, created_at`

	insertArgs := []any{
		uuid.New(),
		cmd.ExtractionID,
		cmd.Stem,
		cmd.Section,
		cmd.Field,
		cmd.Verdict,
		rawCorrection,
		cmd.Page,
		cmd.Note,
	}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Finding, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanFinding)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("finding recorded",
		"id", f.ID,
		"extraction", f.ExtractionID,
		"section", f.Section,
		"field", f.Field,
		"verdict", f.Verdict)
	return &f, nil
}

func (r *repo) ListForExtraction(ctx context.Context, extractionID uuid.UUID) ([]Finding, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ExtractionID", extractionID).
		BuildPage(1, maxFindings)

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanFinding)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	return rows, nil
}

// Queue joins across extractions, so it bypasses the single-table builder.
func (r *repo) Queue(ctx context.Context) ([]QueueEntry, error) {
	q := `
		SELECT e.id, e.document_id, e.stem, e.finished_at
		FROM extractions e
		WHERE e.status = 'DONE'
			AND NOT EXISTS (
				SELECT 1 FROM review_findings f WHERE f.extraction_id = e.id
			)
			AND NOT EXISTS (
				SELECT 1 FROM extractions newer
				WHERE newer.document_id = e.document_id
					AND newer.status = 'DONE'
					AND newer.created_at > e.created_at
			)
		ORDER BY e.finished_at ASC`

	rows, err := repository.QueryMany(ctx, r.db, q, nil, scanQueueEntry)
	if err != nil {
		return nil, fmt.Errorf("query review queue: %w", err)
	}
	return rows, nil
}

func (r *repo) PromoteLearnings(ctx context.Context, extractionID uuid.UUID) (int, error) {
	findings, err := r.ListForExtraction(ctx, extractionID)
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, f := range findings {
		if f.Verdict != VerdictDisagree || f.Correction.IsEmpty() {
			continue
		}

		patch := payload.Object(map[string]payload.Value{f.Field: f.Correction})
		_, err := r.learnings.Add(ctx, learnings.AddCommand{
			Section:   f.Section,
			Patch:     patch,
			SourceDoc: f.Stem,
		})
		if err != nil {
			return promoted, fmt.Errorf("promote finding %s: %w", f.ID, err)
		}
		promoted++
	}

	r.logger.Info("learnings promoted", "extraction", extractionID, "count", promoted)
	return promoted, nil
}

// maxFindings bounds per-extraction finding queries. Reviews are field
// granular, so even a thorough pass stays well under this.
const maxFindings = 1000

func scanFinding(s repository.Scanner) (Finding, error) {
	var f Finding
	var rawCorrection []byte

	err := s.Scan(
		&f.ID,
		&f.ExtractionID,
		&f.Stem,
		&f.Section,
		&f.Field,
		&f.Verdict,
		&rawCorrection,
		&f.Page,
		&f.Note,
		&f.CreatedAt,
	)
	if err != nil {
		return f, err
	}

	if len(rawCorrection) > 0 {
		var v payload.Value
		if err := json.Unmarshal(rawCorrection, &v); err != nil {
			return f, fmt.Errorf("decode correction: %w", err)
		}
		f.Correction = v
	}

	return f, nil
}

func scanQueueEntry(s repository.Scanner) (QueueEntry, error) {
	var e QueueEntry
	err := s.Scan(&e.ExtractionID, &e.DocumentID, &e.Stem, &e.FinishedAt)
	return e, err
}

// Package batch coordinates the pipeline across domains: it drives
// extraction runs over sets of documents, scores results against goldens,
// and evaluates the acceptance gate with baseline promotion.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/agents"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/baselines"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/coaching"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/documents"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/extractions"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/gate"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/learnings"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/orchestrator"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/receipts"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/scoring"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/pagination"
)

// Config assembles a batch Service.
type Config struct {
	Documents   documents.System
	Extractions extractions.System
	Learnings   learnings.System
	Baselines   baselines.System

	Source   orchestrator.Source
	Renderer orchestrator.Renderer
	Receipts receipts.Logger

	// Extractors in merge priority order.
	Extractors []agents.Extractor
	Merge      orchestrator.MergePolicy

	Thresholds       gate.Thresholds
	RequiredSections []string

	Logger *slog.Logger
}

// Service drives multi-document pipeline operations.
type Service struct {
	cfg    Config
	logger *slog.Logger
}

// NewService validates the configuration and builds a Service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Documents == nil || cfg.Extractions == nil {
		return nil, fmt.Errorf("batch: document and extraction systems are required")
	}
	if cfg.Learnings == nil || cfg.Baselines == nil {
		return nil, fmt.Errorf("batch: learning and baseline systems are required")
	}
	if cfg.Source == nil || cfg.Renderer == nil || cfg.Receipts == nil {
		return nil, fmt.Errorf("batch: source, renderer, and receipt logger are required")
	}
	if len(cfg.Extractors) == 0 {
		return nil, fmt.Errorf("batch: at least one extractor is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:    cfg,
		logger: logger.With("system", "batch"),
	}, nil
}

// Summary reports a batch run: how many documents ran, how many completed,
// and the per-document outcomes.
type Summary struct {
	Total     int                       `json:"total"`
	Completed int                       `json:"completed"`
	Failed    int                       `json:"failed"`
	Runs      []*extractions.Extraction `json:"runs"`
}

// RunOne executes a single extraction run and records it. The document must
// already carry a section map.
func (s *Service) RunOne(ctx context.Context, documentID uuid.UUID) (*extractions.Extraction, error) {
	runner, err := s.buildRunner(ctx)
	if err != nil {
		return nil, err
	}
	return s.runDocument(ctx, runner, documentID)
}

// RunBatch executes extraction runs for every document matching the
// filters, bounded-concurrently, and records each outcome. A document that
// fails mid-batch is recorded as FAILED and does not stop the rest.
func (s *Service) RunBatch(ctx context.Context, filters documents.Filters) (*Summary, error) {
	docs, err := s.listAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	runner, err := s.buildRunner(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*extractions.Extraction, len(docs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(min(runtime.NumCPU(), len(docs)), 1))

	for i, doc := range docs {
		group.Go(func() error {
			e, err := s.runDocument(groupCtx, runner, doc.ID)
			if err != nil {
				s.logger.Error("batch document failed", "document", doc.Stem, "error", err)
				return nil
			}
			results[i] = e
			return nil
		})
	}
	group.Wait()

	summary := &Summary{Total: len(docs)}
	for _, e := range results {
		if e == nil {
			summary.Failed++
			continue
		}
		summary.Runs = append(summary.Runs, e)
		if e.Status == string(orchestrator.StatusDone) {
			summary.Completed++
		} else {
			summary.Failed++
		}
	}

	s.logger.Info("batch complete",
		"total", summary.Total,
		"completed", summary.Completed,
		"failed", summary.Failed)
	return summary, nil
}

// Score builds the batch quality report for every document matching the
// filters, pairing each document's latest successful extraction with its
// golden. Documents without a golden count toward coverage only.
func (s *Service) Score(ctx context.Context, filters documents.Filters, goldens GoldenSet) (*scoring.BatchReport, error) {
	docs, err := s.listAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	batch := make([]scoring.BatchDocument, 0, len(docs))
	for _, doc := range docs {
		bd := scoring.BatchDocument{ID: doc.ID.String(), Stem: doc.Stem}

		latest, err := s.cfg.Extractions.Latest(ctx, doc.ID)
		switch {
		case err == nil:
			bd.Predicted = &latest.Result
		case errors.Is(err, extractions.ErrNotFound):
			// No completed run yet; the document counts as uncovered.
		default:
			return nil, fmt.Errorf("latest extraction for %s: %w", doc.Stem, err)
		}

		if goldens != nil {
			if golden, ok := goldens.Golden(doc.Stem); ok {
				bd.Golden = golden
			}
		}

		batch = append(batch, bd)
	}

	report := scoring.ScoreBatch(batch, s.cfg.RequiredSections)
	return &report, nil
}

// Gate evaluates the acceptance gate for a report and promotes the metrics
// as the new baseline when they improve on it. Promotion happens even when
// the gate fails.
func (s *Service) Gate(ctx context.Context, report scoring.BatchReport) (*gate.Decision, error) {
	baseline, err := s.cfg.Baselines.Current(ctx)
	if err != nil {
		return nil, err
	}

	decision := gate.Evaluate(report, s.cfg.Thresholds, baseline)

	if decision.Promote {
		if _, err := s.cfg.Baselines.Promote(ctx, decision.Metrics); err != nil {
			return nil, fmt.Errorf("promote baseline: %w", err)
		}
	}

	s.logger.Info("gate evaluated",
		"pass", decision.Pass,
		"coverage", decision.Metrics.CoveragePercent,
		"accuracy", decision.Metrics.AccuracyPercent,
		"promoted", decision.Promote)
	return &decision, nil
}

// buildRunner snapshots the current coaching memory into a fresh runner.
// Every run within one batch sees the same learnings.
func (s *Service) buildRunner(ctx context.Context) (*orchestrator.Runner, error) {
	deltas, err := s.cfg.Learnings.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("load coaching memory: %w", err)
	}

	return orchestrator.NewRunner(orchestrator.Config{
		Source:     s.cfg.Source,
		Renderer:   s.cfg.Renderer,
		Receipts:   s.cfg.Receipts,
		Extractors: s.cfg.Extractors,
		Memory:     coaching.NewMemory(deltas, nil),
		Merge:      s.cfg.Merge,
		Logger:     s.logger,
	})
}

func (s *Service) runDocument(ctx context.Context, runner *orchestrator.Runner, documentID uuid.UUID) (*extractions.Extraction, error) {
	doc, err := s.cfg.Documents.Find(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.SectionMap == nil {
		return nil, fmt.Errorf("document %s has no section map", doc.Stem)
	}

	run := runner.RunDocument(ctx, orchestrator.Document{
		ID:         doc.ID,
		Stem:       doc.Stem,
		StorageKey: doc.StorageKey,
		Sections:   *doc.SectionMap,
	})

	return s.cfg.Extractions.Record(ctx, run)
}

func (s *Service) listAll(ctx context.Context, filters documents.Filters) ([]documents.Document, error) {
	var docs []documents.Document
	page := pagination.PageRequest{Page: 1, PageSize: batchPageSize}

	for {
		result, err := s.cfg.Documents.List(ctx, page, filters)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}

		docs = append(docs, result.Data...)
		if len(docs) >= result.Total || len(result.Data) == 0 {
			return docs, nil
		}
		page.Page++
	}
}

const batchPageSize = 100

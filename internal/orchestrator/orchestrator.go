// Package orchestrator drives extraction runs: for each section of a
// document it renders the section's pages, invokes every configured agent
// exactly once, merges the twin outcomes, applies coaching memory, and
// records one receipt per invocation.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/agents"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/coaching"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/receipts"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/sections"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// Status is the lifecycle state of one extraction run.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusFailed     Status = "FAILED"
)

// Source fetches document content by storage key.
type Source interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// Renderer turns document pages into image data URIs for vision prompts.
// Rendering is an external collaborator; implementations may shell out or
// call a service.
type Renderer interface {
	RenderPages(ctx context.Context, content []byte, pages []int) ([]string, error)
}

// Document is the unit of one run: a stored report plus its section map.
type Document struct {
	ID         uuid.UUID
	Stem       string
	StorageKey string
	Sections   sections.Map
}

// RunResult is the outcome of one document run. Receipts are ordered by
// section-map position, then agent priority, matching what was written to
// the receipt log. A FAILED run carries zero receipts.
type RunResult struct {
	DocumentID    uuid.UUID
	Stem          string
	Status        Status
	Message       string
	Result        payload.Value
	CoachedFields int
	Receipts      []receipts.Receipt
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Config assembles a Runner. Extractors are in merge priority order: when
// both twins return data for a section, the earlier agent wins under the
// default policy.
type Config struct {
	Source     Source
	Renderer   Renderer
	Receipts   receipts.Logger
	Extractors []agents.Extractor
	Memory     *coaching.Memory
	Merge      MergePolicy
	Logger     *slog.Logger
}

// Runner executes extraction runs. It is safe for concurrent use.
type Runner struct {
	source     Source
	renderer   Renderer
	receipts   receipts.Logger
	extractors []agents.Extractor
	memory     *coaching.Memory
	merge      MergePolicy
	logger     *slog.Logger
	env        receipts.Fingerprint
}

// NewRunner validates the configuration and builds a Runner. Merge defaults
// to FirstNonEmpty and Memory may be nil.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("orchestrator: source is required")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("orchestrator: renderer is required")
	}
	if cfg.Receipts == nil {
		return nil, fmt.Errorf("orchestrator: receipt logger is required")
	}
	if len(cfg.Extractors) == 0 {
		return nil, fmt.Errorf("orchestrator: at least one extractor is required")
	}

	merge := cfg.Merge
	if merge == nil {
		merge = FirstNonEmpty
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		source:     cfg.Source,
		renderer:   cfg.Renderer,
		receipts:   cfg.Receipts,
		extractors: cfg.Extractors,
		memory:     cfg.Memory,
		merge:      merge,
		logger:     logger.With("system", "orchestrator"),
		env:        receipts.CaptureFingerprint(),
	}, nil
}

// sectionRun holds one section's per-agent receipts and merged value until
// all sections complete and receipts can be emitted in deterministic order.
type sectionRun struct {
	receipts []receipts.Receipt
	value    payload.Value
}

// RunDocument executes one full extraction run. Document fetch and section
// map problems fail the run before any agent is invoked; per-section
// failures are absorbed into the result as null values and failed receipts.
func (r *Runner) RunDocument(ctx context.Context, doc Document) RunResult {
	result := RunResult{
		DocumentID: doc.ID,
		Stem:       doc.Stem,
		Status:     StatusInProgress,
		StartedAt:  time.Now().UTC(),
	}

	content, err := r.source.Download(ctx, doc.StorageKey)
	if err != nil {
		return r.fail(result, fmt.Errorf("fetch document %s: %w", doc.StorageKey, err))
	}
	if err := doc.Sections.Validate(); err != nil {
		return r.fail(result, fmt.Errorf("section map: %w", err))
	}

	contentHash := receipts.Hash(content)
	runs := make([]sectionRun, len(doc.Sections.Sections))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerCount(len(doc.Sections.Sections)))

	for i, section := range doc.Sections.Sections {
		group.Go(func() error {
			runs[i] = r.runSection(groupCtx, doc, section, content, contentHash)
			return nil
		})
	}
	group.Wait()

	fields := make(map[string]payload.Value, len(runs))
	for i, section := range doc.Sections.Sections {
		fields[section.Name] = runs[i].value
	}
	merged := payload.Object(fields)

	coached := 0
	if r.memory != nil {
		merged, coached = r.memory.Apply(merged)
	}

	for _, run := range runs {
		for _, receipt := range run.receipts {
			if err := r.receipts.Log(receipt); err != nil {
				return r.fail(result, fmt.Errorf("write receipt: %w", err))
			}
			result.Receipts = append(result.Receipts, receipt)
		}
	}

	result.Status = StatusDone
	result.Result = merged
	result.CoachedFields = coached
	result.FinishedAt = time.Now().UTC()

	r.logger.Info("run complete",
		"document", doc.Stem,
		"sections", len(doc.Sections.Sections),
		"receipts", len(result.Receipts),
		"coached_fields", coached)
	return result
}

// runSection invokes every extractor once for one section, concurrently,
// under a shared pair ID. Receipts come back in extractor priority order.
func (r *Runner) runSection(ctx context.Context, doc Document, section sections.Section, content []byte, contentHash string) sectionRun {
	pages := section.Pages.Pages()
	spec := sections.SpecFor(section.Name)

	images, err := r.renderer.RenderPages(ctx, content, pages)
	if err != nil {
		r.logger.Warn("render failed, skipping section",
			"document", doc.Stem,
			"section", section.Name,
			"error", err)
		return sectionRun{value: payload.Null()}
	}

	req := agents.Request{
		Section: section.Name,
		Prompt:  spec.Prompt,
		Pages:   pages,
		Images:  images,
	}

	pairID := uuid.New()
	outcomes := make([]agents.Outcome, len(r.extractors))
	recorded := make([]receipts.Receipt, len(r.extractors))

	// Each goroutine owns its own slot, so no locking is needed and the
	// slices stay in extractor priority order.
	var wg sync.WaitGroup
	for i, extractor := range r.extractors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started := time.Now()
			outcomes[i] = extractor.Extract(ctx, req)
			validated := outcomes[i].Success && spec.Validate(outcomes[i].Data)
			recorded[i] = r.buildReceipt(doc, section.Name, extractor, outcomes[i], validated, pairID, contentHash, pages, time.Since(started))
		}()
	}
	wg.Wait()

	// Output that parsed but failed shape validation is an absent
	// contribution: its receipt records validated=false and it never
	// reaches the merge.
	values := make([]payload.Value, len(outcomes))
	for i, outcome := range outcomes {
		if recorded[i].Validated {
			values[i] = outcome.Data
		} else {
			values[i] = payload.Null()
		}
	}

	return sectionRun{
		receipts: recorded,
		value:    r.merge(values),
	}
}

func (r *Runner) buildReceipt(doc Document, section string, extractor agents.Extractor, outcome agents.Outcome, validated bool, pairID uuid.UUID, contentHash string, pages []int, latency time.Duration) receipts.Receipt {
	identity := extractor.Identity()

	return receipts.Receipt{
		DocumentID:  doc.ID,
		Stem:        doc.Stem,
		Section:     section,
		Agent:       extractor.Name(),
		Provider:    identity.Provider,
		Model:       identity.Model,
		BaseURL:     identity.BaseURL,
		StatusCode:  outcome.StatusCode,
		Parsed:      outcome.Parsed,
		Validated:   validated,
		LatencyMS:   latency.Milliseconds(),
		Pages:       pages,
		ContentHash: contentHash,
		PairID:      pairID,
		Error:       outcome.ErrorReason,
		Environment: r.env,
		CreatedAt:   time.Now().UTC(),
	}
}

func (r *Runner) fail(result RunResult, err error) RunResult {
	r.logger.Error("run failed", "document", result.Stem, "error", err)
	result.Status = StatusFailed
	result.Message = err.Error()
	result.Result = payload.Null()
	result.Receipts = nil
	result.FinishedAt = time.Now().UTC()
	return result
}

func workerCount(sections int) int {
	return max(min(runtime.NumCPU(), sections), 1)
}

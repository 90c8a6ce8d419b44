package api

import (
	"fmt"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/agents"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/baselines"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/batch"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/config"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/documents"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/extractions"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/learnings"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/orchestrator"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/render"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/reviews"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents   documents.System
	Extractions extractions.System
	Reviews     reviews.System
	Learnings   learnings.System
	Baselines   baselines.System
	Batch       *batch.Service

	// Extractors in merge priority order, for the agent health surface.
	Extractors []agents.Extractor
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	extractionsSystem := extractions.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	learningsSystem := learnings.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	reviewsSystem := reviews.New(
		runtime.Database.Connection(),
		learningsSystem,
		runtime.Logger,
	)

	baselinesSystem := baselines.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	timeout := cfg.Agents.TimeoutDuration()
	extractors := []agents.Extractor{
		agents.NewModel(cfg.Agents.Primary.Name, cfg.Agents.Primary, timeout),
		agents.NewModel(cfg.Agents.Secondary.Name, cfg.Agents.Secondary, timeout),
	}

	batchService, err := batch.NewService(batch.Config{
		Documents:        docsSystem,
		Extractions:      extractionsSystem,
		Learnings:        learningsSystem,
		Baselines:        baselinesSystem,
		Source:           orchestrator.StorageSource{Store: runtime.Storage},
		Renderer:         render.NewPdf(),
		Receipts:         runtime.Receipts,
		Extractors:       extractors,
		Merge:            cfg.Pipeline.MergeFunc(),
		Thresholds:       cfg.Pipeline.Gate,
		RequiredSections: cfg.Pipeline.RequiredSections,
		Logger:           runtime.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("batch service init failed: %w", err)
	}

	return &Domain{
		Documents:   docsSystem,
		Extractions: extractionsSystem,
		Reviews:     reviewsSystem,
		Learnings:   learningsSystem,
		Baselines:   baselinesSystem,
		Batch:       batchService,
		Extractors:  extractors,
	}, nil
}

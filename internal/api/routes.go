package api

import (
	"net/http"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/agents"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/config"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	runs := newRunsHandler(domain.Batch, cfg.Pipeline.GoldenDir, runtime.Logger)

	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Extractions.Handler().Routes(),
		domain.Reviews.Handler().Routes(),
		domain.Learnings.Handler().Routes(),
		domain.Baselines.Handler().Routes(),
		agents.NewHandler(domain.Extractors, runtime.Logger).Routes(),
		runs.routes(),
	)
}

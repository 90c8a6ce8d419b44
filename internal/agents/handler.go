package agents

import (
	"log/slog"
	"net/http"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/handlers"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/routes"
)

// Health is the reachability report for one configured agent.
type Health struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Healthy  bool   `json:"healthy"`
}

// Handler exposes agent reachability over HTTP.
type Handler struct {
	extractors []Extractor
	logger     *slog.Logger
}

// NewHandler creates an agent health handler over the configured extractors.
func NewHandler(extractors []Extractor, logger *slog.Logger) *Handler {
	return &Handler{
		extractors: extractors,
		logger:     logger.With("handler", "agents"),
	}
}

// Routes returns the agent route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/agents",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/health", Handler: h.health},
		},
	}
}

// health probes every extractor's backing transport. Responds 200 when all
// agents are reachable, 503 when any is not; the body reports each agent.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	report := make([]Health, len(h.extractors))
	healthy := true

	for i, extractor := range h.extractors {
		identity := extractor.Identity()
		ok := extractor.HealthCheck(r.Context())
		report[i] = Health{
			Name:     extractor.Name(),
			Provider: identity.Provider,
			Model:    identity.Model,
			Healthy:  ok,
		}
		if !ok {
			healthy = false
			h.logger.Warn("agent unreachable", "agent", extractor.Name())
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, report)
}

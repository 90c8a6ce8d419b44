package baselines

import (
	"log/slog"
	"net/http"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/handlers"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/routes"
)

// Handler provides HTTP endpoints for baseline inspection. Promotion only
// happens through gate evaluation, so the API surface is read-only.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler over the baseline system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "baselines"),
	}
}

// Routes returns the route group definition for baseline endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/baselines",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.History},
			{Method: "GET", Pattern: "/current", Handler: h.Current},
		},
	}
}

// Current returns the active baseline, or 404 when none has been promoted.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	m, err := h.sys.Current(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if m == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, m)
}

// History returns every promoted baseline, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	rows, err := h.sys.History(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rows)
}

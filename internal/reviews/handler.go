package reviews

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/handlers"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/routes"
)

// Handler provides HTTP endpoints for the review loop.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler over the review system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reviews"),
	}
}

// Routes returns the route group definition for review endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reviews",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/queue", Handler: h.Queue},
			{Method: "GET", Pattern: "/extraction/{extractionID}", Handler: h.ListForExtraction},
			{Method: "POST", Pattern: "", Handler: h.Add},
			{Method: "POST", Pattern: "/extraction/{extractionID}/promote", Handler: h.Promote},
		},
	}
}

// Queue returns extractions awaiting review, oldest first.
func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	entries, err := h.sys.Queue(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}

// ListForExtraction returns the findings recorded against one extraction.
func (h *Handler) ListForExtraction(w http.ResponseWriter, r *http.Request) {
	extractionID, err := uuid.Parse(r.PathValue("extractionID"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	findings, err := h.sys.ListForExtraction(r.Context(), extractionID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, findings)
}

// Add records one finding from a JSON body.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var cmd AddCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	f, err := h.sys.Add(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, f)
}

// Promote converts an extraction's disagreements into coaching learnings.
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	extractionID, err := uuid.Parse(r.PathValue("extractionID"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	count, err := h.sys.PromoteLearnings(r.Context(), extractionID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int{"promoted": count})
}

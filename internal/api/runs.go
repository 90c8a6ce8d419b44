package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/batch"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/documents"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/handlers"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/routes"
)

var errInvalidID = errors.New("invalid identifier")

// runsHandler exposes pipeline operations: triggering extraction runs,
// scoring, and gate evaluation.
type runsHandler struct {
	batch     *batch.Service
	goldenDir string
	logger    *slog.Logger
}

func newRunsHandler(svc *batch.Service, goldenDir string, logger *slog.Logger) *runsHandler {
	return &runsHandler{
		batch:     svc,
		goldenDir: goldenDir,
		logger:    logger.With("handler", "runs"),
	}
}

func (h *runsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/runs",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/document/{id}", Handler: h.runOne},
			{Method: "POST", Pattern: "/batch", Handler: h.runBatch},
			{Method: "POST", Pattern: "/score", Handler: h.score},
			{Method: "POST", Pattern: "/gate", Handler: h.gate},
		},
	}
}

func (h *runsHandler) runOne(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	e, err := h.batch.RunOne(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, documents.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, e)
}

func (h *runsHandler) runBatch(w http.ResponseWriter, r *http.Request) {
	filters, ok := h.decodeFilters(w, r)
	if !ok {
		return
	}

	summary, err := h.batch.RunBatch(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

func (h *runsHandler) score(w http.ResponseWriter, r *http.Request) {
	filters, ok := h.decodeFilters(w, r)
	if !ok {
		return
	}

	goldens, err := h.loadGoldens()
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	report, err := h.batch.Score(r.Context(), filters, goldens)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

func (h *runsHandler) gate(w http.ResponseWriter, r *http.Request) {
	filters, ok := h.decodeFilters(w, r)
	if !ok {
		return
	}

	goldens, err := h.loadGoldens()
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	report, err := h.batch.Score(r.Context(), filters, goldens)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	decision, err := h.batch.Gate(r.Context(), *report)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, decision)
}

// decodeFilters reads optional document filters from the body. An empty
// body selects every document.
func (h *runsHandler) decodeFilters(w http.ResponseWriter, r *http.Request) (documents.Filters, bool) {
	var filters documents.Filters
	if r.Body == nil {
		return filters, true
	}

	err := json.NewDecoder(r.Body).Decode(&filters)
	if err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return filters, false
	}
	return filters, true
}

func (h *runsHandler) loadGoldens() (batch.GoldenSet, error) {
	if h.goldenDir == "" {
		return nil, nil
	}
	return batch.LoadGoldenDir(h.goldenDir)
}

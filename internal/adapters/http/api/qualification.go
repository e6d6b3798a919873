package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/cardroom/standings/internal/app"
)

// QualificationHandler handles finale qualification queries and finale
// submissions.
type QualificationHandler struct {
	deps Dependencies
}

// NewQualificationHandler creates a new qualification handler.
func NewQualificationHandler(deps Dependencies) *QualificationHandler {
	return &QualificationHandler{deps: deps}
}

// HandleQualified handles GET /seasons/{seasonID}/qualified requests. An
// optional name query narrows the list by substring match.
func (h *QualificationHandler) HandleQualified(w http.ResponseWriter, r *http.Request) {
	qualified, err := h.deps.QualifiedPlayers(r.Context(), chi.URLParam(r, "seasonID"), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qualified)
}

// HandleStatus handles GET /seasons/{seasonID}/qualification-status requests.
func (h *QualificationHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.deps.QualificationStatus(r.Context(), chi.URLParam(r, "seasonID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// HandlePostFinale handles POST /seasons/{seasonID}/finale requests.
func (h *QualificationHandler) HandlePostFinale(w http.ResponseWriter, r *http.Request) {
	var req service.FinaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.SeasonID = chi.URLParam(r, "seasonID")

	tournament, err := h.deps.RecordSeasonFinale(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tournament)
}

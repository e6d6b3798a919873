package api

import (
	"net/http"

	service "github.com/cardroom/standings/internal/app"
)

// TournamentsHandler handles tournament result submissions.
type TournamentsHandler struct {
	deps Dependencies
}

// NewTournamentsHandler creates a new tournaments handler.
func NewTournamentsHandler(deps Dependencies) *TournamentsHandler {
	return &TournamentsHandler{deps: deps}
}

// HandlePostResults handles POST /tournaments/results requests.
func (h *TournamentsHandler) HandlePostResults(w http.ResponseWriter, r *http.Request) {
	var req service.RecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tournament, err := h.deps.RecordTournamentResults(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tournament)
}

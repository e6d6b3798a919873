package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StandingsHandler handles standings and profile queries.
type StandingsHandler struct {
	deps Dependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps Dependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleSeriesStandings handles GET /series/{seriesID}/standings requests.
func (h *StandingsHandler) HandleSeriesStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.deps.SeriesStandings(r.Context(), chi.URLParam(r, "seriesID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

// HandleSeasonStandings handles GET /standings/seasons requests.
func (h *StandingsHandler) HandleSeasonStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.deps.SeasonStandings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

// HandlePlayerProfile handles GET /players/{playerID}/profile requests.
func (h *StandingsHandler) HandlePlayerProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.deps.PlayerProfile(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardroom/standings/internal/adapters/store"
	"github.com/cardroom/standings/internal/domain/model"
)

// CRUDHandler exposes entity management passthrough endpoints over the store.
type CRUDHandler struct {
	store store.Store
}

// NewCRUDHandler creates a new CRUD handler.
func NewCRUDHandler(st store.Store) *CRUDHandler {
	return &CRUDHandler{store: st}
}

// Register attaches the entity management routes to r.
func (h *CRUDHandler) Register(r chi.Router) {
	r.Route("/leagues", func(r chi.Router) {
		r.Post("/", MetricsMiddleware(h.createLeague, "leagues"))
		r.Get("/", MetricsMiddleware(h.listLeagues, "leagues"))
		r.Get("/{leagueID}", MetricsMiddleware(h.getLeague, "league"))
		r.Put("/{leagueID}", MetricsMiddleware(h.updateLeague, "league"))
		r.Delete("/{leagueID}", MetricsMiddleware(h.deleteLeague, "league"))
		r.Get("/{leagueID}/seasons", MetricsMiddleware(h.listSeasonsByLeague, "league_seasons"))
	})

	r.Route("/seasons", func(r chi.Router) {
		r.Post("/", MetricsMiddleware(h.createSeason, "seasons"))
		r.Get("/", MetricsMiddleware(h.listSeasons, "seasons"))
		r.Get("/{seasonID}", MetricsMiddleware(h.getSeason, "season"))
		r.Put("/{seasonID}", MetricsMiddleware(h.updateSeason, "season"))
		r.Delete("/{seasonID}", MetricsMiddleware(h.deleteSeason, "season"))
		r.Get("/{seasonID}/series", MetricsMiddleware(h.listSeriesBySeason, "season_series"))
	})

	r.Route("/series", func(r chi.Router) {
		r.Post("/", MetricsMiddleware(h.createSeries, "series"))
		r.Get("/{seriesID}", MetricsMiddleware(h.getSeries, "series"))
		r.Put("/{seriesID}", MetricsMiddleware(h.updateSeries, "series"))
		r.Delete("/{seriesID}", MetricsMiddleware(h.deleteSeries, "series"))
	})

	r.Route("/players", func(r chi.Router) {
		r.Post("/", MetricsMiddleware(h.createPlayer, "players"))
		r.Get("/", MetricsMiddleware(h.listPlayers, "players"))
		r.Get("/{playerID}", MetricsMiddleware(h.getPlayer, "player"))
		r.Put("/{playerID}", MetricsMiddleware(h.updatePlayer, "player"))
		r.Delete("/{playerID}", MetricsMiddleware(h.deletePlayer, "player"))
	})
}

func (h *CRUDHandler) createLeague(w http.ResponseWriter, r *http.Request) {
	var l model.League
	if !decodeJSON(w, r, &l) {
		return
	}
	if err := h.store.CreateLeague(r.Context(), &l); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *CRUDHandler) listLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.store.ListLeagues(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (h *CRUDHandler) getLeague(w http.ResponseWriter, r *http.Request) {
	l, err := h.store.GetLeague(r.Context(), chi.URLParam(r, "leagueID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *CRUDHandler) updateLeague(w http.ResponseWriter, r *http.Request) {
	var l model.League
	if !decodeJSON(w, r, &l) {
		return
	}
	l.ID = chi.URLParam(r, "leagueID")
	if err := h.store.UpdateLeague(r.Context(), &l); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *CRUDHandler) deleteLeague(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteLeague(r.Context(), chi.URLParam(r, "leagueID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CRUDHandler) listSeasonsByLeague(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.store.ListSeasonsByLeague(r.Context(), chi.URLParam(r, "leagueID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

func (h *CRUDHandler) createSeason(w http.ResponseWriter, r *http.Request) {
	var s model.Season
	if !decodeJSON(w, r, &s) {
		return
	}
	if _, err := h.store.GetLeague(r.Context(), s.LeagueID); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.store.CreateSeason(r.Context(), &s); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *CRUDHandler) listSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.store.ListSeasons(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

func (h *CRUDHandler) getSeason(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.GetSeason(r.Context(), chi.URLParam(r, "seasonID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CRUDHandler) updateSeason(w http.ResponseWriter, r *http.Request) {
	var s model.Season
	if !decodeJSON(w, r, &s) {
		return
	}
	s.ID = chi.URLParam(r, "seasonID")
	if err := h.store.UpdateSeason(r.Context(), &s); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CRUDHandler) deleteSeason(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSeason(r.Context(), chi.URLParam(r, "seasonID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CRUDHandler) listSeriesBySeason(w http.ResponseWriter, r *http.Request) {
	series, err := h.store.ListSeriesBySeason(r.Context(), chi.URLParam(r, "seasonID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (h *CRUDHandler) createSeries(w http.ResponseWriter, r *http.Request) {
	var s model.Series
	if !decodeJSON(w, r, &s) {
		return
	}
	season, err := h.store.GetSeason(r.Context(), s.SeasonID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.LeagueID = season.LeagueID
	if err := h.store.CreateSeries(r.Context(), &s); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *CRUDHandler) getSeries(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.GetSeries(r.Context(), chi.URLParam(r, "seriesID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CRUDHandler) updateSeries(w http.ResponseWriter, r *http.Request) {
	var s model.Series
	if !decodeJSON(w, r, &s) {
		return
	}
	s.ID = chi.URLParam(r, "seriesID")
	if err := h.store.UpdateSeries(r.Context(), &s); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CRUDHandler) deleteSeries(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSeries(r.Context(), chi.URLParam(r, "seriesID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CRUDHandler) createPlayer(w http.ResponseWriter, r *http.Request) {
	var p model.Player
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := h.store.CreatePlayer(r.Context(), &p); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *CRUDHandler) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.ListPlayers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *CRUDHandler) getPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CRUDHandler) updatePlayer(w http.ResponseWriter, r *http.Request) {
	var p model.Player
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "playerID")
	if err := h.store.UpdatePlayer(r.Context(), &p); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CRUDHandler) deletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePlayer(r.Context(), chi.URLParam(r, "playerID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

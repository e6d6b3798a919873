// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardroom/standings/internal/adapters/store"
	service "github.com/cardroom/standings/internal/app"
	"github.com/cardroom/standings/internal/domain/model"
	"github.com/cardroom/standings/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecordTournamentResults(ctx context.Context, req service.RecordRequest) (*model.Tournament, error)
	RecordSeasonFinale(ctx context.Context, req service.FinaleRequest) (*model.Tournament, error)

	SeriesStandings(ctx context.Context, seriesID string) (*types.SeriesStandings, error)
	SeasonStandings(ctx context.Context) ([]types.SeasonStandings, error)
	PlayerProfile(ctx context.Context, playerID string) (*types.PlayerProfile, error)

	QualifiedPlayers(ctx context.Context, seasonID, nameFilter string) ([]types.QualifiedPlayer, error)
	QualificationStatus(ctx context.Context, seasonID string) (*types.QualificationStatus, error)

	// Store exposes entity CRUD for the passthrough endpoints.
	Store() store.Store
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps Dependencies

	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	tournamentsHandler   *TournamentsHandler
	standingsHandler     *StandingsHandler
	qualificationHandler *QualificationHandler
	crudHandler          *CRUDHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		deps:                 deps,
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		tournamentsHandler:   NewTournamentsHandler(deps),
		standingsHandler:     NewStandingsHandler(deps),
		qualificationHandler: NewQualificationHandler(deps),
		crudHandler:          NewCRUDHandler(deps.Store()),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Post("/tournaments/results", MetricsMiddleware(s.tournamentsHandler.HandlePostResults, "tournaments_results"))

	r.Get("/standings/seasons", MetricsMiddleware(s.standingsHandler.HandleSeasonStandings, "standings_seasons"))
	r.Get("/series/{seriesID}/standings", MetricsMiddleware(s.standingsHandler.HandleSeriesStandings, "series_standings"))
	r.Get("/players/{playerID}/profile", MetricsMiddleware(s.standingsHandler.HandlePlayerProfile, "player_profile"))

	r.Get("/seasons/{seasonID}/qualified", MetricsMiddleware(s.qualificationHandler.HandleQualified, "season_qualified"))
	r.Get("/seasons/{seasonID}/qualification-status", MetricsMiddleware(s.qualificationHandler.HandleStatus, "qualification_status"))
	r.Post("/seasons/{seasonID}/finale", MetricsMiddleware(s.qualificationHandler.HandlePostFinale, "season_finale"))

	s.crudHandler.Register(r)
}

type errorResponse struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	TournamentID string `json:"tournament_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err)
		return false
	}
	return true
}

// Package store defines the persisted-entity store the engine consumes and
// its in-memory and sqlite implementations.
package store

import (
	"context"

	"github.com/cardroom/standings/internal/domain/model"
)

// Leagues provides access to league records.
type Leagues interface {
	GetLeague(ctx context.Context, id string) (*model.League, error)
	ListLeagues(ctx context.Context) ([]model.League, error)
	CreateLeague(ctx context.Context, l *model.League) error
	UpdateLeague(ctx context.Context, l *model.League) error
	DeleteLeague(ctx context.Context, id string) error
}

// Seasons provides access to season records.
type Seasons interface {
	GetSeason(ctx context.Context, id string) (*model.Season, error)
	ListSeasons(ctx context.Context) ([]model.Season, error)
	ListSeasonsByLeague(ctx context.Context, leagueID string) ([]model.Season, error)
	CreateSeason(ctx context.Context, s *model.Season) error
	UpdateSeason(ctx context.Context, s *model.Season) error
	DeleteSeason(ctx context.Context, id string) error
}

// Series provides access to series records. Deleting a series cascades its
// scoreboards.
type Series interface {
	GetSeries(ctx context.Context, id string) (*model.Series, error)
	ListSeriesBySeason(ctx context.Context, seasonID string) ([]model.Series, error)
	CreateSeries(ctx context.Context, s *model.Series) error
	UpdateSeries(ctx context.Context, s *model.Series) error
	DeleteSeries(ctx context.Context, id string) error
}

// Players provides access to player records.
type Players interface {
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]model.Player, error)
	CreatePlayer(ctx context.Context, p *model.Player) error
	UpdatePlayer(ctx context.Context, p *model.Player) error
	DeletePlayer(ctx context.Context, id string) error
}

// Tournaments provides access to tournament records. Membership in a series
// or season is computed by query; there are no parent-side link arrays.
type Tournaments interface {
	GetTournament(ctx context.Context, id string) (*model.Tournament, error)
	ListTournamentsBySeries(ctx context.Context, seriesID string) ([]model.Tournament, error)
	ListTournamentsBySeason(ctx context.Context, seasonID string) ([]model.Tournament, error)
	CreateTournament(ctx context.Context, t *model.Tournament) error
	UpdateTournament(ctx context.Context, t *model.Tournament) error
	DeleteTournament(ctx context.Context, id string) error
}

// TournamentPlayers provides access to per-player tournament outcomes.
type TournamentPlayers interface {
	CreateTournamentPlayer(ctx context.Context, tp *model.TournamentPlayer) error
	ListTournamentPlayersByTournament(ctx context.Context, tournamentID string) ([]model.TournamentPlayer, error)
	ListTournamentPlayersByTournaments(ctx context.Context, tournamentIDs []string) ([]model.TournamentPlayer, error)
	ListTournamentPlayersByPlayer(ctx context.Context, playerID string) ([]model.TournamentPlayer, error)
}

// Scoreboards provides access to cumulative per-series standings records.
type Scoreboards interface {
	GetScoreboard(ctx context.Context, id string) (*model.Scoreboard, error)
	GetScoreboardBySeriesPlayer(ctx context.Context, seriesID, playerID string) (*model.Scoreboard, error)
	ListScoreboardsBySeries(ctx context.Context, seriesID string) ([]model.Scoreboard, error)
	ListScoreboardsBySeason(ctx context.Context, seasonID string) ([]model.Scoreboard, error)
	ListScoreboardsByPlayer(ctx context.Context, playerID string) ([]model.Scoreboard, error)
	CreateScoreboard(ctx context.Context, sb *model.Scoreboard) error
	UpdateScoreboard(ctx context.Context, sb *model.Scoreboard) error
}

// Qualifications provides access to finale eligibility records.
type Qualifications interface {
	CreateQualification(ctx context.Context, q *model.Qualification) error
	ListQualificationsBySeason(ctx context.Context, seasonID string) ([]model.Qualification, error)
}

// Store is the complete entity-store contract. Create methods assign an id
// when the entity arrives without one. List methods return entities in
// insertion order so repeated reads are stable.
type Store interface {
	Leagues
	Seasons
	Series
	Players
	Tournaments
	TournamentPlayers
	Scoreboards
	Qualifications

	Close() error
}

// Package model contains domain entities passed between layers.
package model

import (
	"math"
	"time"
)

// FinaleSeriesID is the reserved series marker for season-finale tournaments.
// Tournaments carrying it are excluded from ordinary series aggregation.
const FinaleSeriesID = "season-finale"

// Tournament statuses.
const (
	TournamentCompleted = "completed"
)

// QualificationType tags how a player earned finale eligibility.
type QualificationType string

const (
	QualificationWinner   QualificationType = "winner"
	QualificationTopThree QualificationType = "top_three"
)

// League is the top-level grouping of seasons.
type League struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Season groups series within a league.
type Season struct {
	ID       string    `json:"id"`
	LeagueID string    `json:"league_id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Series is a themed grouping of tournaments within a season.
type Series struct {
	ID       string `json:"id"`
	SeasonID string `json:"season_id"`
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
}

// Player identifies a league member.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Tournament is one finalized event. Finale tournaments carry
// SeriesID == FinaleSeriesID and never feed series scoreboards.
type Tournament struct {
	ID           string    `json:"id"`
	SeriesID     string    `json:"series_id"`
	SeasonID     string    `json:"season_id"`
	LeagueID     string    `json:"league_id"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	TotalPlayers int       `json:"total_players"`
	Notes        string    `json:"notes"`
}

// TournamentPlayer is one player's outcome in one tournament. Bounty and
// consolation credit live in structured fields; they are recorded for
// display breakdowns and never added to scoreboard totals.
type TournamentPlayer struct {
	ID                string `json:"id"`
	TournamentID      string `json:"tournament_id"`
	PlayerID          string `json:"player_id"`
	FinalPosition     int    `json:"final_position"`
	Points            int    `json:"points"`
	BountyPoints      int    `json:"bounty_points"`
	ConsolationPoints int    `json:"consolation_points"`
	Payout            int    `json:"payout"`
}

// Scoreboard is the cumulative standing of one player within one series.
// PositionSum is the exact running sum of finishing positions; the rounded
// average is derived from it on read so repeated rounding never compounds.
type Scoreboard struct {
	ID              string    `json:"id"`
	SeriesID        string    `json:"series_id"`
	SeasonID        string    `json:"season_id"`
	LeagueID        string    `json:"league_id"`
	PlayerID        string    `json:"player_id"`
	TotalPoints     int       `json:"total_points"`
	TournamentCount int       `json:"tournament_count"`
	BestFinish      int       `json:"best_finish"`
	PositionSum     int       `json:"position_sum"`
	WinCount        int       `json:"win_count"`
	TopThreeCount   int       `json:"top_three_count"`
	LastUpdated     time.Time `json:"last_updated"`
}

// AverageFinish returns the mean finishing position rounded half-up.
// Zero when no tournaments have been recorded.
func (s Scoreboard) AverageFinish() int {
	if s.TournamentCount == 0 {
		return 0
	}
	return int(math.Floor(float64(s.PositionSum)/float64(s.TournamentCount) + 0.5))
}

// Qualification is a player's eligibility claim for a season finale.
type Qualification struct {
	ID           string            `json:"id"`
	SeasonID     string            `json:"season_id"`
	LeagueID     string            `json:"league_id"`
	PlayerID     string            `json:"player_id"`
	TournamentID string            `json:"tournament_id"`
	Type         QualificationType `json:"qualification_type"`
	IsActive     bool              `json:"is_active"`
}

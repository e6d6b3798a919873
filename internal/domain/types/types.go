// Package types contains the read projections returned by standings and
// qualification queries.
package types

import "github.com/cardroom/standings/internal/domain/model"

// StandingRow is one player's row in a standings table, with the
// point-source breakdown re-derived from tournament records.
type StandingRow struct {
	PlayerID          string `json:"player_id"`
	PlayerName        string `json:"player_name"`
	TotalPoints       int    `json:"total_points"`
	RegularPoints     int    `json:"regular_points"`
	BountyPoints      int    `json:"bounty_points"`
	ConsolationPoints int    `json:"consolation_points"`
	TournamentCount   int    `json:"tournament_count"`
	BestFinish        int    `json:"best_finish"`
	AverageFinish     int    `json:"average_finish"`
	WinCount          int    `json:"win_count"`
	TopThreeCount     int    `json:"top_three_count"`
}

// SeriesStandings is the standings table of one series with its lineage.
type SeriesStandings struct {
	SeriesID   string        `json:"series_id"`
	SeriesName string        `json:"series_name"`
	SeasonID   string        `json:"season_id"`
	SeasonName string        `json:"season_name"`
	LeagueID   string        `json:"league_id"`
	LeagueName string        `json:"league_name"`
	Standings  []StandingRow `json:"standings"`
}

// SeasonStandings groups a season's series standings under the season.
type SeasonStandings struct {
	SeasonID   string            `json:"season_id"`
	SeasonName string            `json:"season_name"`
	LeagueID   string            `json:"league_id"`
	LeagueName string            `json:"league_name"`
	Series     []SeriesStandings `json:"series"`
}

// SeriesTotals is a player's cumulative line within one series.
type SeriesTotals struct {
	SeriesID        string `json:"series_id"`
	SeriesName      string `json:"series_name"`
	TotalPoints     int    `json:"total_points"`
	TournamentCount int    `json:"tournament_count"`
	BestFinish      int    `json:"best_finish"`
}

// PlayerProfile is a player's lifetime line across every series they hold a
// scoreboard in. BestFinish is zero when no positions were ever recorded.
type PlayerProfile struct {
	PlayerID        string         `json:"player_id"`
	PlayerName      string         `json:"player_name"`
	TotalPoints     int            `json:"total_points"`
	TournamentCount int            `json:"tournament_count"`
	BestFinish      int            `json:"best_finish"`
	WinCount        int            `json:"win_count"`
	TopThreeCount   int            `json:"top_three_count"`
	Series          []SeriesTotals `json:"series"`
}

// QualifiedPlayer is a finale seat-allocation entry derived at query time.
type QualifiedPlayer struct {
	PlayerID        string                  `json:"player_id"`
	PlayerName      string                  `json:"player_name"`
	TournamentCount int                     `json:"tournament_count"`
	TotalChips      int                     `json:"total_chips"`
	Type            model.QualificationType `json:"qualification_type"`
}

// QualificationStatus summarizes a season's finale roster state.
type QualificationStatus struct {
	TotalQualified    int `json:"total_qualified"`
	MaxPlayers        int `json:"max_players"`
	TournamentWinners int `json:"tournament_winners"`
	TopQualifiers     int `json:"top_qualifiers"`
	RemainingSpots    int `json:"remaining_spots"`
}

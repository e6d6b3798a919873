package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cardroom/standings/internal/domain/model"
)

// SQLite is a Store backed by a sqlite database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and runs
// migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite works best with a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Ping checks that the database connection is alive.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS leagues (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS seasons (
			id TEXT PRIMARY KEY,
			league_id TEXT NOT NULL,
			name TEXT NOT NULL,
			starts_at DATETIME,
			ends_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seasons_league ON seasons(league_id)`,
		`CREATE TABLE IF NOT EXISTS series (
			id TEXT PRIMARY KEY,
			season_id TEXT NOT NULL,
			league_id TEXT NOT NULL,
			name TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_series_season ON series(season_id)`,
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY,
			series_id TEXT NOT NULL,
			season_id TEXT NOT NULL,
			league_id TEXT NOT NULL,
			status TEXT NOT NULL,
			date DATETIME NOT NULL,
			total_players INTEGER NOT NULL,
			notes TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tournaments_series ON tournaments(series_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tournaments_season ON tournaments(season_id)`,
		`CREATE TABLE IF NOT EXISTS tournament_players (
			id TEXT PRIMARY KEY,
			tournament_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			final_position INTEGER NOT NULL,
			points INTEGER NOT NULL,
			bounty_points INTEGER NOT NULL DEFAULT 0,
			consolation_points INTEGER NOT NULL DEFAULT 0,
			payout INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tp_tournament ON tournament_players(tournament_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tp_player ON tournament_players(player_id)`,
		`CREATE TABLE IF NOT EXISTS scoreboards (
			id TEXT PRIMARY KEY,
			series_id TEXT NOT NULL,
			season_id TEXT NOT NULL,
			league_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			total_points INTEGER NOT NULL,
			tournament_count INTEGER NOT NULL,
			best_finish INTEGER NOT NULL,
			position_sum INTEGER NOT NULL,
			win_count INTEGER NOT NULL,
			top_three_count INTEGER NOT NULL,
			last_updated DATETIME NOT NULL,
			UNIQUE(series_id, player_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scoreboards_season ON scoreboards(season_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scoreboards_player ON scoreboards(player_id)`,
		`CREATE TABLE IF NOT EXISTS qualifications (
			id TEXT PRIMARY KEY,
			season_id TEXT NOT NULL,
			league_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			tournament_id TEXT NOT NULL,
			qualification_type TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX IF NOT EXISTS idx_qualifications_season ON qualifications(season_id)`,
	}
	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func ensureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// --- leagues ---

func (s *SQLite) GetLeague(ctx context.Context, id string) (*model.League, error) {
	var l model.League
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM leagues WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("league", id)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *SQLite) ListLeagues(ctx context.Context) ([]model.League, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM leagues ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.League
	for rows.Next() {
		var l model.League
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateLeague(ctx context.Context, l *model.League) error {
	l.ID = ensureID(l.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leagues (id, name, created_at) VALUES (?, ?, ?)`,
		l.ID, l.Name, l.CreatedAt)
	return err
}

func (s *SQLite) UpdateLeague(ctx context.Context, l *model.League) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leagues SET name = ?, created_at = ? WHERE id = ?`,
		l.Name, l.CreatedAt, l.ID)
	return checkAffected(res, err, "league", l.ID)
}

func (s *SQLite) DeleteLeague(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leagues WHERE id = ?`, id)
	return checkAffected(res, err, "league", id)
}

// --- seasons ---

func (s *SQLite) GetSeason(ctx context.Context, id string) (*model.Season, error) {
	var season model.Season
	err := s.db.QueryRowContext(ctx,
		`SELECT id, league_id, name, starts_at, ends_at FROM seasons WHERE id = ?`, id).
		Scan(&season.ID, &season.LeagueID, &season.Name, &season.StartsAt, &season.EndsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("season", id)
	}
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func (s *SQLite) ListSeasons(ctx context.Context) ([]model.Season, error) {
	return s.listSeasons(ctx,
		`SELECT id, league_id, name, starts_at, ends_at FROM seasons ORDER BY rowid`)
}

func (s *SQLite) ListSeasonsByLeague(ctx context.Context, leagueID string) ([]model.Season, error) {
	return s.listSeasons(ctx,
		`SELECT id, league_id, name, starts_at, ends_at FROM seasons WHERE league_id = ? ORDER BY rowid`,
		leagueID)
}

func (s *SQLite) listSeasons(ctx context.Context, query string, args ...any) ([]model.Season, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Season
	for rows.Next() {
		var season model.Season
		if err := rows.Scan(&season.ID, &season.LeagueID, &season.Name, &season.StartsAt, &season.EndsAt); err != nil {
			return nil, err
		}
		out = append(out, season)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateSeason(ctx context.Context, season *model.Season) error {
	season.ID = ensureID(season.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO seasons (id, league_id, name, starts_at, ends_at) VALUES (?, ?, ?, ?, ?)`,
		season.ID, season.LeagueID, season.Name, season.StartsAt, season.EndsAt)
	return err
}

func (s *SQLite) UpdateSeason(ctx context.Context, season *model.Season) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE seasons SET league_id = ?, name = ?, starts_at = ?, ends_at = ? WHERE id = ?`,
		season.LeagueID, season.Name, season.StartsAt, season.EndsAt, season.ID)
	return checkAffected(res, err, "season", season.ID)
}

func (s *SQLite) DeleteSeason(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = ?`, id)
	return checkAffected(res, err, "season", id)
}

// --- series ---

func (s *SQLite) GetSeries(ctx context.Context, id string) (*model.Series, error) {
	var sr model.Series
	err := s.db.QueryRowContext(ctx,
		`SELECT id, season_id, league_id, name FROM series WHERE id = ?`, id).
		Scan(&sr.ID, &sr.SeasonID, &sr.LeagueID, &sr.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("series", id)
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (s *SQLite) ListSeriesBySeason(ctx context.Context, seasonID string) ([]model.Series, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, season_id, league_id, name FROM series WHERE season_id = ? ORDER BY rowid`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Series
	for rows.Next() {
		var sr model.Series
		if err := rows.Scan(&sr.ID, &sr.SeasonID, &sr.LeagueID, &sr.Name); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateSeries(ctx context.Context, sr *model.Series) error {
	sr.ID = ensureID(sr.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO series (id, season_id, league_id, name) VALUES (?, ?, ?, ?)`,
		sr.ID, sr.SeasonID, sr.LeagueID, sr.Name)
	return err
}

func (s *SQLite) UpdateSeries(ctx context.Context, sr *model.Series) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE series SET season_id = ?, league_id = ?, name = ? WHERE id = ?`,
		sr.SeasonID, sr.LeagueID, sr.Name, sr.ID)
	return checkAffected(res, err, "series", sr.ID)
}

// DeleteSeries removes a series and cascades its scoreboards in one
// transaction.
func (s *SQLite) DeleteSeries(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM series WHERE id = ?`, id)
	if err := checkAffected(res, err, "series", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM scoreboards WHERE series_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// --- players ---

func (s *SQLite) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	var p model.Player
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("player", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLite) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM players ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLite) CreatePlayer(ctx context.Context, p *model.Player) error {
	p.ID = ensureID(p.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt)
	return err
}

func (s *SQLite) UpdatePlayer(ctx context.Context, p *model.Player) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET name = ?, created_at = ? WHERE id = ?`,
		p.Name, p.CreatedAt, p.ID)
	return checkAffected(res, err, "player", p.ID)
}

func (s *SQLite) DeletePlayer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	return checkAffected(res, err, "player", id)
}

// --- tournaments ---

func (s *SQLite) GetTournament(ctx context.Context, id string) (*model.Tournament, error) {
	var t model.Tournament
	err := s.db.QueryRowContext(ctx,
		`SELECT id, series_id, season_id, league_id, status, date, total_players, notes
		 FROM tournaments WHERE id = ?`, id).
		Scan(&t.ID, &t.SeriesID, &t.SeasonID, &t.LeagueID, &t.Status, &t.Date, &t.TotalPlayers, &t.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("tournament", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLite) ListTournamentsBySeries(ctx context.Context, seriesID string) ([]model.Tournament, error) {
	return s.listTournaments(ctx,
		`SELECT id, series_id, season_id, league_id, status, date, total_players, notes
		 FROM tournaments WHERE series_id = ? ORDER BY rowid`, seriesID)
}

func (s *SQLite) ListTournamentsBySeason(ctx context.Context, seasonID string) ([]model.Tournament, error) {
	return s.listTournaments(ctx,
		`SELECT id, series_id, season_id, league_id, status, date, total_players, notes
		 FROM tournaments WHERE season_id = ? ORDER BY rowid`, seasonID)
}

func (s *SQLite) listTournaments(ctx context.Context, query string, args ...any) ([]model.Tournament, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tournament
	for rows.Next() {
		var t model.Tournament
		if err := rows.Scan(&t.ID, &t.SeriesID, &t.SeasonID, &t.LeagueID, &t.Status, &t.Date, &t.TotalPlayers, &t.Notes); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateTournament(ctx context.Context, t *model.Tournament) error {
	t.ID = ensureID(t.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tournaments (id, series_id, season_id, league_id, status, date, total_players, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.SeriesID, t.SeasonID, t.LeagueID, t.Status, t.Date, t.TotalPlayers, t.Notes)
	return err
}

func (s *SQLite) UpdateTournament(ctx context.Context, t *model.Tournament) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tournaments SET series_id = ?, season_id = ?, league_id = ?, status = ?, date = ?, total_players = ?, notes = ?
		 WHERE id = ?`,
		t.SeriesID, t.SeasonID, t.LeagueID, t.Status, t.Date, t.TotalPlayers, t.Notes, t.ID)
	return checkAffected(res, err, "tournament", t.ID)
}

func (s *SQLite) DeleteTournament(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	if err := checkAffected(res, err, "tournament", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tournament_players WHERE tournament_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// --- tournament players ---

func (s *SQLite) CreateTournamentPlayer(ctx context.Context, tp *model.TournamentPlayer) error {
	tp.ID = ensureID(tp.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tournament_players (id, tournament_id, player_id, final_position, points, bounty_points, consolation_points, payout)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tp.ID, tp.TournamentID, tp.PlayerID, tp.FinalPosition, tp.Points, tp.BountyPoints, tp.ConsolationPoints, tp.Payout)
	return err
}

func (s *SQLite) ListTournamentPlayersByTournament(ctx context.Context, tournamentID string) ([]model.TournamentPlayer, error) {
	return s.listTournamentPlayers(ctx,
		`SELECT id, tournament_id, player_id, final_position, points, bounty_points, consolation_points, payout
		 FROM tournament_players WHERE tournament_id = ? ORDER BY rowid`, tournamentID)
}

func (s *SQLite) ListTournamentPlayersByTournaments(ctx context.Context, tournamentIDs []string) ([]model.TournamentPlayer, error) {
	if len(tournamentIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tournamentIDs)), ",")
	args := make([]any, len(tournamentIDs))
	for i, id := range tournamentIDs {
		args[i] = id
	}
	return s.listTournamentPlayers(ctx,
		`SELECT id, tournament_id, player_id, final_position, points, bounty_points, consolation_points, payout
		 FROM tournament_players WHERE tournament_id IN (`+placeholders+`) ORDER BY rowid`, args...)
}

func (s *SQLite) ListTournamentPlayersByPlayer(ctx context.Context, playerID string) ([]model.TournamentPlayer, error) {
	return s.listTournamentPlayers(ctx,
		`SELECT id, tournament_id, player_id, final_position, points, bounty_points, consolation_points, payout
		 FROM tournament_players WHERE player_id = ? ORDER BY rowid`, playerID)
}

func (s *SQLite) listTournamentPlayers(ctx context.Context, query string, args ...any) ([]model.TournamentPlayer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TournamentPlayer
	for rows.Next() {
		var tp model.TournamentPlayer
		if err := rows.Scan(&tp.ID, &tp.TournamentID, &tp.PlayerID, &tp.FinalPosition, &tp.Points, &tp.BountyPoints, &tp.ConsolationPoints, &tp.Payout); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// --- scoreboards ---

const scoreboardColumns = `id, series_id, season_id, league_id, player_id, total_points, tournament_count, best_finish, position_sum, win_count, top_three_count, last_updated`

func (s *SQLite) GetScoreboard(ctx context.Context, id string) (*model.Scoreboard, error) {
	return s.getScoreboard(ctx,
		`SELECT `+scoreboardColumns+` FROM scoreboards WHERE id = ?`, "scoreboard", id, id)
}

func (s *SQLite) GetScoreboardBySeriesPlayer(ctx context.Context, seriesID, playerID string) (*model.Scoreboard, error) {
	return s.getScoreboard(ctx,
		`SELECT `+scoreboardColumns+` FROM scoreboards WHERE series_id = ? AND player_id = ?`,
		"scoreboard", seriesID+"/"+playerID, seriesID, playerID)
}

func (s *SQLite) getScoreboard(ctx context.Context, query, kind, key string, args ...any) (*model.Scoreboard, error) {
	var sb model.Scoreboard
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&sb.ID, &sb.SeriesID, &sb.SeasonID, &sb.LeagueID, &sb.PlayerID, &sb.TotalPoints,
			&sb.TournamentCount, &sb.BestFinish, &sb.PositionSum, &sb.WinCount, &sb.TopThreeCount, &sb.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(kind, key)
	}
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

func (s *SQLite) ListScoreboardsBySeries(ctx context.Context, seriesID string) ([]model.Scoreboard, error) {
	return s.listScoreboards(ctx,
		`SELECT `+scoreboardColumns+` FROM scoreboards WHERE series_id = ? ORDER BY rowid`, seriesID)
}

func (s *SQLite) ListScoreboardsBySeason(ctx context.Context, seasonID string) ([]model.Scoreboard, error) {
	return s.listScoreboards(ctx,
		`SELECT `+scoreboardColumns+` FROM scoreboards WHERE season_id = ? ORDER BY rowid`, seasonID)
}

func (s *SQLite) ListScoreboardsByPlayer(ctx context.Context, playerID string) ([]model.Scoreboard, error) {
	return s.listScoreboards(ctx,
		`SELECT `+scoreboardColumns+` FROM scoreboards WHERE player_id = ? ORDER BY rowid`, playerID)
}

func (s *SQLite) listScoreboards(ctx context.Context, query string, args ...any) ([]model.Scoreboard, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Scoreboard
	for rows.Next() {
		var sb model.Scoreboard
		if err := rows.Scan(&sb.ID, &sb.SeriesID, &sb.SeasonID, &sb.LeagueID, &sb.PlayerID, &sb.TotalPoints,
			&sb.TournamentCount, &sb.BestFinish, &sb.PositionSum, &sb.WinCount, &sb.TopThreeCount, &sb.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, sb)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateScoreboard(ctx context.Context, sb *model.Scoreboard) error {
	sb.ID = ensureID(sb.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scoreboards (`+scoreboardColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sb.ID, sb.SeriesID, sb.SeasonID, sb.LeagueID, sb.PlayerID, sb.TotalPoints,
		sb.TournamentCount, sb.BestFinish, sb.PositionSum, sb.WinCount, sb.TopThreeCount, sb.LastUpdated)
	return err
}

func (s *SQLite) UpdateScoreboard(ctx context.Context, sb *model.Scoreboard) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE scoreboards SET total_points = ?, tournament_count = ?, best_finish = ?, position_sum = ?,
		 win_count = ?, top_three_count = ?, last_updated = ? WHERE id = ?`,
		sb.TotalPoints, sb.TournamentCount, sb.BestFinish, sb.PositionSum,
		sb.WinCount, sb.TopThreeCount, sb.LastUpdated, sb.ID)
	return checkAffected(res, err, "scoreboard", sb.ID)
}

// --- qualifications ---

func (s *SQLite) CreateQualification(ctx context.Context, q *model.Qualification) error {
	q.ID = ensureID(q.ID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO qualifications (id, season_id, league_id, player_id, tournament_id, qualification_type, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.SeasonID, q.LeagueID, q.PlayerID, q.TournamentID, string(q.Type), q.IsActive)
	return err
}

func (s *SQLite) ListQualificationsBySeason(ctx context.Context, seasonID string) ([]model.Qualification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, season_id, league_id, player_id, tournament_id, qualification_type, is_active
		 FROM qualifications WHERE season_id = ? ORDER BY rowid`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Qualification
	for rows.Next() {
		var q model.Qualification
		var qt string
		if err := rows.Scan(&q.ID, &q.SeasonID, &q.LeagueID, &q.PlayerID, &q.TournamentID, &qt, &q.IsActive); err != nil {
			return nil, err
		}
		q.Type = model.QualificationType(qt)
		out = append(out, q)
	}
	return out, rows.Err()
}

// checkAffected converts a zero-row update/delete into ErrNotFound.
func checkAffected(res sql.Result, err error, kind, id string) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}

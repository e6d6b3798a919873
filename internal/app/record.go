package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cardroom/standings/internal/adapters/store"
	"github.com/cardroom/standings/internal/domain/model"
	"github.com/cardroom/standings/internal/domain/scoring"
	"github.com/cardroom/standings/pkg/logger"
	"github.com/cardroom/standings/pkg/metrics"
)

// RankingEntry is one player's finishing line in a submission. Players are
// referenced by id, or by name when the submission creates them.
type RankingEntry struct {
	PlayerID    string `json:"player_id,omitempty"`
	PlayerName  string `json:"player_name,omitempty"`
	Position    int    `json:"position"`
	Bounties    int    `json:"bounties,omitempty"`
	Consolation bool   `json:"consolation,omitempty"`
}

// RecordRequest is a finalized tournament result batch.
type RecordRequest struct {
	SubmissionID string           `json:"submission_id,omitempty"`
	SeriesID     string           `json:"series_id"`
	GameType     scoring.GameType `json:"game_type,omitempty"`
	Date         time.Time        `json:"date"`
	TotalPlayers int              `json:"total_players"`
	Notes        string           `json:"notes,omitempty"`
	NewPlayers   []string         `json:"new_players,omitempty"`
	Rankings     []RankingEntry   `json:"rankings"`
}

// RecordTournamentResults applies a finalized result batch: it creates the
// tournament and its per-player records, folds points into the (series,
// player) scoreboards, and emits finale qualifications for podium finishes.
// Submissions for the same series are serialized; a retried submission id
// returns the originally created tournament without re-applying anything,
// even when the original attempt only got partway through.
// A store failure after the tournament record exists surfaces as a
// PartialWriteError carrying the tournament id.
func (s *Service) RecordTournamentResults(ctx context.Context, req RecordRequest) (*model.Tournament, error) {
	if req.GameType == "" {
		req.GameType = scoring.GameTournament
	}
	if len(req.Rankings) == 0 {
		return nil, invalidf("no rankings submitted")
	}

	if t, ok := s.replayed(ctx, req.SubmissionID); ok {
		return t, nil
	}

	unlock := s.lock(req.SeriesID)
	defer unlock()

	// Re-check under the lock: a concurrent retry may have won the race.
	if t, ok := s.replayed(ctx, req.SubmissionID); ok {
		return t, nil
	}

	series, err := s.store.GetSeries(ctx, req.SeriesID)
	if err != nil {
		return nil, err
	}

	// Malformed rankings must be rejected before any write, including the
	// newPlayers records.
	if err := validateRankings(req.GameType, req.TotalPlayers, req.Rankings); err != nil {
		return nil, err
	}

	resolved, err := s.resolvePlayers(ctx, req.NewPlayers, req.Rankings)
	if err != nil {
		return nil, err
	}

	ranked := make([]scoring.RankedPlayer, len(req.Rankings))
	for i, entry := range req.Rankings {
		ranked[i] = scoring.RankedPlayer{PlayerID: resolved[i], Rank: entry.Position}
	}
	points, err := s.calculator.Score(req.GameType, req.TotalPlayers, ranked)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	tournament := &model.Tournament{
		SeriesID:     req.SeriesID,
		SeasonID:     series.SeasonID,
		LeagueID:     series.LeagueID,
		Status:       model.TournamentCompleted,
		Date:         req.Date,
		TotalPlayers: req.TotalPlayers,
		Notes:        req.Notes,
	}
	if err := s.store.CreateTournament(ctx, tournament); err != nil {
		return nil, err
	}
	if req.SubmissionID != "" {
		s.submitted.Record(ctx, req.SubmissionID, tournament.ID)
	}

	for i, entry := range req.Rankings {
		playerID := resolved[i]
		if err := s.applyResult(ctx, series, tournament, playerID, entry, points[playerID]); err != nil {
			// The submission id stays recorded: retrying the same id returns
			// the partial tournament instead of folding the already-applied
			// results a second time.
			metrics.RecordPartialWrite()
			return nil, &PartialWriteError{TournamentID: tournament.ID, Err: err}
		}
	}

	metrics.RecordTournamentRecorded()
	s.logger.Info(ctx, "tournament recorded",
		logger.String("tournamentID", tournament.ID),
		logger.String("seriesID", req.SeriesID),
		logger.Int("players", len(req.Rankings)),
	)

	s.notifyStandings(ctx, req.SeriesID)
	return tournament, nil
}

// validateRankings rejects a malformed batch before any record is written.
// The calculator re-checks the same invariants when scoring.
func validateRankings(gameType scoring.GameType, totalPlayers int, rankings []RankingEntry) error {
	switch gameType {
	case scoring.GameTournament, scoring.GameConsolation:
	default:
		return invalidf("unknown game type %q", gameType)
	}
	if totalPlayers < len(rankings) {
		return invalidf("%d ranked entries but only %d total players", len(rankings), totalPlayers)
	}
	seen := make(map[int]struct{}, len(rankings))
	for _, entry := range rankings {
		if entry.Position < 1 {
			return invalidf("invalid position %d", entry.Position)
		}
		if _, dup := seen[entry.Position]; dup {
			return invalidf("duplicate position %d", entry.Position)
		}
		seen[entry.Position] = struct{}{}
	}
	return nil
}

// replayed returns the tournament originally produced by a submission id.
func (s *Service) replayed(ctx context.Context, submissionID string) (*model.Tournament, bool) {
	if submissionID == "" {
		return nil, false
	}
	tournamentID, seen := s.submitted.Lookup(ctx, submissionID)
	if !seen {
		return nil, false
	}
	metrics.RecordDuplicateSubmission()
	s.logger.Info(ctx, "duplicate submission, returning original tournament",
		logger.String("submissionID", submissionID),
		logger.String("tournamentID", tournamentID),
	)
	t, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, false
	}
	return t, true
}

// resolvePlayers creates every new player and maps each ranking entry to a
// player id, by id or by name. A newPlayers name that already exists reuses
// the existing record, so a corrected resubmission never duplicates players.
func (s *Service) resolvePlayers(ctx context.Context, newPlayers []string, rankings []RankingEntry) ([]string, error) {
	var existing []model.Player
	if len(newPlayers) > 0 {
		var err error
		if existing, err = s.store.ListPlayers(ctx); err != nil {
			return nil, err
		}
	}

	byName := make(map[string]string, len(newPlayers))
	for _, name := range newPlayers {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, invalidf("empty new player name")
		}
		for _, p := range existing {
			if strings.EqualFold(p.Name, name) {
				byName[strings.ToLower(name)] = p.ID
				break
			}
		}
		if _, ok := byName[strings.ToLower(name)]; ok {
			continue
		}
		p := &model.Player{Name: name, CreatedAt: time.Now().UTC()}
		if err := s.store.CreatePlayer(ctx, p); err != nil {
			return nil, err
		}
		byName[strings.ToLower(name)] = p.ID
	}

	resolved := make([]string, len(rankings))
	for i, entry := range rankings {
		if entry.PlayerID != "" {
			if _, err := s.store.GetPlayer(ctx, entry.PlayerID); err != nil {
				return nil, err
			}
			resolved[i] = entry.PlayerID
			continue
		}
		name := strings.ToLower(strings.TrimSpace(entry.PlayerName))
		if name == "" {
			return nil, invalidf("ranking at position %d names no player", entry.Position)
		}
		if id, ok := byName[name]; ok {
			resolved[i] = id
			continue
		}
		if existing == nil {
			var err error
			if existing, err = s.store.ListPlayers(ctx); err != nil {
				return nil, err
			}
		}
		for _, p := range existing {
			if strings.EqualFold(p.Name, entry.PlayerName) {
				resolved[i] = p.ID
				break
			}
		}
		if resolved[i] == "" {
			return nil, invalidf("unknown player %q", entry.PlayerName)
		}
	}
	return resolved, nil
}

// applyResult writes one player's outcome: the tournament-player record, the
// scoreboard fold, and a qualification when the finish is on the podium.
func (s *Service) applyResult(ctx context.Context, series *model.Series, t *model.Tournament, playerID string, entry RankingEntry, points int) error {
	calc, hasCredits := s.calculator.(*scoring.TableCalculator)

	tp := &model.TournamentPlayer{
		TournamentID:  t.ID,
		PlayerID:      playerID,
		FinalPosition: entry.Position,
		Points:        points,
	}
	if hasCredits {
		tp.BountyPoints = calc.BountyCredit(entry.Bounties)
		if entry.Consolation {
			tp.ConsolationPoints = calc.ConsolationCredit()
		}
	}
	if err := s.store.CreateTournamentPlayer(ctx, tp); err != nil {
		return err
	}
	metrics.RecordPlayerScored()

	if err := s.foldScoreboard(ctx, series, playerID, entry.Position, points); err != nil {
		return err
	}

	if entry.Position <= 3 {
		qt := model.QualificationTopThree
		if entry.Position == 1 {
			qt = model.QualificationWinner
		}
		q := &model.Qualification{
			SeasonID:     series.SeasonID,
			LeagueID:     series.LeagueID,
			PlayerID:     playerID,
			TournamentID: t.ID,
			Type:         qt,
			IsActive:     true,
		}
		if err := s.store.CreateQualification(ctx, q); err != nil {
			return err
		}
		metrics.RecordQualificationIssued()
	}
	return nil
}

// foldScoreboard upserts the (series, player) scoreboard with one result.
// Bounty and consolation credits never feed the total; only placement points
// do.
func (s *Service) foldScoreboard(ctx context.Context, series *model.Series, playerID string, position, points int) error {
	sb, err := s.store.GetScoreboardBySeriesPlayer(ctx, series.ID, playerID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		sb = &model.Scoreboard{
			SeriesID: series.ID,
			SeasonID: series.SeasonID,
			LeagueID: series.LeagueID,
			PlayerID: playerID,
		}
		if err := s.store.CreateScoreboard(ctx, sb); err != nil {
			return err
		}
	default:
		return err
	}

	sb.TotalPoints += points
	sb.TournamentCount++
	sb.PositionSum += position
	if sb.BestFinish == 0 || position < sb.BestFinish {
		sb.BestFinish = position
	}
	if position == 1 {
		sb.WinCount++
	}
	if position <= 3 {
		sb.TopThreeCount++
	}
	sb.LastUpdated = time.Now().UTC()

	if err := s.store.UpdateScoreboard(ctx, sb); err != nil {
		return err
	}
	metrics.RecordScoreboardUpdate()
	return nil
}

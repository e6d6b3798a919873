package service

import (
	"context"
	"time"

	"github.com/cardroom/standings/internal/domain/model"
	"github.com/cardroom/standings/internal/domain/qualification"
	"github.com/cardroom/standings/internal/domain/scoring"
	"github.com/cardroom/standings/internal/domain/types"
	"github.com/cardroom/standings/pkg/logger"
	"github.com/cardroom/standings/pkg/metrics"
)

// QualifiedPlayers returns the season's finale seat allocation: one entry per
// qualified player with their chip stack, sorted by chips descending. A
// non-empty nameFilter narrows the list by case-insensitive substring match.
func (s *Service) QualifiedPlayers(ctx context.Context, seasonID, nameFilter string) ([]types.QualifiedPlayer, error) {
	if _, err := s.store.GetSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	quals, err := s.store.ListQualificationsBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	seasons, err := s.playerSeasons(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return s.ranker.Rank(quals, seasons, nameFilter), nil
}

// QualificationStatus summarizes the season's finale roster against the cap.
func (s *Service) QualificationStatus(ctx context.Context, seasonID string) (*types.QualificationStatus, error) {
	if _, err := s.store.GetSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	quals, err := s.store.ListQualificationsBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	status := s.ranker.Status(quals)
	return &status, nil
}

// FinaleRanking is one player's finishing position in a season finale.
type FinaleRanking struct {
	PlayerID string `json:"player_id"`
	Position int    `json:"position"`
}

// FinaleRequest records the outcome of a season-finale event.
type FinaleRequest struct {
	SeasonID  string          `json:"season_id"`
	EventName string          `json:"event_name"`
	EventDate time.Time       `json:"event_date"`
	Rankings  []FinaleRanking `json:"rankings"`
}

// RecordSeasonFinale records a finale tournament under the reserved finale
// series marker. Finale results award no points and never touch scoreboards;
// each podium rank carries a payout from the prize table. Submissions for the
// same season are serialized; a store failure after the tournament exists
// surfaces as a PartialWriteError.
func (s *Service) RecordSeasonFinale(ctx context.Context, req FinaleRequest) (*model.Tournament, error) {
	if len(req.Rankings) == 0 {
		return nil, invalidf("no rankings submitted")
	}

	unlock := s.lock("finale/" + req.SeasonID)
	defer unlock()

	season, err := s.store.GetSeason(ctx, req.SeasonID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]string, len(req.Rankings))
	for _, r := range req.Rankings {
		if r.Position < 1 {
			return nil, invalidf("player %s has position %d", r.PlayerID, r.Position)
		}
		if other, dup := seen[r.Position]; dup {
			return nil, invalidf("players %s and %s both at position %d", other, r.PlayerID, r.Position)
		}
		seen[r.Position] = r.PlayerID
		if _, err := s.store.GetPlayer(ctx, r.PlayerID); err != nil {
			return nil, err
		}
	}

	tournament := &model.Tournament{
		SeriesID:     model.FinaleSeriesID,
		SeasonID:     season.ID,
		LeagueID:     season.LeagueID,
		Status:       model.TournamentCompleted,
		Date:         req.EventDate,
		TotalPlayers: len(req.Rankings),
		Notes:        req.EventName,
	}
	if err := s.store.CreateTournament(ctx, tournament); err != nil {
		return nil, err
	}

	for _, r := range req.Rankings {
		tp := &model.TournamentPlayer{
			TournamentID:  tournament.ID,
			PlayerID:      r.PlayerID,
			FinalPosition: r.Position,
			Points:        0,
			Payout:        scoring.FinalePrize(r.Position),
		}
		if err := s.store.CreateTournamentPlayer(ctx, tp); err != nil {
			metrics.RecordPartialWrite()
			return nil, &PartialWriteError{TournamentID: tournament.ID, Err: err}
		}
	}

	metrics.RecordFinaleRecorded()
	s.logger.Info(ctx, "season finale recorded",
		logger.String("tournamentID", tournament.ID),
		logger.String("seasonID", season.ID),
		logger.Int("players", len(req.Rankings)),
	)
	return tournament, nil
}

// playerSeasons aggregates each player's season-wide scoreboard state for the
// chip formula.
func (s *Service) playerSeasons(ctx context.Context, seasonID string) (map[string]qualification.PlayerSeason, error) {
	boards, err := s.store.ListScoreboardsBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]qualification.PlayerSeason)
	for _, sb := range boards {
		ps := out[sb.PlayerID]
		ps.PlayerID = sb.PlayerID
		ps.Points += sb.TotalPoints
		ps.TournamentCount += sb.TournamentCount
		out[sb.PlayerID] = ps
	}
	for playerID, ps := range out {
		if p, err := s.store.GetPlayer(ctx, playerID); err == nil {
			ps.Name = p.Name
			out[playerID] = ps
		}
	}
	return out, nil
}

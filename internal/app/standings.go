package service

import (
	"context"
	"sort"

	"github.com/cardroom/standings/internal/domain/types"
)

// pointBreakdown splits a player's accumulated points by source.
type pointBreakdown struct {
	regular     int
	bounty      int
	consolation int
}

// SeriesStandings returns the standings table of one series, each row joined
// with the player name and a point-source breakdown re-derived from the
// series' tournament records. Rows sort by total points descending; equal
// totals keep their scoreboard order.
func (s *Service) SeriesStandings(ctx context.Context, seriesID string) (*types.SeriesStandings, error) {
	series, err := s.store.GetSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	season, err := s.store.GetSeason(ctx, series.SeasonID)
	if err != nil {
		return nil, err
	}
	league, err := s.store.GetLeague(ctx, series.LeagueID)
	if err != nil {
		return nil, err
	}

	boards, err := s.store.ListScoreboardsBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	breakdowns, err := s.seriesBreakdowns(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	rows := make([]types.StandingRow, 0, len(boards))
	for _, sb := range boards {
		name := ""
		if p, err := s.store.GetPlayer(ctx, sb.PlayerID); err == nil {
			name = p.Name
		}
		bd := breakdowns[sb.PlayerID]
		rows = append(rows, types.StandingRow{
			PlayerID:          sb.PlayerID,
			PlayerName:        name,
			TotalPoints:       sb.TotalPoints,
			RegularPoints:     bd.regular,
			BountyPoints:      bd.bounty,
			ConsolationPoints: bd.consolation,
			TournamentCount:   sb.TournamentCount,
			BestFinish:        sb.BestFinish,
			AverageFinish:     sb.AverageFinish(),
			WinCount:          sb.WinCount,
			TopThreeCount:     sb.TopThreeCount,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPoints > rows[j].TotalPoints
	})

	return &types.SeriesStandings{
		SeriesID:   series.ID,
		SeriesName: series.Name,
		SeasonID:   season.ID,
		SeasonName: season.Name,
		LeagueID:   league.ID,
		LeagueName: league.Name,
		Standings:  rows,
	}, nil
}

// SeasonStandings returns every season's standings grouped per series.
func (s *Service) SeasonStandings(ctx context.Context) ([]types.SeasonStandings, error) {
	seasons, err := s.store.ListSeasons(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]types.SeasonStandings, 0, len(seasons))
	for _, season := range seasons {
		leagueName := ""
		if league, err := s.store.GetLeague(ctx, season.LeagueID); err == nil {
			leagueName = league.Name
		}

		seriesList, err := s.store.ListSeriesBySeason(ctx, season.ID)
		if err != nil {
			return nil, err
		}
		grouped := make([]types.SeriesStandings, 0, len(seriesList))
		for _, sr := range seriesList {
			standings, err := s.SeriesStandings(ctx, sr.ID)
			if err != nil {
				return nil, err
			}
			grouped = append(grouped, *standings)
		}

		out = append(out, types.SeasonStandings{
			SeasonID:   season.ID,
			SeasonName: season.Name,
			LeagueID:   season.LeagueID,
			LeagueName: leagueName,
			Series:     grouped,
		})
	}
	return out, nil
}

// PlayerProfile returns a player's lifetime line across every series they
// hold a scoreboard in. BestFinish stays zero when the player has never been
// ranked.
func (s *Service) PlayerProfile(ctx context.Context, playerID string) (*types.PlayerProfile, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	boards, err := s.store.ListScoreboardsByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	profile := &types.PlayerProfile{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Series:     make([]types.SeriesTotals, 0, len(boards)),
	}
	for _, sb := range boards {
		seriesName := ""
		if sr, err := s.store.GetSeries(ctx, sb.SeriesID); err == nil {
			seriesName = sr.Name
		}
		profile.TotalPoints += sb.TotalPoints
		profile.TournamentCount += sb.TournamentCount
		profile.WinCount += sb.WinCount
		profile.TopThreeCount += sb.TopThreeCount
		if sb.BestFinish > 0 && (profile.BestFinish == 0 || sb.BestFinish < profile.BestFinish) {
			profile.BestFinish = sb.BestFinish
		}
		profile.Series = append(profile.Series, types.SeriesTotals{
			SeriesID:        sb.SeriesID,
			SeriesName:      seriesName,
			TotalPoints:     sb.TotalPoints,
			TournamentCount: sb.TournamentCount,
			BestFinish:      sb.BestFinish,
		})
	}
	return profile, nil
}

// seriesBreakdowns sums each player's points by source over every tournament
// of a series. Structured bounty and consolation credit lives outside the
// placement total, so regular points are just the recorded points.
func (s *Service) seriesBreakdowns(ctx context.Context, seriesID string) (map[string]pointBreakdown, error) {
	tournaments, err := s.store.ListTournamentsBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(tournaments))
	for i, t := range tournaments {
		ids[i] = t.ID
	}

	results, err := s.store.ListTournamentPlayersByTournaments(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]pointBreakdown)
	for _, tp := range results {
		bd := out[tp.PlayerID]
		bd.regular += tp.Points
		bd.bounty += tp.BountyPoints
		bd.consolation += tp.ConsolationPoints
		out[tp.PlayerID] = bd
	}
	return out, nil
}

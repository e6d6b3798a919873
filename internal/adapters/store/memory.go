package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cardroom/standings/internal/domain/model"
	"github.com/cardroom/standings/pkg/metrics"
)

// Memory is a mutex-guarded in-memory Store. It is the default backend and
// the one the test suites run against.
type Memory struct {
	mu sync.RWMutex

	leagues           map[string]model.League
	seasons           map[string]model.Season
	series            map[string]model.Series
	players           map[string]model.Player
	tournaments       map[string]model.Tournament
	tournamentPlayers map[string]model.TournamentPlayer
	scoreboards       map[string]model.Scoreboard
	qualifications    map[string]model.Qualification

	// seq preserves insertion order across all kinds; ids are unique.
	seq     map[string]int64
	nextSeq int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		leagues:           make(map[string]model.League),
		seasons:           make(map[string]model.Season),
		series:            make(map[string]model.Series),
		players:           make(map[string]model.Player),
		tournaments:       make(map[string]model.Tournament),
		tournamentPlayers: make(map[string]model.TournamentPlayer),
		scoreboards:       make(map[string]model.Scoreboard),
		qualifications:    make(map[string]model.Qualification),
		seq:               make(map[string]int64),
	}
}

// Close implements Store; the in-memory backend has nothing to release.
func (m *Memory) Close() error {
	return nil
}

// assign registers an id in the insertion sequence, generating one if empty.
// Must be called with m.mu held.
func (m *Memory) assign(id string) string {
	if id == "" {
		id = uuid.NewString()
	}
	m.nextSeq++
	m.seq[id] = m.nextSeq
	return id
}

func (m *Memory) sortByInsertion(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return m.seq[ids[i]] < m.seq[ids[j]]
	})
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func observeQuery(start time.Time) {
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
}

func observeUpdate(start time.Time) {
	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
}

// --- leagues ---

func (m *Memory) GetLeague(_ context.Context, id string) (*model.League, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leagues[id]
	if !ok {
		return nil, notFound("league", id)
	}
	return &l, nil
}

func (m *Memory) ListLeagues(_ context.Context) ([]model.League, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.leagues))
	for id := range m.leagues {
		ids = append(ids, id)
	}
	m.sortByInsertion(ids)
	out := make([]model.League, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.leagues[id])
	}
	return out, nil
}

func (m *Memory) CreateLeague(_ context.Context, l *model.League) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = m.assign(l.ID)
	m.leagues[l.ID] = *l
	return nil
}

func (m *Memory) UpdateLeague(_ context.Context, l *model.League) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leagues[l.ID]; !ok {
		return notFound("league", l.ID)
	}
	m.leagues[l.ID] = *l
	return nil
}

func (m *Memory) DeleteLeague(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leagues[id]; !ok {
		return notFound("league", id)
	}
	delete(m.leagues, id)
	return nil
}

// --- seasons ---

func (m *Memory) GetSeason(_ context.Context, id string) (*model.Season, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.seasons[id]
	if !ok {
		return nil, notFound("season", id)
	}
	return &s, nil
}

func (m *Memory) ListSeasons(_ context.Context) ([]model.Season, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listSeasonsLocked(func(model.Season) bool { return true }), nil
}

func (m *Memory) ListSeasonsByLeague(_ context.Context, leagueID string) ([]model.Season, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listSeasonsLocked(func(s model.Season) bool { return s.LeagueID == leagueID }), nil
}

func (m *Memory) listSeasonsLocked(keep func(model.Season) bool) []model.Season {
	ids := make([]string, 0, len(m.seasons))
	for id, s := range m.seasons {
		if keep(s) {
			ids = append(ids, id)
		}
	}
	m.sortByInsertion(ids)
	out := make([]model.Season, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.seasons[id])
	}
	return out
}

func (m *Memory) CreateSeason(_ context.Context, s *model.Season) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.assign(s.ID)
	m.seasons[s.ID] = *s
	return nil
}

func (m *Memory) UpdateSeason(_ context.Context, s *model.Season) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seasons[s.ID]; !ok {
		return notFound("season", s.ID)
	}
	m.seasons[s.ID] = *s
	return nil
}

func (m *Memory) DeleteSeason(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seasons[id]; !ok {
		return notFound("season", id)
	}
	delete(m.seasons, id)
	return nil
}

// --- series ---

func (m *Memory) GetSeries(_ context.Context, id string) (*model.Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.series[id]
	if !ok {
		return nil, notFound("series", id)
	}
	return &s, nil
}

func (m *Memory) ListSeriesBySeason(_ context.Context, seasonID string) ([]model.Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.series))
	for id, s := range m.series {
		if s.SeasonID == seasonID {
			ids = append(ids, id)
		}
	}
	m.sortByInsertion(ids)
	out := make([]model.Series, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.series[id])
	}
	return out, nil
}

func (m *Memory) CreateSeries(_ context.Context, s *model.Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.assign(s.ID)
	m.series[s.ID] = *s
	return nil
}

func (m *Memory) UpdateSeries(_ context.Context, s *model.Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.series[s.ID]; !ok {
		return notFound("series", s.ID)
	}
	m.series[s.ID] = *s
	return nil
}

// DeleteSeries removes a series and cascades its scoreboards.
func (m *Memory) DeleteSeries(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.series[id]; !ok {
		return notFound("series", id)
	}
	delete(m.series, id)
	for sbID, sb := range m.scoreboards {
		if sb.SeriesID == id {
			delete(m.scoreboards, sbID)
		}
	}
	return nil
}

// --- players ---

func (m *Memory) GetPlayer(_ context.Context, id string) (*model.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return nil, notFound("player", id)
	}
	return &p, nil
}

func (m *Memory) ListPlayers(_ context.Context) ([]model.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.players))
	for id := range m.players {
		ids = append(ids, id)
	}
	m.sortByInsertion(ids)
	out := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.players[id])
	}
	return out, nil
}

func (m *Memory) CreatePlayer(_ context.Context, p *model.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.assign(p.ID)
	m.players[p.ID] = *p
	return nil
}

func (m *Memory) UpdatePlayer(_ context.Context, p *model.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[p.ID]; !ok {
		return notFound("player", p.ID)
	}
	m.players[p.ID] = *p
	return nil
}

func (m *Memory) DeletePlayer(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[id]; !ok {
		return notFound("player", id)
	}
	delete(m.players, id)
	return nil
}

// --- tournaments ---

func (m *Memory) GetTournament(_ context.Context, id string) (*model.Tournament, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tournaments[id]
	if !ok {
		return nil, notFound("tournament", id)
	}
	return &t, nil
}

func (m *Memory) ListTournamentsBySeries(_ context.Context, seriesID string) ([]model.Tournament, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listTournamentsLocked(func(t model.Tournament) bool { return t.SeriesID == seriesID }), nil
}

func (m *Memory) ListTournamentsBySeason(_ context.Context, seasonID string) ([]model.Tournament, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listTournamentsLocked(func(t model.Tournament) bool { return t.SeasonID == seasonID }), nil
}

func (m *Memory) listTournamentsLocked(keep func(model.Tournament) bool) []model.Tournament {
	ids := make([]string, 0, len(m.tournaments))
	for id, t := range m.tournaments {
		if keep(t) {
			ids = append(ids, id)
		}
	}
	m.sortByInsertion(ids)
	out := make([]model.Tournament, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.tournaments[id])
	}
	return out
}

func (m *Memory) CreateTournament(_ context.Context, t *model.Tournament) error {
	defer observeUpdate(time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.assign(t.ID)
	m.tournaments[t.ID] = *t
	return nil
}

func (m *Memory) UpdateTournament(_ context.Context, t *model.Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tournaments[t.ID]; !ok {
		return notFound("tournament", t.ID)
	}
	m.tournaments[t.ID] = *t
	return nil
}

func (m *Memory) DeleteTournament(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tournaments[id]; !ok {
		return notFound("tournament", id)
	}
	delete(m.tournaments, id)
	for tpID, tp := range m.tournamentPlayers {
		if tp.TournamentID == id {
			delete(m.tournamentPlayers, tpID)
		}
	}
	return nil
}

// --- tournament players ---

func (m *Memory) CreateTournamentPlayer(_ context.Context, tp *model.TournamentPlayer) error {
	defer observeUpdate(time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	tp.ID = m.assign(tp.ID)
	m.tournamentPlayers[tp.ID] = *tp
	return nil
}

func (m *Memory) ListTournamentPlayersByTournament(_ context.Context, tournamentID string) ([]model.TournamentPlayer, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listTournamentPlayersLocked(func(tp model.TournamentPlayer) bool {
		return tp.TournamentID == tournamentID
	}), nil
}

func (m *Memory) ListTournamentPlayersByTournaments(_ context.Context, tournamentIDs []string) ([]model.TournamentPlayer, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[string]struct{}, len(tournamentIDs))
	for _, id := range tournamentIDs {
		wanted[id] = struct{}{}
	}
	return m.listTournamentPlayersLocked(func(tp model.TournamentPlayer) bool {
		_, ok := wanted[tp.TournamentID]
		return ok
	}), nil
}

func (m *Memory) ListTournamentPlayersByPlayer(_ context.Context, playerID string) ([]model.TournamentPlayer, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listTournamentPlayersLocked(func(tp model.TournamentPlayer) bool {
		return tp.PlayerID == playerID
	}), nil
}

func (m *Memory) listTournamentPlayersLocked(keep func(model.TournamentPlayer) bool) []model.TournamentPlayer {
	ids := make([]string, 0, len(m.tournamentPlayers))
	for id, tp := range m.tournamentPlayers {
		if keep(tp) {
			ids = append(ids, id)
		}
	}
	m.sortByInsertion(ids)
	out := make([]model.TournamentPlayer, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.tournamentPlayers[id])
	}
	return out
}

// --- scoreboards ---

func (m *Memory) GetScoreboard(_ context.Context, id string) (*model.Scoreboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sb, ok := m.scoreboards[id]
	if !ok {
		return nil, notFound("scoreboard", id)
	}
	return &sb, nil
}

func (m *Memory) GetScoreboardBySeriesPlayer(_ context.Context, seriesID, playerID string) (*model.Scoreboard, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sb := range m.scoreboards {
		if sb.SeriesID == seriesID && sb.PlayerID == playerID {
			out := sb
			return &out, nil
		}
	}
	return nil, notFound("scoreboard", seriesID+"/"+playerID)
}

func (m *Memory) ListScoreboardsBySeries(_ context.Context, seriesID string) ([]model.Scoreboard, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listScoreboardsLocked(func(sb model.Scoreboard) bool { return sb.SeriesID == seriesID }), nil
}

func (m *Memory) ListScoreboardsBySeason(_ context.Context, seasonID string) ([]model.Scoreboard, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listScoreboardsLocked(func(sb model.Scoreboard) bool { return sb.SeasonID == seasonID }), nil
}

func (m *Memory) ListScoreboardsByPlayer(_ context.Context, playerID string) ([]model.Scoreboard, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listScoreboardsLocked(func(sb model.Scoreboard) bool { return sb.PlayerID == playerID }), nil
}

func (m *Memory) listScoreboardsLocked(keep func(model.Scoreboard) bool) []model.Scoreboard {
	ids := make([]string, 0, len(m.scoreboards))
	for id, sb := range m.scoreboards {
		if keep(sb) {
			ids = append(ids, id)
		}
	}
	m.sortByInsertion(ids)
	out := make([]model.Scoreboard, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.scoreboards[id])
	}
	return out
}

func (m *Memory) CreateScoreboard(_ context.Context, sb *model.Scoreboard) error {
	defer observeUpdate(time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	sb.ID = m.assign(sb.ID)
	m.scoreboards[sb.ID] = *sb
	return nil
}

func (m *Memory) UpdateScoreboard(_ context.Context, sb *model.Scoreboard) error {
	defer observeUpdate(time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scoreboards[sb.ID]; !ok {
		return notFound("scoreboard", sb.ID)
	}
	m.scoreboards[sb.ID] = *sb
	return nil
}

// --- qualifications ---

func (m *Memory) CreateQualification(_ context.Context, q *model.Qualification) error {
	defer observeUpdate(time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = m.assign(q.ID)
	m.qualifications[q.ID] = *q
	return nil
}

func (m *Memory) ListQualificationsBySeason(_ context.Context, seasonID string) ([]model.Qualification, error) {
	defer observeQuery(time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.qualifications))
	for id, q := range m.qualifications {
		if q.SeasonID == seasonID {
			ids = append(ids, id)
		}
	}
	m.sortByInsertion(ids)
	out := make([]model.Qualification, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.qualifications[id])
	}
	return out, nil
}

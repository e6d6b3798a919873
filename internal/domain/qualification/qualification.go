// Package qualification derives season-finale eligibility, seating priority,
// and roster status from qualification records and season point totals.
package qualification

import (
	"sort"
	"strings"

	"github.com/cardroom/standings/internal/domain/model"
	"github.com/cardroom/standings/internal/domain/types"
)

// Default chip and roster configuration constants.
const (
	defaultBaseChips     = 10000
	defaultWinnerBonus   = 15000
	defaultTopThreeBonus = 5000
	defaultChipsPerPoint = 100
	defaultMaxPlayers    = 32
)

// PlayerSeason aggregates one player's season-wide scoreboard state.
type PlayerSeason struct {
	PlayerID        string
	Name            string
	Points          int
	TournamentCount int
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithBaseChips sets the starting stack every qualified player receives.
func WithBaseChips(chips int) Option {
	return func(r *Ranker) {
		if chips > 0 {
			r.baseChips = chips
		}
	}
}

// WithWinnerBonus sets the chip bonus for a tournament winner.
func WithWinnerBonus(chips int) Option {
	return func(r *Ranker) {
		if chips > 0 {
			r.winnerBonus = chips
		}
	}
}

// WithTopThreeBonus sets the chip bonus for a top-three qualifier.
func WithTopThreeBonus(chips int) Option {
	return func(r *Ranker) {
		if chips > 0 {
			r.topThreeBonus = chips
		}
	}
}

// WithChipsPerPoint sets the chips granted per season point.
func WithChipsPerPoint(chips int) Option {
	return func(r *Ranker) {
		if chips > 0 {
			r.chipsPerPoint = chips
		}
	}
}

// WithMaxPlayers caps the finale roster size.
func WithMaxPlayers(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.maxPlayers = n
		}
	}
}

// Ranker converts qualification records into finale seat allocations.
type Ranker struct {
	baseChips     int
	winnerBonus   int
	topThreeBonus int
	chipsPerPoint int
	maxPlayers    int
}

// NewRanker creates a Ranker with configuration options.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		baseChips:     defaultBaseChips,
		winnerBonus:   defaultWinnerBonus,
		topThreeBonus: defaultTopThreeBonus,
		chipsPerPoint: defaultChipsPerPoint,
		maxPlayers:    defaultMaxPlayers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxPlayers returns the configured finale roster cap.
func (r *Ranker) MaxPlayers() int {
	return r.maxPlayers
}

// Chips computes a player's finale stack from their best qualification type
// and season-wide point total.
func (r *Ranker) Chips(qt model.QualificationType, seasonPoints int) int {
	chips := r.baseChips + seasonPoints*r.chipsPerPoint
	switch qt {
	case model.QualificationWinner:
		chips += r.winnerBonus
	case model.QualificationTopThree:
		chips += r.topThreeBonus
	}
	return chips
}

// Rank produces one entry per qualified player, keeping the qualification
// yielding the highest stack (the winner bonus strictly dominates), sorted
// by chips descending with name as the deterministic tie-breaker. A
// non-empty nameFilter narrows the set by case-insensitive substring match.
func (r *Ranker) Rank(quals []model.Qualification, seasons map[string]PlayerSeason, nameFilter string) []types.QualifiedPlayer {
	best := make(map[string]model.QualificationType)
	for _, q := range quals {
		if !q.IsActive {
			continue
		}
		cur, ok := best[q.PlayerID]
		if !ok || (cur != model.QualificationWinner && q.Type == model.QualificationWinner) {
			best[q.PlayerID] = q.Type
		}
	}

	filter := strings.ToLower(strings.TrimSpace(nameFilter))
	out := make([]types.QualifiedPlayer, 0, len(best))
	for playerID, qt := range best {
		season := seasons[playerID]
		name := season.Name
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		out = append(out, types.QualifiedPlayer{
			PlayerID:        playerID,
			PlayerName:      name,
			TournamentCount: season.TournamentCount,
			TotalChips:      r.Chips(qt, season.Points),
			Type:            qt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalChips != out[j].TotalChips {
			return out[i].TotalChips > out[j].TotalChips
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return out
}

// Status summarizes the season's roster: distinct qualified players against
// the cap, plus raw counts of each qualification record type.
func (r *Ranker) Status(quals []model.Qualification) types.QualificationStatus {
	players := make(map[string]struct{})
	var winners, topThree int
	for _, q := range quals {
		if !q.IsActive {
			continue
		}
		players[q.PlayerID] = struct{}{}
		switch q.Type {
		case model.QualificationWinner:
			winners++
		case model.QualificationTopThree:
			topThree++
		}
	}

	remaining := r.maxPlayers - len(players)
	if remaining < 0 {
		remaining = 0
	}
	return types.QualificationStatus{
		TotalQualified:    len(players),
		MaxPlayers:        r.maxPlayers,
		TournamentWinners: winners,
		TopQualifiers:     topThree,
		RemainingSpots:    remaining,
	}
}

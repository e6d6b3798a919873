// Package scoring computes point awards from a tournament's finishing order.
package scoring

import (
	"fmt"
)

// Default scoring configuration constants.
const (
	paidPlaces              = 10
	pointsBase              = 11
	defaultBountyValue      = 25
	defaultConsolationValue = 25
)

// GameType selects the points table used for a result set.
type GameType string

const (
	GameTournament  GameType = "tournament"
	GameConsolation GameType = "consolation"
)

// consolationPoints is the fixed table for consolation events.
var consolationPoints = map[int]int{
	1: 100,
	2: 50,
	3: 25,
}

// finalePrizes is the fixed payout table for season finales.
var finalePrizes = map[int]int{
	1: 1200,
	2: 800,
	3: 500,
	4: 300,
	5: 200,
}

// RankedPlayer pairs a player with their 1-based finishing rank.
type RankedPlayer struct {
	PlayerID string
	Rank     int
}

// Calculator converts a finishing order into points per player.
type Calculator interface {
	// Score returns points keyed by player id. It fails only on malformed
	// input: rank < 1, duplicate ranks, or more ranked entries than
	// totalPlayers.
	Score(gameType GameType, totalPlayers int, ranked []RankedPlayer) (map[string]int, error)
}

// Option applies a configuration option to the TableCalculator.
type Option func(*TableCalculator)

// WithBountyValue sets the points credited per bounty.
func WithBountyValue(v int) Option {
	return func(c *TableCalculator) {
		if v > 0 {
			c.bountyValue = v
		}
	}
}

// WithConsolationValue sets the points credited for a consolation appearance.
func WithConsolationValue(v int) Option {
	return func(c *TableCalculator) {
		if v > 0 {
			c.consolationValue = v
		}
	}
}

// TableCalculator implements Calculator with the league's fixed tables.
type TableCalculator struct {
	bountyValue      int
	consolationValue int
}

// NewTableCalculator creates a calculator with configuration options.
func NewTableCalculator(opts ...Option) *TableCalculator {
	c := &TableCalculator{
		bountyValue:      defaultBountyValue,
		consolationValue: defaultConsolationValue,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Score computes points for every ranked player.
func (c *TableCalculator) Score(gameType GameType, totalPlayers int, ranked []RankedPlayer) (map[string]int, error) {
	if totalPlayers < len(ranked) {
		return nil, fmt.Errorf("%w: %d ranked entries but only %d total players", ErrTooManyRanked, len(ranked), totalPlayers)
	}

	seen := make(map[int]string, len(ranked))
	points := make(map[string]int, len(ranked))
	for _, rp := range ranked {
		if rp.Rank < 1 {
			return nil, fmt.Errorf("%w: player %s has rank %d", ErrInvalidRank, rp.PlayerID, rp.Rank)
		}
		if other, dup := seen[rp.Rank]; dup {
			return nil, fmt.Errorf("%w: players %s and %s both at rank %d", ErrDuplicateRank, other, rp.PlayerID, rp.Rank)
		}
		seen[rp.Rank] = rp.PlayerID

		switch gameType {
		case GameTournament:
			points[rp.PlayerID] = tournamentPoints(totalPlayers, rp.Rank)
		case GameConsolation:
			points[rp.PlayerID] = consolationPoints[rp.Rank]
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownGameType, gameType)
		}
	}
	return points, nil
}

// BountyCredit returns the points recorded for count bounties.
func (c *TableCalculator) BountyCredit(count int) int {
	if count < 0 {
		return 0
	}
	return count * c.bountyValue
}

// ConsolationCredit returns the points recorded for a consolation appearance.
func (c *TableCalculator) ConsolationCredit() int {
	return c.consolationValue
}

// FinalePrize returns the payout for a finale finishing rank, zero outside
// the paid places.
func FinalePrize(rank int) int {
	return finalePrizes[rank]
}

// tournamentPoints awards totalPlayers * (11 - rank) inside the paid places.
func tournamentPoints(totalPlayers, rank int) int {
	if rank > paidPlaces {
		return 0
	}
	return totalPlayers * (pointsBase - rank)
}

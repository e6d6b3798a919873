package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrInvalidRank     = errors.New("invalid rank")
	ErrDuplicateRank   = errors.New("duplicate rank")
	ErrTooManyRanked   = errors.New("more ranked players than total players")
	ErrUnknownGameType = errors.New("unknown game type")
)

package service

import "fmt"

// ValidationError reports a malformed submission: bad ranks, an unresolvable
// player reference, or a player count smaller than the ranked entries.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + e.Reason
}

// invalidf builds a ValidationError from a format string.
func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PartialWriteError reports a store failure partway through applying a
// submission. The tournament record already exists; some per-player writes do
// not. There is no rollback; the id lets an operator inspect what landed.
type PartialWriteError struct {
	TournamentID string
	Err          error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write for tournament %s: %v", e.TournamentID, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

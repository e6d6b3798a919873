// Package dedupe tracks processed submission ids for idempotent retries.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Index remembers which submission ids have already been applied and the
// tournament each one produced, so a retried submission returns the original
// tournament instead of double-applying its scoreboard updates.
type Index interface {
	// Lookup returns the tournament id recorded for a submission, if any.
	Lookup(ctx context.Context, submissionID string) (tournamentID string, seen bool)

	// Record stores the outcome of a submission. The id is recorded as soon
	// as the tournament exists, so a retry after a partial failure returns
	// that tournament rather than folding the batch twice.
	Record(ctx context.Context, submissionID, tournamentID string)

	Size() int64
}

// inMemoryIndex implements Index with a bounded map. When the bound is
// reached the oldest recorded submission is evicted first.
type inMemoryIndex struct {
	mu      sync.RWMutex
	entries map[string]string
	order   []string
	maxSize int
	size    atomic.Int64
}

// Option applies a configuration option to the in-memory index.
type Option func(*inMemoryIndex)

// WithMaxSize bounds the number of submission ids kept in memory.
// A non-positive value keeps the index unbounded.
func WithMaxSize(maxSize int) Option {
	return func(i *inMemoryIndex) {
		i.maxSize = maxSize
	}
}

const defaultMaxSize = 50000

// NewInMemoryIndex creates a new in-memory submission index.
func NewInMemoryIndex(opts ...Option) Index {
	i := &inMemoryIndex{
		entries: make(map[string]string),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *inMemoryIndex) Lookup(_ context.Context, submissionID string) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	tournamentID, seen := i.entries[submissionID]
	return tournamentID, seen
}

func (i *inMemoryIndex) Record(_ context.Context, submissionID, tournamentID string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, exists := i.entries[submissionID]; exists {
		i.entries[submissionID] = tournamentID
		return
	}

	if i.maxSize > 0 && len(i.entries) >= i.maxSize {
		oldest := i.order[0]
		i.order = i.order[1:]
		delete(i.entries, oldest)
		i.size.Add(-1)
	}

	i.entries[submissionID] = tournamentID
	i.order = append(i.order, submissionID)
	i.size.Add(1)
}

func (i *inMemoryIndex) Size() int64 {
	return i.size.Load()
}

// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/cardroom/standings/internal/adapters/store"
	"github.com/cardroom/standings/internal/domain/dedupe"
	"github.com/cardroom/standings/internal/domain/qualification"
	"github.com/cardroom/standings/internal/domain/scoring"
	"github.com/cardroom/standings/internal/domain/types"
	"github.com/cardroom/standings/pkg/logger"
	"github.com/cardroom/standings/pkg/metrics"
)

// Notifier receives the fresh standings of a series after a submission has
// been applied to it.
type Notifier interface {
	StandingsUpdated(ctx context.Context, standings types.SeriesStandings)
}

// Service implements the standings engine consumed by the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      store.Store
	calculator scoring.Calculator
	ranker     *qualification.Ranker
	submitted  dedupe.Index
	notifier   Notifier

	// Per-series submission locks; finale submissions lock per season.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	// Configuration
	dedupeSize int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the entity store backing the service.
func WithStore(st store.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithCalculator sets the point calculator.
func WithCalculator(c scoring.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calculator = c
		}
	}
}

// WithRanker sets the finale qualification ranker.
func WithRanker(r *qualification.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithSubmissionIndex sets the idempotency index for tournament submissions.
func WithSubmissionIndex(idx dedupe.Index) Option {
	return func(s *Service) {
		if idx != nil {
			s.submitted = idx
		}
	}
}

// WithDedupeSize sets the size of the submission idempotency index.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithNotifier sets the live-standings notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize: 50000,
		locks:      make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components that were not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = store.NewMemory()
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.calculator == nil {
		s.calculator = scoring.NewTableCalculator()
	}
	if s.ranker == nil {
		s.ranker = qualification.NewRanker()
	}
	if s.submitted == nil {
		s.submitted = dedupe.NewInMemoryIndex(
			dedupe.WithMaxSize(s.dedupeSize),
		)
	}

	s.started = true
	s.logger.Info(ctx, "standings service started",
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping standings service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(ctx, "closing store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "standings service stopped")
}

// lock acquires the submission lock for a series (or, for finales, a season)
// and returns its release function.
func (s *Service) lock(key string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// notifyStandings pushes the fresh standings of a series to the notifier.
func (s *Service) notifyStandings(ctx context.Context, seriesID string) {
	if s.notifier == nil {
		return
	}
	standings, err := s.SeriesStandings(ctx, seriesID)
	if err != nil {
		s.logger.Warn(ctx, "standings refresh for broadcast failed",
			logger.String("seriesID", seriesID),
			logger.Error(err),
		)
		return
	}
	s.notifier.StandingsUpdated(ctx, *standings)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":    s.started,
		"dedupeSize": s.dedupeSize,
	}
	if !s.started {
		return stats
	}

	if players, err := s.store.ListPlayers(ctx); err == nil {
		stats["totalPlayers"] = len(players)
		metrics.UpdateTotalPlayers(len(players))
	}
	if leagues, err := s.store.ListLeagues(ctx); err == nil {
		stats["totalLeagues"] = len(leagues)
	}

	var scoreboards, tournaments int
	if seasons, err := s.store.ListSeasons(ctx); err == nil {
		stats["totalSeasons"] = len(seasons)
		for _, season := range seasons {
			if boards, err := s.store.ListScoreboardsBySeason(ctx, season.ID); err == nil {
				scoreboards += len(boards)
			}
			if ts, err := s.store.ListTournamentsBySeason(ctx, season.ID); err == nil {
				tournaments += len(ts)
			}
		}
	}
	stats["totalScoreboards"] = scoreboards
	stats["totalTournaments"] = tournaments
	metrics.UpdateTotalScoreboards(scoreboards)
	metrics.UpdateTotalTournaments(tournaments)

	stats["submissionIndexSize"] = s.Size()
	return stats
}

// Size returns the current number of entries in the submission index.
func (s *Service) Size() int64 {
	if s.submitted == nil {
		return 0
	}
	return s.submitted.Size()
}

// Store exposes the underlying entity store for CRUD passthrough handlers.
func (s *Service) Store() store.Store {
	return s.store
}

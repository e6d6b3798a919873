package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/cardroom/standings/internal/seed"
	"github.com/cardroom/standings/pkg/logger"
)

// Default configuration constants.
const (
	defaultPlayers     = 12
	defaultTournaments = 6
	defaultTimeout     = 10 * time.Second
	defaultRunTimeout  = 2 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		players     = flag.Int("players", defaultPlayers, "Number of demo players to create")
		tournaments = flag.Int("tournaments", defaultTournaments, "Number of tournaments to submit")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		randSeed    = flag.Uint64("seed", 0, "Random seed (0 picks a random one)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:     *baseURL,
		Players:     *players,
		Tournaments: *tournaments,
		Timeout:     *timeout,
		Seed:        *randSeed,
	}
	if err := seed.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "seeding failed", logger.Error(err))
		os.Exit(1)
	}
}

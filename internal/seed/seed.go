// Package seed populates a running standings service with demo league data
// through its HTTP API, exercising the same code paths real submissions do.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/cardroom/standings/internal/domain/model"
	"github.com/cardroom/standings/internal/domain/types"
	"github.com/cardroom/standings/pkg/logger"
)

// Config controls what the seeder generates.
type Config struct {
	BaseURL     string
	Players     int
	Tournaments int
	Timeout     time.Duration
	Seed        uint64
}

// Run creates a demo league, submits randomized tournament results, and
// prints the resulting standings.
func Run(ctx context.Context, cfg *Config) error {
	faker := gofakeit.New(int64(cfg.Seed))
	rng := rand.New(rand.NewSource(int64(cfg.Seed)))
	client := &client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	log := logger.Get()

	log.Info(ctx, "seeding demo league",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("players", cfg.Players),
		logger.Int("tournaments", cfg.Tournaments),
	)

	league := model.League{Name: faker.City() + " Poker League"}
	if err := client.post(ctx, "/leagues", &league, &league); err != nil {
		return fmt.Errorf("creating league: %w", err)
	}

	season := model.Season{
		LeagueID: league.ID,
		Name:     fmt.Sprintf("%d Season", time.Now().Year()),
		StartsAt: time.Now().UTC(),
		EndsAt:   time.Now().UTC().AddDate(0, 6, 0),
	}
	if err := client.post(ctx, "/seasons", &season, &season); err != nil {
		return fmt.Errorf("creating season: %w", err)
	}

	series := model.Series{
		SeasonID: season.ID,
		Name:     faker.AdjectiveDescriptive() + " Series",
	}
	if err := client.post(ctx, "/series", &series, &series); err != nil {
		return fmt.Errorf("creating series: %w", err)
	}

	names := make([]string, cfg.Players)
	for i := range names {
		names[i] = faker.Name()
	}

	for n := 0; n < cfg.Tournaments; n++ {
		if err := client.submitTournament(ctx, series.ID, names, n, rng); err != nil {
			return fmt.Errorf("submitting tournament %d: %w", n+1, err)
		}
	}

	var standings types.SeriesStandings
	if err := client.get(ctx, "/series/"+series.ID+"/standings", &standings); err != nil {
		return fmt.Errorf("fetching standings: %w", err)
	}
	printStandings(&standings)
	return nil
}

type client struct {
	baseURL string
	http    *http.Client
}

// submitTournament posts one randomized result batch. The first tournament
// registers every player through newPlayers; later ones reference them by
// name.
func (c *client) submitTournament(ctx context.Context, seriesID string, names []string, n int, rng *rand.Rand) error {
	order := rng.Perm(len(names))
	entrants := 4 + rng.Intn(len(names)-3)
	if entrants > len(order) {
		entrants = len(order)
	}

	req := map[string]any{
		"submission_id": fmt.Sprintf("seed-%d", n+1),
		"series_id":     seriesID,
		"date":          time.Now().UTC().AddDate(0, 0, -7*(n+1)).Format(time.RFC3339),
		"total_players": entrants,
	}
	if n == 0 {
		req["new_players"] = names
		req["total_players"] = len(names)
		entrants = len(names)
	}

	rankings := make([]map[string]any, 0, entrants)
	for pos := 1; pos <= entrants; pos++ {
		entry := map[string]any{
			"player_name": names[order[pos-1]],
			"position":    pos,
		}
		if rng.Intn(3) == 0 {
			entry["bounties"] = 1 + rng.Intn(3)
		}
		rankings = append(rankings, entry)
	}
	req["rankings"] = rankings

	return c.post(ctx, "/tournaments/results", req, nil)
}

func (c *client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s %s: %d %s", req.Method, req.URL.Path, resp.StatusCode, apiErr.Message)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printStandings(standings *types.SeriesStandings) {
	fmt.Printf("\n%s — %s (%s)\n", standings.LeagueName, standings.SeriesName, standings.SeasonName)
	fmt.Printf("%-4s %-24s %8s %6s %6s %5s\n", "#", "Player", "Points", "Best", "Avg", "Wins")
	for i, row := range standings.Standings {
		fmt.Printf("%-4d %-24s %8d %6d %6d %5d\n",
			i+1, row.PlayerName, row.TotalPoints, row.BestFinish, row.AverageFinish, row.WinCount)
	}
}

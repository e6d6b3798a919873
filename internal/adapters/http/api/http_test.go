package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/cardroom/standings/internal/adapters/http/api"
	"github.com/cardroom/standings/internal/adapters/store"
	service "github.com/cardroom/standings/internal/app"
	"github.com/cardroom/standings/internal/domain/model"
	"github.com/cardroom/standings/internal/domain/types"
	"github.com/cardroom/standings/pkg/logger"
)

type env struct {
	router *chi.Mux
	store  store.Store
	series model.Series
	season model.Season
}

func newEnv(t *testing.T) *env {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatalf("logger.Init() error = %v", err)
	}

	ctx := context.Background()
	st := store.NewMemory()
	svc := service.New(service.WithStore(st))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(svc.Stop)

	league := model.League{Name: "Riverside League"}
	if err := st.CreateLeague(ctx, &league); err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}
	season := model.Season{LeagueID: league.ID, Name: "2026"}
	if err := st.CreateSeason(ctx, &season); err != nil {
		t.Fatalf("CreateSeason: %v", err)
	}
	series := model.Series{SeasonID: season.ID, LeagueID: league.ID, Name: "Deepstack"}
	if err := st.CreateSeries(ctx, &series); err != nil {
		t.Fatalf("CreateSeries: %v", err)
	}

	router := chi.NewRouter()
	api.NewServer(svc, svc).Register(router)
	return &env{router: router, store: st, series: series, season: season}
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestTournamentEndpoints(t *testing.T) {
	Convey("Given a running API", t, func() {
		e := newEnv(t)

		submission := map[string]any{
			"series_id":     e.series.ID,
			"total_players": 8,
			"new_players":   []string{"Alice", "Bob", "Carol"},
			"rankings": []map[string]any{
				{"player_name": "Alice", "position": 1},
				{"player_name": "Bob", "position": 2},
				{"player_name": "Carol", "position": 3},
			},
		}

		Convey("POST /tournaments/results records a tournament", func() {
			rec := e.do(t, http.MethodPost, "/tournaments/results", submission)
			So(rec.Code, ShouldEqual, http.StatusCreated)

			var tournament model.Tournament
			So(json.Unmarshal(rec.Body.Bytes(), &tournament), ShouldBeNil)
			So(tournament.ID, ShouldNotBeEmpty)
			So(tournament.SeriesID, ShouldEqual, e.series.ID)

			Convey("GET /series/{id}/standings reflects it", func() {
				rec := e.do(t, http.MethodGet, "/series/"+e.series.ID+"/standings", nil)
				So(rec.Code, ShouldEqual, http.StatusOK)

				var standings types.SeriesStandings
				So(json.Unmarshal(rec.Body.Bytes(), &standings), ShouldBeNil)
				So(standings.Standings, ShouldHaveLength, 3)
				So(standings.Standings[0].PlayerName, ShouldEqual, "Alice")
				So(standings.Standings[0].TotalPoints, ShouldEqual, 80)
			})

			Convey("GET /standings/seasons groups by season", func() {
				rec := e.do(t, http.MethodGet, "/standings/seasons", nil)
				So(rec.Code, ShouldEqual, http.StatusOK)

				var seasons []types.SeasonStandings
				So(json.Unmarshal(rec.Body.Bytes(), &seasons), ShouldBeNil)
				So(seasons, ShouldHaveLength, 1)
				So(seasons[0].Series, ShouldHaveLength, 1)
			})

			Convey("GET /seasons/{id}/qualified lists the podium", func() {
				rec := e.do(t, http.MethodGet, "/seasons/"+e.season.ID+"/qualified", nil)
				So(rec.Code, ShouldEqual, http.StatusOK)

				var qualified []types.QualifiedPlayer
				So(json.Unmarshal(rec.Body.Bytes(), &qualified), ShouldBeNil)
				So(qualified, ShouldHaveLength, 3)

				Convey("And the name filter narrows it", func() {
					rec := e.do(t, http.MethodGet, "/seasons/"+e.season.ID+"/qualified?name=bob", nil)
					So(rec.Code, ShouldEqual, http.StatusOK)
					So(json.Unmarshal(rec.Body.Bytes(), &qualified), ShouldBeNil)
					So(qualified, ShouldHaveLength, 1)
				})
			})

			Convey("GET /seasons/{id}/qualification-status reports the roster", func() {
				rec := e.do(t, http.MethodGet, "/seasons/"+e.season.ID+"/qualification-status", nil)
				So(rec.Code, ShouldEqual, http.StatusOK)

				var status types.QualificationStatus
				So(json.Unmarshal(rec.Body.Bytes(), &status), ShouldBeNil)
				So(status.TotalQualified, ShouldEqual, 3)
				So(status.RemainingSpots, ShouldEqual, 29)
			})
		})

		Convey("A submission for a missing series is a 404", func() {
			submission["series_id"] = "nope"
			rec := e.do(t, http.MethodPost, "/tournaments/results", submission)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A duplicate-position submission is a 400", func() {
			submission["rankings"] = []map[string]any{
				{"player_name": "Alice", "position": 1},
				{"player_name": "Bob", "position": 1},
			}
			rec := e.do(t, http.MethodPost, "/tournaments/results", submission)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Malformed JSON is a 400", func() {
			req := httptest.NewRequest(http.MethodPost, "/tournaments/results", bytes.NewBufferString("{"))
			rec := httptest.NewRecorder()
			e.router.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestFinaleEndpoint(t *testing.T) {
	Convey("Given a season with players", t, func() {
		e := newEnv(t)
		ctx := context.Background()

		alice := model.Player{Name: "Alice"}
		So(e.store.CreatePlayer(ctx, &alice), ShouldBeNil)
		bob := model.Player{Name: "Bob"}
		So(e.store.CreatePlayer(ctx, &bob), ShouldBeNil)

		Convey("POST /seasons/{id}/finale records the finale", func() {
			rec := e.do(t, http.MethodPost, "/seasons/"+e.season.ID+"/finale", map[string]any{
				"event_name": "Championship",
				"rankings": []map[string]any{
					{"player_id": alice.ID, "position": 1},
					{"player_id": bob.ID, "position": 2},
				},
			})
			So(rec.Code, ShouldEqual, http.StatusCreated)

			var tournament model.Tournament
			So(json.Unmarshal(rec.Body.Bytes(), &tournament), ShouldBeNil)
			So(tournament.SeriesID, ShouldEqual, model.FinaleSeriesID)
		})

		Convey("A finale for an unknown season is a 404", func() {
			rec := e.do(t, http.MethodPost, "/seasons/nope/finale", map[string]any{
				"rankings": []map[string]any{{"player_id": alice.ID, "position": 1}},
			})
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCRUDEndpoints(t *testing.T) {
	Convey("Given a running API", t, func() {
		e := newEnv(t)

		Convey("Players can be created, listed, updated and deleted", func() {
			rec := e.do(t, http.MethodPost, "/players", map[string]any{"name": "Dave"})
			So(rec.Code, ShouldEqual, http.StatusCreated)
			var p model.Player
			So(json.Unmarshal(rec.Body.Bytes(), &p), ShouldBeNil)
			So(p.ID, ShouldNotBeEmpty)

			rec = e.do(t, http.MethodGet, "/players", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			rec = e.do(t, http.MethodPut, "/players/"+p.ID, map[string]any{"name": "David"})
			So(rec.Code, ShouldEqual, http.StatusOK)

			rec = e.do(t, http.MethodGet, "/players/"+p.ID, nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(json.Unmarshal(rec.Body.Bytes(), &p), ShouldBeNil)
			So(p.Name, ShouldEqual, "David")

			rec = e.do(t, http.MethodDelete, "/players/"+p.ID, nil)
			So(rec.Code, ShouldEqual, http.StatusNoContent)

			rec = e.do(t, http.MethodGet, "/players/"+p.ID, nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A season must name an existing league", func() {
			rec := e.do(t, http.MethodPost, "/seasons", map[string]any{
				"league_id": "nope",
				"name":      "2027",
			})
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Player profile endpoint returns the lifetime line", func() {
			rec := e.do(t, http.MethodPost, "/players", map[string]any{"name": "Erin"})
			So(rec.Code, ShouldEqual, http.StatusCreated)
			var p model.Player
			So(json.Unmarshal(rec.Body.Bytes(), &p), ShouldBeNil)

			rec = e.do(t, http.MethodGet, "/players/"+p.ID+"/profile", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var profile types.PlayerProfile
			So(json.Unmarshal(rec.Body.Bytes(), &profile), ShouldBeNil)
			So(profile.PlayerName, ShouldEqual, "Erin")
			So(profile.BestFinish, ShouldEqual, 0)
		})

		Convey("Stats endpoint responds", func() {
			rec := e.do(t, http.MethodGet, "/stats", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Healthz serves the metrics exposition", func() {
			rec := e.do(t, http.MethodGet, "/healthz", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}

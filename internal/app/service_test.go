package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cardroom/standings/internal/adapters/store"
	service "github.com/cardroom/standings/internal/app"
	"github.com/cardroom/standings/internal/domain/model"
	"github.com/cardroom/standings/internal/domain/scoring"
	"github.com/cardroom/standings/pkg/logger"
)

type fixture struct {
	svc    *service.Service
	store  store.Store
	league model.League
	season model.Season
	series model.Series
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, store.NewMemory())
}

func newFixtureWith(t *testing.T, st store.Store) *fixture {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatalf("logger.Init() error = %v", err)
	}

	ctx := context.Background()

	f := &fixture{
		svc:    service.New(service.WithStore(st)),
		store:  st,
		league: model.League{Name: "Thursday Night Poker"},
		season: model.Season{Name: "2026 Spring"},
		series: model.Series{Name: "Main Event Series"},
	}
	if err := st.CreateLeague(ctx, &f.league); err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}
	f.season.LeagueID = f.league.ID
	if err := st.CreateSeason(ctx, &f.season); err != nil {
		t.Fatalf("CreateSeason: %v", err)
	}
	f.series.SeasonID = f.season.ID
	f.series.LeagueID = f.league.ID
	if err := st.CreateSeries(ctx, &f.series); err != nil {
		t.Fatalf("CreateSeries: %v", err)
	}
	if err := f.svc.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(f.svc.Stop)
	return f
}

func (f *fixture) addPlayer(t *testing.T, name string) model.Player {
	t.Helper()
	p := model.Player{Name: name}
	if err := f.store.CreatePlayer(context.Background(), &p); err != nil {
		t.Fatalf("CreatePlayer(%s): %v", name, err)
	}
	return p
}

func TestRecordTournamentResults(t *testing.T) {
	Convey("Given a series with eight registered players", t, func() {
		f := newFixture(t)
		ctx := context.Background()

		names := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}
		players := make([]model.Player, len(names))
		for i, n := range names {
			players[i] = f.addPlayer(t, n)
		}

		req := service.RecordRequest{
			SeriesID:     f.series.ID,
			Date:         time.Date(2026, 3, 12, 19, 0, 0, 0, time.UTC),
			TotalPlayers: 8,
		}
		for i, p := range players {
			req.Rankings = append(req.Rankings, service.RankingEntry{
				PlayerID: p.ID,
				Position: i + 1,
			})
		}

		Convey("When the results are recorded", func() {
			tournament, err := f.svc.RecordTournamentResults(ctx, req)
			So(err, ShouldBeNil)
			So(tournament.ID, ShouldNotBeEmpty)
			So(tournament.Status, ShouldEqual, model.TournamentCompleted)

			Convey("The winner earns N*(11-rank) points", func() {
				standings, err := f.svc.SeriesStandings(ctx, f.series.ID)
				So(err, ShouldBeNil)
				So(standings.Standings, ShouldHaveLength, 8)
				So(standings.Standings[0].PlayerName, ShouldEqual, "Alice")
				So(standings.Standings[0].TotalPoints, ShouldEqual, 80)
				So(standings.Standings[1].TotalPoints, ShouldEqual, 70)
				So(standings.Standings[2].TotalPoints, ShouldEqual, 60)
			})

			Convey("Podium finishes produce qualifications", func() {
				qualified, err := f.svc.QualifiedPlayers(ctx, f.season.ID, "")
				So(err, ShouldBeNil)
				So(qualified, ShouldHaveLength, 3)
				So(qualified[0].PlayerName, ShouldEqual, "Alice")
				So(qualified[0].Type, ShouldEqual, model.QualificationWinner)
				// 10000 base + 15000 winner bonus + 80 points * 100.
				So(qualified[0].TotalChips, ShouldEqual, 33000)
				So(qualified[1].TotalChips, ShouldEqual, 22000)
			})

			Convey("The status reflects the roster against the 32 cap", func() {
				status, err := f.svc.QualificationStatus(ctx, f.season.ID)
				So(err, ShouldBeNil)
				So(status.TotalQualified, ShouldEqual, 3)
				So(status.TournamentWinners, ShouldEqual, 1)
				So(status.TopQualifiers, ShouldEqual, 2)
				So(status.RemainingSpots, ShouldEqual, 29)
			})
		})

		Convey("When a second tournament is recorded", func() {
			_, err := f.svc.RecordTournamentResults(ctx, req)
			So(err, ShouldBeNil)

			second := req
			second.TotalPlayers = 20
			second.Rankings = []service.RankingEntry{
				{PlayerID: players[0].ID, Position: 5},
				{PlayerID: players[1].ID, Position: 1},
			}
			_, err = f.svc.RecordTournamentResults(ctx, second)
			So(err, ShouldBeNil)

			Convey("Scoreboards accumulate points and positions", func() {
				standings, err := f.svc.SeriesStandings(ctx, f.series.ID)
				So(err, ShouldBeNil)

				var alice, bob *struct {
					total, best, avg, count int
				}
				for _, row := range standings.Standings {
					r := row
					entry := &struct{ total, best, avg, count int }{
						r.TotalPoints, r.BestFinish, r.AverageFinish, r.TournamentCount,
					}
					switch r.PlayerName {
					case "Alice":
						alice = entry
					case "Bob":
						bob = entry
					}
				}
				// Alice: 80 + 20*(11-5) = 200; finishes 1 and 5.
				So(alice.total, ShouldEqual, 200)
				So(alice.best, ShouldEqual, 1)
				So(alice.avg, ShouldEqual, 3)
				So(alice.count, ShouldEqual, 2)
				// Bob: 70 + 200; finishes 2 and 1.
				So(bob.total, ShouldEqual, 270)
				So(bob.best, ShouldEqual, 1)
				So(bob.count, ShouldEqual, 2)
			})
		})

		Convey("When the submission carries an id, a retry is a no-op", func() {
			req.SubmissionID = "night-42"
			first, err := f.svc.RecordTournamentResults(ctx, req)
			So(err, ShouldBeNil)

			again, err := f.svc.RecordTournamentResults(ctx, req)
			So(err, ShouldBeNil)
			So(again.ID, ShouldEqual, first.ID)

			standings, err := f.svc.SeriesStandings(ctx, f.series.ID)
			So(err, ShouldBeNil)
			So(standings.Standings[0].TotalPoints, ShouldEqual, 80)
			So(standings.Standings[0].TournamentCount, ShouldEqual, 1)
		})
	})
}

func TestRecordTournamentValidation(t *testing.T) {
	Convey("Given a series and two players", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		alice := f.addPlayer(t, "Alice")
		bob := f.addPlayer(t, "Bob")

		Convey("An unknown series is rejected", func() {
			_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
				SeriesID:     "no-such-series",
				TotalPlayers: 2,
				Rankings:     []service.RankingEntry{{PlayerID: alice.ID, Position: 1}},
			})
			So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
		})

		Convey("Duplicate positions are rejected", func() {
			_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
				SeriesID:     f.series.ID,
				TotalPlayers: 4,
				Rankings: []service.RankingEntry{
					{PlayerID: alice.ID, Position: 1},
					{PlayerID: bob.ID, Position: 1},
				},
			})
			var verr *service.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
		})

		Convey("More ranked entries than total players is rejected", func() {
			_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
				SeriesID:     f.series.ID,
				TotalPlayers: 1,
				Rankings: []service.RankingEntry{
					{PlayerID: alice.ID, Position: 1},
					{PlayerID: bob.ID, Position: 2},
				},
			})
			var verr *service.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
		})

		Convey("A name that matches no player is rejected", func() {
			_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
				SeriesID:     f.series.ID,
				TotalPlayers: 2,
				Rankings:     []service.RankingEntry{{PlayerName: "Mallory", Position: 1}},
			})
			var verr *service.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
		})

		Convey("A malformed batch creates none of its new players", func() {
			_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
				SeriesID:     f.series.ID,
				TotalPlayers: 4,
				NewPlayers:   []string{"Walter", "Jesse"},
				Rankings: []service.RankingEntry{
					{PlayerName: "Walter", Position: 1},
					{PlayerName: "Jesse", Position: 1},
				},
			})
			var verr *service.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)

			players, err := f.store.ListPlayers(ctx)
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 2)
		})

		Convey("New players are created and resolvable by name", func() {
			_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
				SeriesID:     f.series.ID,
				TotalPlayers: 3,
				NewPlayers:   []string{"Walter"},
				Rankings: []service.RankingEntry{
					{PlayerName: "Walter", Position: 1},
					{PlayerID: alice.ID, Position: 2},
					{PlayerName: "Bob", Position: 3},
				},
			})
			So(err, ShouldBeNil)

			standings, err := f.svc.SeriesStandings(ctx, f.series.ID)
			So(err, ShouldBeNil)
			So(standings.Standings[0].PlayerName, ShouldEqual, "Walter")
			So(standings.Standings[0].TotalPoints, ShouldEqual, 30)
		})
	})
}

// faultyStore fails tournament-player writes once its budget runs out.
type faultyStore struct {
	store.Store
	writesLeft int
}

func (s *faultyStore) CreateTournamentPlayer(ctx context.Context, tp *model.TournamentPlayer) error {
	if s.writesLeft <= 0 {
		return errors.New("disk full")
	}
	s.writesLeft--
	return s.Store.CreateTournamentPlayer(ctx, tp)
}

func TestRecordTournamentPartialFailure(t *testing.T) {
	Convey("Given a store that fails after the first player write", t, func() {
		faulty := &faultyStore{Store: store.NewMemory(), writesLeft: 1}
		f := newFixtureWith(t, faulty)
		ctx := context.Background()
		alice := f.addPlayer(t, "Alice")
		bob := f.addPlayer(t, "Bob")

		req := service.RecordRequest{
			SubmissionID: "night-7",
			SeriesID:     f.series.ID,
			TotalPlayers: 4,
			Rankings: []service.RankingEntry{
				{PlayerID: alice.ID, Position: 1},
				{PlayerID: bob.ID, Position: 2},
			},
		}

		_, err := f.svc.RecordTournamentResults(ctx, req)
		var perr *service.PartialWriteError
		So(errors.As(err, &perr), ShouldBeTrue)
		So(perr.TournamentID, ShouldNotBeEmpty)

		Convey("A retry under the same id returns the partial tournament without re-applying", func() {
			faulty.writesLeft = 100

			again, err := f.svc.RecordTournamentResults(ctx, req)
			So(err, ShouldBeNil)
			So(again.ID, ShouldEqual, perr.TournamentID)

			// Alice's result landed before the failure; the retry must not
			// fold it a second time.
			sb, err := f.store.GetScoreboardBySeriesPlayer(ctx, f.series.ID, alice.ID)
			So(err, ShouldBeNil)
			So(sb.TotalPoints, ShouldEqual, 40)
			So(sb.TournamentCount, ShouldEqual, 1)
		})
	})
}

func TestBountyAndConsolationCredits(t *testing.T) {
	Convey("Given a recorded tournament with bounties", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		alice := f.addPlayer(t, "Alice")
		bob := f.addPlayer(t, "Bob")

		_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
			SeriesID:     f.series.ID,
			TotalPlayers: 10,
			Rankings: []service.RankingEntry{
				{PlayerID: alice.ID, Position: 1, Bounties: 3},
				{PlayerID: bob.ID, Position: 2, Consolation: true},
			},
		})
		So(err, ShouldBeNil)

		Convey("Credits appear in the breakdown but never in the total", func() {
			standings, err := f.svc.SeriesStandings(ctx, f.series.ID)
			So(err, ShouldBeNil)

			top := standings.Standings[0]
			So(top.PlayerName, ShouldEqual, "Alice")
			So(top.TotalPoints, ShouldEqual, 100)
			So(top.RegularPoints, ShouldEqual, 100)
			So(top.BountyPoints, ShouldEqual, 75)
			So(top.ConsolationPoints, ShouldEqual, 0)

			runnerUp := standings.Standings[1]
			So(runnerUp.TotalPoints, ShouldEqual, 90)
			So(runnerUp.ConsolationPoints, ShouldEqual, 25)
		})
	})
}

func TestConsolationGame(t *testing.T) {
	Convey("Given a consolation event", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		alice := f.addPlayer(t, "Alice")
		bob := f.addPlayer(t, "Bob")
		carol := f.addPlayer(t, "Carol")

		_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
			SeriesID:     f.series.ID,
			GameType:     scoring.GameConsolation,
			TotalPlayers: 3,
			Rankings: []service.RankingEntry{
				{PlayerID: alice.ID, Position: 1},
				{PlayerID: bob.ID, Position: 2},
				{PlayerID: carol.ID, Position: 3},
			},
		})
		So(err, ShouldBeNil)

		Convey("The fixed table applies", func() {
			standings, err := f.svc.SeriesStandings(ctx, f.series.ID)
			So(err, ShouldBeNil)
			So(standings.Standings[0].TotalPoints, ShouldEqual, 100)
			So(standings.Standings[1].TotalPoints, ShouldEqual, 50)
			So(standings.Standings[2].TotalPoints, ShouldEqual, 25)
		})

		Convey("The podium qualifies for the finale like any other event", func() {
			qualified, err := f.svc.QualifiedPlayers(ctx, f.season.ID, "")
			So(err, ShouldBeNil)
			So(qualified, ShouldHaveLength, 3)
			So(qualified[0].PlayerName, ShouldEqual, "Alice")
			So(qualified[0].Type, ShouldEqual, model.QualificationWinner)
		})
	})
}

func TestQualificationQueries(t *testing.T) {
	Convey("Given a season with no qualifications", t, func() {
		f := newFixture(t)
		ctx := context.Background()

		Convey("The status reports a full 32 remaining spots", func() {
			status, err := f.svc.QualificationStatus(ctx, f.season.ID)
			So(err, ShouldBeNil)
			So(status.TotalQualified, ShouldEqual, 0)
			So(status.MaxPlayers, ShouldEqual, 32)
			So(status.RemainingSpots, ShouldEqual, 32)
		})

		Convey("An unknown season is a not-found error", func() {
			_, err := f.svc.QualificationStatus(ctx, "no-such-season")
			So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a player who both won and placed", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		alice := f.addPlayer(t, "Alice")
		bob := f.addPlayer(t, "Bob")

		req := service.RecordRequest{
			SeriesID:     f.series.ID,
			TotalPlayers: 6,
			Rankings: []service.RankingEntry{
				{PlayerID: alice.ID, Position: 1},
				{PlayerID: bob.ID, Position: 2},
			},
		}
		_, err := f.svc.RecordTournamentResults(ctx, req)
		So(err, ShouldBeNil)
		req.Rankings = []service.RankingEntry{
			{PlayerID: bob.ID, Position: 1},
			{PlayerID: alice.ID, Position: 3},
		}
		_, err = f.svc.RecordTournamentResults(ctx, req)
		So(err, ShouldBeNil)

		Convey("The winner qualification dominates and players appear once", func() {
			qualified, err := f.svc.QualifiedPlayers(ctx, f.season.ID, "")
			So(err, ShouldBeNil)
			So(qualified, ShouldHaveLength, 2)
			for _, q := range qualified {
				So(q.Type, ShouldEqual, model.QualificationWinner)
			}
		})

		Convey("The name filter narrows the list", func() {
			qualified, err := f.svc.QualifiedPlayers(ctx, f.season.ID, "ali")
			So(err, ShouldBeNil)
			So(qualified, ShouldHaveLength, 1)
			So(qualified[0].PlayerName, ShouldEqual, "Alice")
		})
	})
}

func TestRecordSeasonFinale(t *testing.T) {
	Convey("Given a season with recorded results", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		alice := f.addPlayer(t, "Alice")
		bob := f.addPlayer(t, "Bob")
		carol := f.addPlayer(t, "Carol")

		_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
			SeriesID:     f.series.ID,
			TotalPlayers: 3,
			Rankings: []service.RankingEntry{
				{PlayerID: alice.ID, Position: 1},
				{PlayerID: bob.ID, Position: 2},
				{PlayerID: carol.ID, Position: 3},
			},
		})
		So(err, ShouldBeNil)

		Convey("When the finale is recorded", func() {
			finale, err := f.svc.RecordSeasonFinale(ctx, service.FinaleRequest{
				SeasonID:  f.season.ID,
				EventName: "Spring Championship",
				EventDate: time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
				Rankings: []service.FinaleRanking{
					{PlayerID: bob.ID, Position: 1},
					{PlayerID: alice.ID, Position: 2},
					{PlayerID: carol.ID, Position: 3},
				},
			})
			So(err, ShouldBeNil)
			So(finale.SeriesID, ShouldEqual, model.FinaleSeriesID)

			Convey("Payouts follow the prize table and no points are awarded", func() {
				results, err := f.svc.Store().ListTournamentPlayersByTournament(ctx, finale.ID)
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 3)
				byPlayer := make(map[string]model.TournamentPlayer)
				for _, tp := range results {
					byPlayer[tp.PlayerID] = tp
				}
				So(byPlayer[bob.ID].Payout, ShouldEqual, 1200)
				So(byPlayer[alice.ID].Payout, ShouldEqual, 800)
				So(byPlayer[carol.ID].Payout, ShouldEqual, 500)
				So(byPlayer[bob.ID].Points, ShouldEqual, 0)
			})

			Convey("Series standings are unchanged by the finale", func() {
				standings, err := f.svc.SeriesStandings(ctx, f.series.ID)
				So(err, ShouldBeNil)
				So(standings.Standings[0].PlayerName, ShouldEqual, "Alice")
				So(standings.Standings[0].TournamentCount, ShouldEqual, 1)
			})
		})

		Convey("Duplicate finale positions are rejected", func() {
			_, err := f.svc.RecordSeasonFinale(ctx, service.FinaleRequest{
				SeasonID: f.season.ID,
				Rankings: []service.FinaleRanking{
					{PlayerID: alice.ID, Position: 1},
					{PlayerID: bob.ID, Position: 1},
				},
			})
			var verr *service.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
		})
	})
}

func TestPlayerProfile(t *testing.T) {
	Convey("Given a player with results in two series", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		alice := f.addPlayer(t, "Alice")
		bob := f.addPlayer(t, "Bob")

		other := model.Series{Name: "Turbo Series", SeasonID: f.season.ID, LeagueID: f.league.ID}
		So(f.store.CreateSeries(ctx, &other), ShouldBeNil)

		_, err := f.svc.RecordTournamentResults(ctx, service.RecordRequest{
			SeriesID:     f.series.ID,
			TotalPlayers: 10,
			Rankings: []service.RankingEntry{
				{PlayerID: alice.ID, Position: 1},
				{PlayerID: bob.ID, Position: 2},
			},
		})
		So(err, ShouldBeNil)
		_, err = f.svc.RecordTournamentResults(ctx, service.RecordRequest{
			SeriesID:     other.ID,
			TotalPlayers: 5,
			Rankings: []service.RankingEntry{
				{PlayerID: bob.ID, Position: 1},
				{PlayerID: alice.ID, Position: 4},
			},
		})
		So(err, ShouldBeNil)

		Convey("The profile sums across series", func() {
			profile, err := f.svc.PlayerProfile(ctx, alice.ID)
			So(err, ShouldBeNil)
			// 10*(11-1) + 5*(11-4) = 100 + 35.
			So(profile.TotalPoints, ShouldEqual, 135)
			So(profile.TournamentCount, ShouldEqual, 2)
			So(profile.BestFinish, ShouldEqual, 1)
			So(profile.WinCount, ShouldEqual, 1)
			So(profile.Series, ShouldHaveLength, 2)
		})

		Convey("A player with no results has a zero best finish", func() {
			idle := f.addPlayer(t, "Idle")
			profile, err := f.svc.PlayerProfile(ctx, idle.ID)
			So(err, ShouldBeNil)
			So(profile.BestFinish, ShouldEqual, 0)
			So(profile.Series, ShouldBeEmpty)
		})

		Convey("Season standings group the series", func() {
			seasons, err := f.svc.SeasonStandings(ctx)
			So(err, ShouldBeNil)
			So(seasons, ShouldHaveLength, 1)
			So(seasons[0].LeagueName, ShouldEqual, "Thursday Night Poker")
			So(seasons[0].Series, ShouldHaveLength, 2)
		})
	})
}

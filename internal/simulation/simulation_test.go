package simulation

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/livescore/internal/app"
	"github.com/okian/livescore/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMakePlans(t *testing.T) {
	Convey("Given a seeded config", t, func() {
		cfg := Config{Matches: 30, MaxGoals: 6, FinishRatio: 0.5, Seed: 42}

		Convey("Then plans are reproducible and within bounds", func() {
			a, b := makePlans(cfg), makePlans(cfg)
			So(a, ShouldResemble, b)
			So(len(a), ShouldEqual, 30)

			homes := make(map[string]bool)
			for _, p := range a {
				So(len(p.goals), ShouldBeLessThanOrEqualTo, 6)
				So(p.home, ShouldNotEqual, p.away)
				So(homes[p.home], ShouldBeFalse)
				homes[p.home] = true
			}
		})

		Convey("Then no goals are planned when MaxGoals is zero", func() {
			cfg.MaxGoals = 0
			for _, p := range makePlans(cfg) {
				So(len(p.goals), ShouldEqual, 0)
			}
		})
	})
}

func TestRun(t *testing.T) {
	for _, variant := range []string{service.VariantEvent, service.VariantSnapshot} {
		Convey("Given a "+variant+" scoreboard", t, func() {
			ctx := context.Background()
			board, err := service.New(ctx, variant, 64)
			So(err, ShouldBeNil)

			Convey("When the simulation runs", func() {
				report, err := Run(ctx, board, Config{Matches: 60, Workers: 8, MaxGoals: 5, FinishRatio: 0.3, Seed: 7})

				Convey("Then the board matches the unfinished plans", func() {
					So(err, ShouldBeNil)
					So(report.Matches, ShouldEqual, 60)
					So(len(report.Board), ShouldEqual, report.Matches-report.Finished)
					So(report.Pruned, ShouldEqual, 0)
				})
			})

			Convey("When the simulation prunes finished matches", func() {
				report, err := Run(ctx, board, Config{Matches: 40, Workers: 4, MaxGoals: 3, FinishRatio: 0.5, Prune: true, Seed: 3})

				Convey("Then every finished match is gone from the store", func() {
					So(err, ShouldBeNil)
					So(report.Pruned, ShouldEqual, report.Finished)
					So(board.Stats(ctx)["matches"], ShouldEqual, report.Matches-report.Finished)
				})
			})
		})
	}

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		board, _ := service.New(context.Background(), service.VariantEvent, 0)

		Convey("Then Run fails with the context error", func() {
			_, err := Run(ctx, board, Config{Matches: 5, Workers: 2, MaxGoals: 2})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given expected outcomes", t, func() {
		outcomes := []Outcome{
			{Home: "Spain", Away: "Brazil", HomeGoals: 10, AwayGoals: 2},
			{Home: "Mexico", Away: "Canada", HomeGoals: 0, AwayGoals: 5},
			{Home: "Germany", Away: "France", HomeGoals: 2, AwayGoals: 2, Finished: true},
		}
		good := []types.ScoreboardItem{
			{HomeTeamName: "Spain", AwayTeamName: "Brazil", HomeGoals: 10, AwayGoals: 2},
			{HomeTeamName: "Mexico", AwayTeamName: "Canada", HomeGoals: 0, AwayGoals: 5},
		}

		Convey("Then a correct board passes", func() {
			So(Verify(good, outcomes), ShouldBeNil)
		})

		Convey("Then a mis-ordered board is detected", func() {
			err := Verify([]types.ScoreboardItem{good[1], good[0]}, outcomes)
			So(errors.Is(err, ErrVerification), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "not ordered")
		})

		Convey("Then a finished match on the board is detected", func() {
			board := append([]types.ScoreboardItem{}, good...)
			board = append(board, types.ScoreboardItem{HomeTeamName: "Germany", AwayTeamName: "France", HomeGoals: 2, AwayGoals: 2})
			So(errors.Is(Verify(board, outcomes), ErrVerification), ShouldBeTrue)
		})

		Convey("Then a wrong score is detected", func() {
			board := append([]types.ScoreboardItem{}, good...)
			board[1].AwayGoals = 4
			So(errors.Is(Verify(board, outcomes), ErrVerification), ShouldBeTrue)
		})
	})
}

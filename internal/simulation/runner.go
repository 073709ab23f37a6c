// Package simulation plays scripted matches against a scoreboard from many
// goroutines and checks the resulting summary.
package simulation

import (
	"context"
	"fmt"
	"time"

	service "github.com/okian/livescore/internal/app"
	"github.com/okian/livescore/internal/domain/types"
	"github.com/okian/livescore/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Run plays cfg.Matches matches on board with at most cfg.Workers goroutines,
// optionally prunes finished ones and verifies the final summary.
func Run(ctx context.Context, board service.Scoreboard, cfg Config) (*Report, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("simulation")

	play, err := newDriver(board)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	plans := makePlans(cfg)
	log.Info(ctx, "starting simulation",
		logger.Int("matches", len(plans)),
		logger.Int("workers", workers),
		logger.Int("maxGoals", cfg.MaxGoals),
		logger.Float64("finishRatio", cfg.FinishRatio))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range plans {
		p := plans[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := play(gctx, p); err != nil {
				return fmt.Errorf("match %q vs %q: %w", p.home, p.away, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}

	report := &Report{Matches: len(plans), Outcomes: make([]Outcome, len(plans))}
	for i, p := range plans {
		report.Outcomes[i] = p.outcome()
		report.Goals += len(p.goals)
		if p.finish {
			report.Finished++
		}
	}

	if cfg.Prune {
		n, err := board.PruneFinished(ctx)
		if err != nil {
			return nil, fmt.Errorf("simulation: %w", err)
		}
		report.Pruned = n
		log.Info(ctx, "pruned finished matches", logger.Int("pruned", n))
	}

	report.Board, err = board.ActiveMatchSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	report.Duration = time.Since(start)

	if err := Verify(report.Board, report.Outcomes); err != nil {
		return report, err
	}
	if cfg.Prune && report.Pruned != report.Finished {
		return report, fmt.Errorf("%w: pruned %d matches, %d finished", ErrVerification, report.Pruned, report.Finished)
	}

	log.Info(ctx, "simulation completed",
		logger.Int("matches", report.Matches),
		logger.Int("finished", report.Finished),
		logger.Int("goals", report.Goals),
		logger.Int("active", len(report.Board)),
		logger.String("duration", report.Duration.String()))
	return report, nil
}

// Verify checks that board lists exactly the unfinished outcomes with their
// scores, ordered by total goals descending.
func Verify(board []types.ScoreboardItem, outcomes []Outcome) error {
	want := make(map[string]Outcome, len(outcomes))
	active := 0
	for _, o := range outcomes {
		if !o.Finished {
			want[o.Home] = o
			active++
		}
	}
	if len(board) != active {
		return fmt.Errorf("%w: %d active matches on board, want %d", ErrVerification, len(board), active)
	}

	for i, item := range board {
		o, ok := want[item.HomeTeamName]
		if !ok {
			return fmt.Errorf("%w: unexpected match %q at %d", ErrVerification, item, i+1)
		}
		delete(want, item.HomeTeamName)
		if item.AwayTeamName != o.Away || item.HomeGoals != o.HomeGoals || item.AwayGoals != o.AwayGoals {
			return fmt.Errorf("%w: %q at %d, want %s %d - %s %d",
				ErrVerification, item, i+1, o.Home, o.HomeGoals, o.Away, o.AwayGoals)
		}
		if i > 0 {
			prev := board[i-1]
			if prev.HomeGoals+prev.AwayGoals < item.HomeGoals+item.AwayGoals {
				return fmt.Errorf("%w: board not ordered at %d", ErrVerification, i+1)
			}
		}
	}
	return nil
}

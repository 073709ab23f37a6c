package simulation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	service "github.com/okian/livescore/internal/app"
)

type eventLifecycle interface {
	AnnounceMatch(ctx context.Context, home, away string) (uuid.UUID, error)
	StartMatch(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error)
	FinishMatch(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error)
	AddGoal(ctx context.Context, matchID uuid.UUID, team string) (uuid.UUID, error)
}

type snapshotLifecycle interface {
	StartMatch(ctx context.Context, home, away string) (uuid.UUID, error)
	FinishMatch(ctx context.Context, matchID uuid.UUID) error
	UpdateScore(ctx context.Context, matchID uuid.UUID, home, away int) error
}

// driver plays one plan against a scoreboard.
type driver func(ctx context.Context, p plan) error

func newDriver(board service.Scoreboard) (driver, error) {
	if lc, ok := board.(eventLifecycle); ok {
		return eventDriver(lc), nil
	}
	if lc, ok := board.(snapshotLifecycle); ok {
		return snapshotDriver(lc), nil
	}
	return nil, fmt.Errorf("simulation: %w: %T has no lifecycle", service.ErrInvalidArgument, board)
}

func eventDriver(lc eventLifecycle) driver {
	return func(ctx context.Context, p plan) error {
		id, err := lc.AnnounceMatch(ctx, p.home, p.away)
		if err != nil {
			return err
		}
		if _, err := lc.StartMatch(ctx, id); err != nil {
			return err
		}
		for _, g := range p.goals {
			team := p.home
			if g == awaySide {
				team = p.away
			}
			if _, err := lc.AddGoal(ctx, id, team); err != nil {
				return err
			}
		}
		if p.finish {
			_, err = lc.FinishMatch(ctx, id)
		}
		return err
	}
}

func snapshotDriver(lc snapshotLifecycle) driver {
	return func(ctx context.Context, p plan) error {
		id, err := lc.StartMatch(ctx, p.home, p.away)
		if err != nil {
			return err
		}
		var home, away int
		for _, g := range p.goals {
			if g == homeSide {
				home++
			} else {
				away++
			}
			if err := lc.UpdateScore(ctx, id, home, away); err != nil {
				return err
			}
		}
		if p.finish {
			return lc.FinishMatch(ctx, id)
		}
		return nil
	}
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/okian/livescore/internal/adapters/repository"
	"github.com/okian/livescore/internal/domain/model"
)

// New builds the scoreboard for variant over fresh in-memory stores
// pre-sized to capacity.
func New(ctx context.Context, variant string, capacity int, opts ...Option) (Scoreboard, error) {
	st := defaultSettings()
	st.apply(opts)
	storeOpts := func(name string) []repository.Option {
		return []repository.Option{
			repository.WithName(name),
			repository.WithCapacity(capacity),
			repository.WithLogger(st.logger),
		}
	}

	switch variant {
	case VariantEvent:
		return NewEventService(
			repository.NewMemoryStore[uuid.UUID, model.Match](ctx, storeOpts("matches")...),
			repository.NewMemoryStore[uuid.UUID, model.MatchEvent](ctx, storeOpts("match_events")...),
			opts...,
		), nil
	case VariantSnapshot:
		return NewSnapshotService(
			repository.NewMemoryStore[uuid.UUID, model.ScoredMatch](ctx, storeOpts("scored_matches")...),
			repository.NewMemoryStore[uuid.UUID, model.MatchScore](ctx, storeOpts("match_scores")...),
			opts...,
		), nil
	default:
		return nil, fmt.Errorf("new scoreboard: %w: unknown variant %q", ErrInvalidArgument, variant)
	}
}

// Package service provides the match lifecycle services and the active
// match summary on top of the entity stores.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/livescore/internal/domain/matchstate"
	"github.com/okian/livescore/internal/domain/ranking"
	"github.com/okian/livescore/internal/domain/types"
	"github.com/okian/livescore/pkg/logger"
	"github.com/okian/livescore/pkg/metrics"
)

// Variant names, also used as metric labels and config values.
const (
	VariantEvent    = "event"
	VariantSnapshot = "snapshot"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Scoreboard is the read side shared by both variants.
type Scoreboard interface {
	// ActiveMatchSummary returns started, unfinished matches ordered by total
	// goals desc, then most recent start first.
	ActiveMatchSummary(ctx context.Context) ([]types.ScoreboardItem, error)
	// MatchInfos derives the state of every known match.
	MatchInfos(ctx context.Context) ([]matchstate.MatchInfo, error)
	// PruneFinished deletes finished matches and their records, returning
	// how many matches were removed.
	PruneFinished(ctx context.Context) (int, error)
	// Stats reports counters for monitoring.
	Stats(ctx context.Context) map[string]any
}

// Option applies a configuration option to a service.
type Option func(*settings)

type settings struct {
	logger logger.Logger
	now    func() time.Time
	newID  func() uuid.UUID
	strict bool
}

func defaultSettings() settings {
	return settings{
		logger: logger.Nop(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.New,
	}
}

func (s *settings) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the entity id generator.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *settings) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithStrictMatchLookup makes operations that reference a match id fail with
// ErrNotFound when the match is unknown. By default they append blindly.
func WithStrictMatchLookup(strict bool) Option {
	return func(s *settings) {
		s.strict = strict
	}
}

// summarize ranks infos and records the summary metrics.
func summarize(variant string, start time.Time, infos []matchstate.MatchInfo) []types.ScoreboardItem {
	items := ranking.ActiveSummary(infos)
	metrics.RecordSummary(variant, float64(time.Since(start).Microseconds())/1000, len(items))
	return items
}

// teamNames validates and normalizes the two sides of a new match.
func teamNames(op, home, away string) (string, string, error) {
	home, away = strings.TrimSpace(home), strings.TrimSpace(away)
	if home == "" {
		return "", "", fmt.Errorf("%s: %w: home team name is empty", op, ErrInvalidArgument)
	}
	if away == "" {
		return "", "", fmt.Errorf("%s: %w: away team name is empty", op, ErrInvalidArgument)
	}
	return home, away, nil
}

// finishedIDs collects the ids of finished matches.
func finishedIDs(infos []matchstate.MatchInfo) map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{})
	for _, info := range infos {
		if info.Finished() {
			ids[info.MatchID()] = struct{}{}
		}
	}
	return ids
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}

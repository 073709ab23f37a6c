package service

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/livescore/internal/adapters/repository"
	"github.com/okian/livescore/internal/domain/matchstate"
	"github.com/okian/livescore/internal/domain/model"
	"github.com/okian/livescore/internal/domain/types"
	"github.com/okian/livescore/pkg/logger"
	"github.com/okian/livescore/pkg/metrics"
)

// SnapshotService runs the snapshot scoreboard: a match starts when it is
// created, scores are absolute snapshots and finishing flips a flag on the
// match record.
type SnapshotService struct {
	matches repository.Store[uuid.UUID, model.ScoredMatch]
	scores  repository.Store[uuid.UUID, model.MatchScore]
	seq     atomic.Uint64
	settings
}

var _ Scoreboard = (*SnapshotService)(nil)

// NewSnapshotService wires a SnapshotService over the given stores.
func NewSnapshotService(
	matches repository.Store[uuid.UUID, model.ScoredMatch],
	scores repository.Store[uuid.UUID, model.MatchScore],
	opts ...Option,
) *SnapshotService {
	s := &SnapshotService{matches: matches, scores: scores, settings: defaultSettings()}
	s.apply(opts)
	s.logger = s.logger.Named("snapshot_service")
	return s
}

// StartMatch creates a running match between home and away.
func (s *SnapshotService) StartMatch(ctx context.Context, home, away string) (id uuid.UUID, err error) {
	const op = "start_match"
	defer func() { s.observe(ctx, op, id, err) }()

	home, away, err = teamNames(op, home, away)
	if err != nil {
		return uuid.Nil, err
	}
	m := model.ScoredMatch{ID: s.newID(), HomeTeamName: home, AwayTeamName: away, CreatedOn: s.now()}
	ok, err := s.matches.Insert(ctx, m)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return uuid.Nil, fmt.Errorf("%s: match %s: %w", op, m.ID, ErrConflict)
	}
	return m.ID, nil
}

// FinishMatch marks matchID finished. It fails with ErrNotFound for an
// unknown match. Finishing twice is harmless.
func (s *SnapshotService) FinishMatch(ctx context.Context, matchID uuid.UUID) (err error) {
	const op = "finish_match"
	defer func() { s.observe(ctx, op, matchID, err) }()

	m, found := s.matches.Get(ctx, matchID)
	if !found {
		return fmt.Errorf("%s: match %s: %w", op, matchID, ErrNotFound)
	}
	if _, err := s.matches.Update(ctx, m.WithFinished()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateScore records the absolute score of matchID. Totals are not checked
// against earlier snapshots; the newest snapshot always wins.
func (s *SnapshotService) UpdateScore(ctx context.Context, matchID uuid.UUID, home, away int) (err error) {
	const op = "update_score"
	defer func() { s.observe(ctx, op, matchID, err) }()

	if home < 0 || away < 0 {
		return fmt.Errorf("%s: %w: negative score %d-%d", op, ErrInvalidArgument, home, away)
	}
	if s.strict {
		if _, found := s.matches.Get(ctx, matchID); !found {
			return fmt.Errorf("%s: match %s: %w", op, matchID, ErrNotFound)
		}
	}

	sc := model.MatchScore{
		ID:        s.newID(),
		MatchID:   matchID,
		HomeGoals: home,
		AwayGoals: away,
		CreatedOn: s.now(),
		Seq:       s.seq.Add(1),
	}
	ok, err := s.scores.Insert(ctx, sc)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: snapshot %s: %w", op, sc.ID, ErrConflict)
	}
	return nil
}

// MatchInfos implements Scoreboard. Snapshots are not read when no match
// exists.
func (s *SnapshotService) MatchInfos(ctx context.Context) ([]matchstate.MatchInfo, error) {
	matches := s.matches.GetAll(ctx)
	if len(matches) == 0 {
		return []matchstate.MatchInfo{}, nil
	}
	return matchstate.ReduceSnapshots(matches, s.scores.GetAll(ctx)), nil
}

// ActiveMatchSummary implements Scoreboard.
func (s *SnapshotService) ActiveMatchSummary(ctx context.Context) ([]types.ScoreboardItem, error) {
	start := time.Now()
	infos, err := s.MatchInfos(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(VariantSnapshot, start, infos), nil
}

// MatchScores returns the snapshots of matchID, oldest first.
func (s *SnapshotService) MatchScores(ctx context.Context, matchID uuid.UUID) []model.MatchScore {
	var out []model.MatchScore
	for _, sc := range s.scores.GetAll(ctx) {
		if sc.MatchID == matchID {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedOn.Equal(out[j].CreatedOn) {
			return out[i].CreatedOn.Before(out[j].CreatedOn)
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// PruneFinished implements Scoreboard. Snapshots of a pruned match are
// deleted with it.
func (s *SnapshotService) PruneFinished(ctx context.Context) (n int, err error) {
	const op = "prune_finished"
	defer func() { s.observe(ctx, op, uuid.Nil, err) }()

	infos, err := s.MatchInfos(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	done := finishedIDs(infos)
	if len(done) == 0 {
		return 0, nil
	}
	for id := range done {
		if s.matches.Delete(ctx, id) {
			n++
		}
	}
	for _, sc := range s.scores.GetAll(ctx) {
		if _, ok := done[sc.MatchID]; ok {
			s.scores.Delete(ctx, sc.ID)
		}
	}
	return n, nil
}

// Stats implements Scoreboard.
func (s *SnapshotService) Stats(ctx context.Context) map[string]any {
	return map[string]any{
		"variant": VariantSnapshot,
		"strict":  s.strict,
		"matches": s.matches.Count(ctx),
		"scores":  s.scores.Count(ctx),
	}
}

func (s *SnapshotService) observe(ctx context.Context, op string, id uuid.UUID, err error) {
	metrics.RecordLifecycleOperation(VariantSnapshot, op, result(err))
	if err != nil {
		s.logger.Warn(ctx, "lifecycle operation failed", logger.String("op", op), logger.Error(err))
		return
	}
	s.logger.Debug(ctx, "lifecycle operation", logger.String("op", op), logger.Stringer("match_id", id))
}

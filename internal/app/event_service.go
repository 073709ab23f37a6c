package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/livescore/internal/adapters/repository"
	"github.com/okian/livescore/internal/domain/matchstate"
	"github.com/okian/livescore/internal/domain/model"
	"github.com/okian/livescore/internal/domain/types"
	"github.com/okian/livescore/pkg/logger"
	"github.com/okian/livescore/pkg/metrics"
)

// EventService runs the event-sourced scoreboard: matches are announced,
// then started, scored and finished by appending events.
type EventService struct {
	matches repository.Store[uuid.UUID, model.Match]
	events  repository.Store[uuid.UUID, model.MatchEvent]
	settings
}

var _ Scoreboard = (*EventService)(nil)

// NewEventService wires an EventService over the given stores.
func NewEventService(
	matches repository.Store[uuid.UUID, model.Match],
	events repository.Store[uuid.UUID, model.MatchEvent],
	opts ...Option,
) *EventService {
	s := &EventService{matches: matches, events: events, settings: defaultSettings()}
	s.apply(opts)
	s.logger = s.logger.Named("event_service")
	return s
}

// AnnounceMatch registers a match between home and away. The match is not
// started until StartMatch is called.
func (s *EventService) AnnounceMatch(ctx context.Context, home, away string) (id uuid.UUID, err error) {
	const op = "announce_match"
	defer func() { s.observe(ctx, op, id, err) }()

	home, away, err = teamNames(op, home, away)
	if err != nil {
		return uuid.Nil, err
	}
	m := model.Match{ID: s.newID(), HomeTeamName: home, AwayTeamName: away, CreatedOn: s.now()}
	ok, err := s.matches.Insert(ctx, m)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return uuid.Nil, fmt.Errorf("%s: match %s: %w", op, m.ID, ErrConflict)
	}
	return m.ID, nil
}

// StartMatch appends a start event for matchID and returns the event id.
func (s *EventService) StartMatch(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error) {
	return s.appendEvent(ctx, "start_match", matchID, model.EventStart, "")
}

// FinishMatch appends a finish event for matchID and returns the event id.
func (s *EventService) FinishMatch(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error) {
	return s.appendEvent(ctx, "finish_match", matchID, model.EventFinish, "")
}

// AddGoal appends a goal for team in matchID and returns the event id.
// The team name is only checked against the match in strict mode.
func (s *EventService) AddGoal(ctx context.Context, matchID uuid.UUID, team string) (uuid.UUID, error) {
	team = strings.TrimSpace(team)
	if team == "" {
		err := fmt.Errorf("add_goal: %w: team name is empty", ErrInvalidArgument)
		s.observe(ctx, "add_goal", uuid.Nil, err)
		return uuid.Nil, err
	}
	return s.appendEvent(ctx, "add_goal", matchID, model.EventGoal, team)
}

func (s *EventService) appendEvent(ctx context.Context, op string, matchID uuid.UUID, kind model.EventKind, team string) (id uuid.UUID, err error) {
	defer func() { s.observe(ctx, op, matchID, err) }()

	if s.strict {
		m, found := s.matches.Get(ctx, matchID)
		if !found {
			return uuid.Nil, fmt.Errorf("%s: match %s: %w", op, matchID, ErrNotFound)
		}
		if kind == model.EventGoal && !strings.EqualFold(team, m.HomeTeamName) && !strings.EqualFold(team, m.AwayTeamName) {
			return uuid.Nil, fmt.Errorf("%s: %w: %q does not play in match %s", op, ErrInvalidArgument, team, matchID)
		}
	}

	ev := model.MatchEvent{ID: s.newID(), MatchID: matchID, Kind: kind, CreatedOn: s.now(), TeamName: team}
	ok, err := s.events.Insert(ctx, ev)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return uuid.Nil, fmt.Errorf("%s: event %s: %w", op, ev.ID, ErrConflict)
	}
	return ev.ID, nil
}

// MatchInfos implements Scoreboard. The event log is not read when no match
// has been announced.
func (s *EventService) MatchInfos(ctx context.Context) ([]matchstate.MatchInfo, error) {
	matches := s.matches.GetAll(ctx)
	if len(matches) == 0 {
		return []matchstate.MatchInfo{}, nil
	}
	return matchstate.ReduceEvents(matches, s.events.GetAll(ctx)), nil
}

// ActiveMatchSummary implements Scoreboard.
func (s *EventService) ActiveMatchSummary(ctx context.Context) ([]types.ScoreboardItem, error) {
	start := time.Now()
	infos, err := s.MatchInfos(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(VariantEvent, start, infos), nil
}

// MatchEvents returns the events recorded for matchID, oldest first.
func (s *EventService) MatchEvents(ctx context.Context, matchID uuid.UUID) []model.MatchEvent {
	var out []model.MatchEvent
	for _, ev := range s.events.GetAll(ctx) {
		if ev.MatchID == matchID {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedOn.Before(out[j].CreatedOn)
	})
	return out
}

// PruneFinished implements Scoreboard. Events of a pruned match are deleted
// with it.
func (s *EventService) PruneFinished(ctx context.Context) (n int, err error) {
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
	for _, ev := range s.events.GetAll(ctx) {
		if _, ok := done[ev.MatchID]; ok {
			s.events.Delete(ctx, ev.ID)
		}
	}
	return n, nil
}

// Stats implements Scoreboard.
func (s *EventService) Stats(ctx context.Context) map[string]any {
	return map[string]any{
		"variant": VariantEvent,
		"strict":  s.strict,
		"matches": s.matches.Count(ctx),
		"events":  s.events.Count(ctx),
	}
}

func (s *EventService) observe(ctx context.Context, op string, id uuid.UUID, err error) {
	metrics.RecordLifecycleOperation(VariantEvent, op, result(err))
	if err != nil {
		s.logger.Warn(ctx, "lifecycle operation failed", logger.String("op", op), logger.Error(err))
		return
	}
	s.logger.Debug(ctx, "lifecycle operation", logger.String("op", op), logger.Stringer("match_id", id))
}

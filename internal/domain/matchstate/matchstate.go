// Package matchstate derives the observable state of a match from its
// event log or from its score snapshots.
//
// Derived state is never stored. It is rebuilt from the persisted records on
// every call, so the functions here are pure and safe for concurrent use.
package matchstate

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/livescore/internal/domain/model"
)

// MatchInfo is the derived view of a single match, common to both the
// event-sourced and the snapshot data models.
type MatchInfo interface {
	MatchID() uuid.UUID
	HomeTeamName() string
	AwayTeamName() string
	HomeGoals() int
	AwayGoals() int
	TotalGoals() int
	Started() bool
	Finished() bool
	// StartedOn returns the start time, or false when the match has not started.
	StartedOn() (time.Time, bool)
}

// EventState is the state of a match replayed from its lifecycle events.
type EventState struct {
	match      model.Match
	started    bool
	finished   bool
	startedOn  time.Time
	homeGoals  int
	awayGoals  int
	totalGoals int
}

var _ MatchInfo = EventState{}

// FromEvents replays events onto match. Events belonging to other matches
// are ignored, so callers may pass an unfiltered log.
//
// The earliest Start event sets the start time. Goals count towards a side
// when the scoring team name equals the side's name ignoring case; the total
// counts every goal event, including goals credited to neither side.
func FromEvents(match model.Match, events []model.MatchEvent) EventState {
	st := EventState{match: match}
	for _, ev := range events {
		if ev.MatchID != match.ID {
			continue
		}
		switch ev.Kind {
		case model.EventStart:
			if !st.started || ev.CreatedOn.Before(st.startedOn) {
				st.startedOn = ev.CreatedOn
			}
			st.started = true
		case model.EventFinish:
			st.finished = true
		case model.EventGoal:
			st.totalGoals++
			switch {
			case strings.EqualFold(ev.TeamName, match.HomeTeamName):
				st.homeGoals++
			case strings.EqualFold(ev.TeamName, match.AwayTeamName):
				st.awayGoals++
			}
		}
	}
	return st
}

func (s EventState) MatchID() uuid.UUID   { return s.match.ID }
func (s EventState) HomeTeamName() string { return s.match.HomeTeamName }
func (s EventState) AwayTeamName() string { return s.match.AwayTeamName }
func (s EventState) HomeGoals() int       { return s.homeGoals }
func (s EventState) AwayGoals() int       { return s.awayGoals }
func (s EventState) TotalGoals() int      { return s.totalGoals }
func (s EventState) Started() bool        { return s.started }
func (s EventState) Finished() bool       { return s.finished }

func (s EventState) StartedOn() (time.Time, bool) {
	if !s.started {
		return time.Time{}, false
	}
	return s.startedOn, true
}

// SnapshotState is the state of a match read from its latest score snapshot.
type SnapshotState struct {
	match  model.ScoredMatch
	latest *model.MatchScore
}

var _ MatchInfo = SnapshotState{}

// FromSnapshots picks the most recent snapshot of match among scores.
// Snapshots of other matches are ignored. Equal timestamps are resolved by
// the higher Seq. Without snapshots the score is 0-0.
func FromSnapshots(match model.ScoredMatch, scores []model.MatchScore) SnapshotState {
	st := SnapshotState{match: match}
	for i := range scores {
		sc := &scores[i]
		if sc.MatchID != match.ID {
			continue
		}
		if st.latest == nil || newer(sc, st.latest) {
			st.latest = sc
		}
	}
	if st.latest != nil {
		// Detach from the caller's slice.
		cp := *st.latest
		st.latest = &cp
	}
	return st
}

func newer(a, b *model.MatchScore) bool {
	if !a.CreatedOn.Equal(b.CreatedOn) {
		return a.CreatedOn.After(b.CreatedOn)
	}
	return a.Seq > b.Seq
}

func (s SnapshotState) MatchID() uuid.UUID   { return s.match.ID }
func (s SnapshotState) HomeTeamName() string { return s.match.HomeTeamName }
func (s SnapshotState) AwayTeamName() string { return s.match.AwayTeamName }

// Started is always true: a scored match starts when it is created.
func (s SnapshotState) Started() bool  { return true }
func (s SnapshotState) Finished() bool { return s.match.Finished }

func (s SnapshotState) StartedOn() (time.Time, bool) { return s.match.CreatedOn, true }

func (s SnapshotState) HomeGoals() int {
	if s.latest == nil {
		return 0
	}
	return s.latest.HomeGoals
}

func (s SnapshotState) AwayGoals() int {
	if s.latest == nil {
		return 0
	}
	return s.latest.AwayGoals
}

func (s SnapshotState) TotalGoals() int { return s.HomeGoals() + s.AwayGoals() }

// ReduceEvents derives the state of every match, grouping the event log by
// match id in a single pass.
func ReduceEvents(matches []model.Match, events []model.MatchEvent) []MatchInfo {
	out := make([]MatchInfo, 0, len(matches))
	if len(matches) == 0 {
		return out
	}
	byMatch := make(map[uuid.UUID][]model.MatchEvent, len(matches))
	for _, ev := range events {
		byMatch[ev.MatchID] = append(byMatch[ev.MatchID], ev)
	}
	for _, m := range matches {
		out = append(out, FromEvents(m, byMatch[m.ID]))
	}
	return out
}

// ReduceSnapshots derives the state of every scored match, grouping the
// snapshots by match id in a single pass.
func ReduceSnapshots(matches []model.ScoredMatch, scores []model.MatchScore) []MatchInfo {
	out := make([]MatchInfo, 0, len(matches))
	if len(matches) == 0 {
		return out
	}
	byMatch := make(map[uuid.UUID][]model.MatchScore, len(matches))
	for _, sc := range scores {
		byMatch[sc.MatchID] = append(byMatch[sc.MatchID], sc)
	}
	for _, m := range matches {
		out = append(out, FromSnapshots(m, byMatch[m.ID]))
	}
	return out
}

// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// EventKind classifies a match lifecycle event.
type EventKind int

// Lifecycle event kinds.
const (
	EventStart EventKind = iota + 1
	EventGoal
	EventFinish
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventGoal:
		return "goal"
	case EventFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// MatchEvent is one append-only lifecycle record of a match.
type MatchEvent struct {
	ID        uuid.UUID
	MatchID   uuid.UUID
	Kind      EventKind
	CreatedOn time.Time
	TeamName  string // scoring side, set for goals only
}

// Key implements repository.Entity.
func (e MatchEvent) Key() uuid.UUID { return e.ID }

// MatchScore is an absolute score snapshot. The latest one per match is
// authoritative.
type MatchScore struct {
	ID        uuid.UUID
	MatchID   uuid.UUID
	HomeGoals int
	AwayGoals int
	CreatedOn time.Time
	// Seq orders snapshots that share a timestamp; higher is newer.
	Seq uint64
}

// Key implements repository.Entity.
func (s MatchScore) Key() uuid.UUID { return s.ID }

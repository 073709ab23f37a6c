package model

import (
	"time"

	"github.com/google/uuid"
)

// Match is a fixture whose status is derived from its events.
type Match struct {
	ID           uuid.UUID
	HomeTeamName string
	AwayTeamName string
	CreatedOn    time.Time
}

// Key implements repository.Entity.
func (m Match) Key() uuid.UUID { return m.ID }

// ScoredMatch is a fixture that starts on creation and carries its own
// finished flag. Scores live in MatchScore snapshots.
type ScoredMatch struct {
	ID           uuid.UUID
	HomeTeamName string
	AwayTeamName string
	CreatedOn    time.Time
	Finished     bool
}

// Key implements repository.Entity.
func (m ScoredMatch) Key() uuid.UUID { return m.ID }

// WithFinished returns a finished copy of m.
func (m ScoredMatch) WithFinished() ScoredMatch {
	m.Finished = true
	return m
}

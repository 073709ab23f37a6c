package simulation

import (
	"errors"
	"time"

	"github.com/okian/livescore/internal/domain/types"
	"github.com/okian/livescore/pkg/logger"
)

// ErrVerification is returned when the final board contradicts what was played.
var ErrVerification = errors.New("board verification failed")

// Config holds configuration for a simulation run.
type Config struct {
	Matches     int           // Number of matches to play
	Workers     int           // Concurrent goroutines
	MaxGoals    int           // Upper bound of goals per match
	FinishRatio float64       // Share of matches that finish
	Prune       bool          // Delete finished matches afterwards
	Seed        uint64        // Seed for the match plans
	Logger      logger.Logger // Optional; defaults to a no-op logger
}

// Outcome is the expected final state of one simulated match.
type Outcome struct {
	Home      string
	Away      string
	HomeGoals int
	AwayGoals int
	Finished  bool
}

// Report summarizes a completed run.
type Report struct {
	Matches  int
	Finished int
	Goals    int
	Pruned   int
	Board    []types.ScoreboardItem
	Outcomes []Outcome
	Duration time.Duration
}

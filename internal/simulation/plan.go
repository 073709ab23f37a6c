package simulation

import (
	"fmt"
	"math/rand/v2"
)

var nations = []string{
	"Argentina", "Australia", "Brazil", "Canada", "France", "Germany",
	"Italy", "Japan", "Mexico", "Morocco", "Netherlands", "Portugal",
	"Senegal", "Spain", "Uruguay", "USA",
}

// side is the team a goal is scored by.
type side uint8

const (
	homeSide side = iota
	awaySide
)

// plan is the scripted course of one match.
type plan struct {
	home, away string
	goals      []side
	finish     bool
}

// outcome returns the state the match must end in.
func (p plan) outcome() Outcome {
	o := Outcome{Home: p.home, Away: p.away, Finished: p.finish}
	for _, g := range p.goals {
		if g == homeSide {
			o.HomeGoals++
		} else {
			o.AwayGoals++
		}
	}
	return o
}

// makePlans scripts cfg.Matches matches from cfg.Seed. Team names carry the
// match index so every home name is unique.
func makePlans(cfg Config) []plan {
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.Matches)))
	plans := make([]plan, cfg.Matches)
	for i := range plans {
		h := rng.IntN(len(nations))
		a := (h + 1 + rng.IntN(len(nations)-1)) % len(nations)
		p := plan{
			home:   fmt.Sprintf("%s #%d", nations[h], i+1),
			away:   fmt.Sprintf("%s #%d", nations[a], i+1),
			finish: rng.Float64() < cfg.FinishRatio,
		}
		n := 0
		if cfg.MaxGoals > 0 {
			n = rng.IntN(cfg.MaxGoals + 1)
		}
		p.goals = make([]side, n)
		for g := range p.goals {
			p.goals[g] = side(rng.IntN(2))
		}
		plans[i] = p
	}
	return plans
}

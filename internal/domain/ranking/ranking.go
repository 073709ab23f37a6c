// Package ranking orders derived match states into the scoreboard.
package ranking

import (
	"bytes"
	"sort"

	"github.com/okian/livescore/internal/domain/matchstate"
	"github.com/okian/livescore/internal/domain/types"
)

// IsActive reports whether a match belongs on the scoreboard: started and
// not yet finished.
func IsActive(info matchstate.MatchInfo) bool {
	return info.Started() && !info.Finished()
}

// Active returns the active matches of infos in scoreboard order.
// The input slice is not modified.
func Active(infos []matchstate.MatchInfo) []matchstate.MatchInfo {
	out := make([]matchstate.MatchInfo, 0, len(infos))
	for _, info := range infos {
		if info != nil && IsActive(info) {
			out = append(out, info)
		}
	}
	sortInfos(out)
	return out
}

// ActiveSummary filters, orders and projects infos into scoreboard items.
func ActiveSummary(infos []matchstate.MatchInfo) []types.ScoreboardItem {
	active := Active(infos)
	items := make([]types.ScoreboardItem, len(active))
	for i, info := range active {
		items[i] = Project(info)
	}
	return items
}

// Project keeps only the display fields of info.
func Project(info matchstate.MatchInfo) types.ScoreboardItem {
	return types.ScoreboardItem{
		HomeTeamName: info.HomeTeamName(),
		AwayTeamName: info.AwayTeamName(),
		HomeGoals:    info.HomeGoals(),
		AwayGoals:    info.AwayGoals(),
	}
}

// sortInfos orders by total goals desc, then start time desc, then match id
// asc so that repeated calls over unchanged state agree.
func sortInfos(infos []matchstate.MatchInfo) {
	sort.SliceStable(infos, func(i, j int) bool {
		return less(infos[i], infos[j])
	})
}

// less returns true if a ranks ahead of b.
func less(a, b matchstate.MatchInfo) bool {
	if at, bt := a.TotalGoals(), b.TotalGoals(); at != bt {
		return at > bt
	}
	aOn, aOK := a.StartedOn()
	bOn, bOK := b.StartedOn()
	switch {
	case aOK && !bOK:
		return true
	case !aOK && bOK:
		return false
	case aOK && bOK && !aOn.Equal(bOn):
		return aOn.After(bOn) // most recent first
	}
	aID, bID := a.MatchID(), b.MatchID()
	return bytes.Compare(aID[:], bID[:]) < 0
}

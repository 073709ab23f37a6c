// Package types contains common types used across the application
package types

import (
	"fmt"
	"strings"
)

// ScoreboardItem is one row of the active match summary.
type ScoreboardItem struct {
	HomeTeamName string `json:"home_team_name"`
	AwayTeamName string `json:"away_team_name"`
	HomeGoals    int    `json:"home_goals"`
	AwayGoals    int    `json:"away_goals"`
}

// String renders the item as "Home 1 - Away 2".
func (i ScoreboardItem) String() string {
	return fmt.Sprintf("%s %d - %s %d", i.HomeTeamName, i.HomeGoals, i.AwayTeamName, i.AwayGoals)
}

// FormatSummary renders items as a numbered list, one per line.
func FormatSummary(items []ScoreboardItem) string {
	if len(items) == 0 {
		return "no active matches\n"
	}
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}

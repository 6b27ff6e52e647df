package board

import (
	"sort"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// Rank converts per-user totals into a leaderboard: sorted by points
// descending, ties broken by name ascending, truncated to limit entries.
// Rank numbers are 1-based positions after the sort; tied totals still get
// distinct ranks. limit <= 0 means no truncation.
//
// The name tie-break makes the ordering deterministic: the totals come from a
// map, which has no iteration order to preserve.
func Rank(totals map[string]int, limit int) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, 0, len(totals))
	for name, points := range totals {
		out = append(out, models.LeaderboardEntry{Name: name, Points: points})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Leaderboard aggregates the ledger for a window and ranks the result.
// This is the composition every leaderboard view uses.
func Leaderboard(entries []models.PointEntry, window string, limit int, now time.Time) []models.LeaderboardEntry {
	return Rank(AggregatePoints(entries, window, now), limit)
}

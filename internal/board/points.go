package board

import (
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// windowCutoff returns the earliest instant included in the window, and
// whether a cutoff applies at all. Unknown windows behave like allTime so a
// bad query parameter degrades to the widest view instead of an empty one.
func windowCutoff(window string, now time.Time) (time.Time, bool) {
	switch window {
	case models.WindowWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case models.WindowMonth:
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

// AggregatePoints folds the points ledger into per-user totals for the given
// window. Entries outside the window are excluded entirely; there is no decay
// or partial credit. Entries with a missing points field contribute 0, and
// entries with an empty userName are skipped. Absent users simply have no key.
func AggregatePoints(entries []models.PointEntry, window string, now time.Time) map[string]int {
	cutoff, bounded := windowCutoff(window, now)
	totals := make(map[string]int)
	for _, e := range entries {
		if e.UserName == "" {
			continue
		}
		if bounded && !e.Timestamp.After(cutoff) {
			continue
		}
		totals[e.UserName] += e.Points
	}
	return totals
}

// TotalFor returns one user's all-time point total. The employee dashboard's
// "Total Points" header is this sum, recomputed from the ledger on every view.
func TotalFor(entries []models.PointEntry, userName string) int {
	total := 0
	for _, e := range entries {
		if e.UserName == userName {
			total += e.Points
		}
	}
	return total
}

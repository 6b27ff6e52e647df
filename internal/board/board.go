// Package board implements the dashboard's aggregation core: normalizing raw
// store collections, filtering and sorting tasks, summing the points ledger,
// ranking the leaderboard, partitioning individual vs group tasks, and
// evaluating team-challenge progress.
//
// Every function here is a pure computation over an already-fetched snapshot.
// None of them perform I/O, hold state between calls, or return errors:
// malformed records are tolerated (missing fields count as zero or are
// skipped), and an empty snapshot produces empty results. Time-relative
// operations take an explicit now so callers and tests share one clock.
package board

import (
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// Snapshot is an immutable view of the store's collections, fetched in full by
// the caller. Aggregation functions never mutate it.
type Snapshot struct {
	Employees []models.Employee
	Tasks     []models.Task
	Points    []models.PointEntry
}

// Overview is the at-a-glance dashboard state derived from one snapshot.
type Overview struct {
	Employees     int                       `json:"employees"`
	TasksByStatus map[string]int            `json:"tasksByStatus"`
	TopScorers    []models.LeaderboardEntry `json:"topScorers"`
}

// Overview summarizes the snapshot: headcount, task counts per status, and the
// ranked top scorers for the window.
func (s Snapshot) Overview(window string, limit int, now time.Time) Overview {
	byStatus := make(map[string]int)
	for _, t := range s.Tasks {
		byStatus[t.Status]++
	}
	return Overview{
		Employees:     len(s.Employees),
		TasksByStatus: byStatus,
		TopScorers:    Leaderboard(s.Points, window, limit, now),
	}
}

package board

import (
	"math"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// Challenge is one catalog entry: a counting predicate over tasks plus a
// target. Adding a challenge means adding a catalog entry; existing
// predicates are never modified.
type Challenge struct {
	ID          string
	Title       string
	Description string
	Target      int
	Reward      string
	// Predicate reports whether a task counts toward the challenge.
	// weekStart is the start of the current calendar week.
	Predicate func(t models.Task, weekStart time.Time) bool
}

// WeekStart returns the most recent Sunday at 00:00 in now's location.
// All weekly challenges share this boundary.
func WeekStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// completedThisWeek is the base predicate every weekly challenge builds on.
func completedThisWeek(t models.Task, weekStart time.Time) bool {
	if t.Status != models.StatusCompleted || t.CompletedAt == nil {
		return false
	}
	return t.CompletedAt.After(weekStart)
}

// DefaultChallenges is the active challenge catalog.
func DefaultChallenges() []Challenge {
	return []Challenge{
		{
			ID:          "ad-hoc-heroes",
			Title:       "Ad Hoc Heroes",
			Description: "Complete 5 Ad Hoc tasks this week",
			Target:      5,
			Reward:      "300 bonus points",
			Predicate: func(t models.Task, weekStart time.Time) bool {
				return completedThisWeek(t, weekStart) && t.TaskType == models.TaskTypeAdHoc
			},
		},
		{
			ID:          "priority-masters",
			Title:       "Priority Masters",
			Description: "Complete 3 high-priority tasks this week",
			Target:      3,
			Reward:      "200 bonus points",
			Predicate: func(t models.Task, weekStart time.Time) bool {
				return completedThisWeek(t, weekStart) && t.Priority == models.PriorityHigh
			},
		},
	}
}

// EvaluateChallenges computes progress for each catalog entry against the
// task snapshot. Percent is capped at 100 even when current exceeds target.
func EvaluateChallenges(catalog []Challenge, tasks []models.Task, now time.Time) []models.ChallengeProgress {
	weekStart := WeekStart(now)
	out := make([]models.ChallengeProgress, 0, len(catalog))
	for _, c := range catalog {
		current := 0
		for _, t := range tasks {
			if c.Predicate != nil && c.Predicate(t, weekStart) {
				current++
			}
		}
		percent := 0.0
		if c.Target > 0 {
			percent = math.Min(float64(current)/float64(c.Target), 1.0) * 100
		}
		out = append(out, models.ChallengeProgress{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Target:      c.Target,
			Current:     current,
			Percent:     percent,
			Complete:    current >= c.Target,
			Reward:      c.Reward,
		})
	}
	return out
}

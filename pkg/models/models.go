// Package models provides shared types for the task board HTTP API and external tools.
// These types mirror the API JSON and are stable for use by pkg/client and other consumers.
package models

import "time"

// Employee is a team member created by an employer. Employees are looked up by
// name (case-insensitive) at login and referenced by name from tasks and points.
type Employee struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Email      string    `json:"email,omitempty"`
	JoinDate   string    `json:"joinDate,omitempty"` // calendar date, YYYY-MM-DD
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// Task is a unit of work assigned to one employee. Broadcast and multi-select
// assignment create one Task row per target employee; the rows share a TaskName.
type Task struct {
	ID              string     `json:"id,omitempty"`
	TaskName        string     `json:"taskName"`
	Description     string     `json:"description,omitempty"`
	AssignedTo      string     `json:"assignedTo"`
	AssignedBy      string     `json:"assignedBy,omitempty"`
	TaskType        string     `json:"taskType,omitempty"`
	Difficulty      string     `json:"difficulty,omitempty"`
	Priority        string     `json:"priority,omitempty"`
	EstimatedTime   float64    `json:"estimatedTime,omitempty"` // hours
	Reference       string     `json:"reference,omitempty"`
	SupportingLinks string     `json:"supportingLinks,omitempty"`
	Status          string     `json:"status"`
	Timestamp       time.Time  `json:"timestamp,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// PointEntry is one row of the append-only points ledger. A user's total is
// always a derived sum over entries, never stored directly.
type PointEntry struct {
	ID        string    `json:"id,omitempty"`
	UserName  string    `json:"userName"`
	Points    int       `json:"points"`
	TaskID    string    `json:"taskId,omitempty"`
	TaskName  string    `json:"taskName,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// LeaderboardEntry is one ranked row of the leaderboard (Rank is 1-based).
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// TaskGroup is a derived, non-persisted view of Task rows sharing a TaskName
// assigned to more than one distinct employee. Type and priority come from the
// first member; status is left blank because members may differ.
type TaskGroup struct {
	ID         string `json:"id"` // member IDs joined with ","
	TaskName   string `json:"taskName"`
	AssignedTo string `json:"assignedTo"` // member assignees joined with ", "
	TaskType   string `json:"taskType,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Members    []Task `json:"members"`
}

// ChallengeProgress is the evaluated state of one team challenge.
type ChallengeProgress struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Target      int     `json:"target"`
	Current     int     `json:"current"`
	Percent     float64 `json:"percent"`
	Complete    bool    `json:"complete"`
	Reward      string  `json:"reward,omitempty"`
}

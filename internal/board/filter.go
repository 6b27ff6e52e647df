package board

import (
	"sort"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// TaskFilter selects tasks by exact field match. Zero-value fields match
// everything, so filters compose without special cases.
type TaskFilter struct {
	AssignedTo string
	Status     string
	TaskType   string
}

func (f TaskFilter) matches(t models.Task) bool {
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.TaskType != "" && t.TaskType != f.TaskType {
		return false
	}
	return true
}

// FilterTasks returns the tasks matching f, sorted by Timestamp descending
// (most recent first). The store guarantees no particular order, so the sort
// is applied unconditionally. The input slice is not modified.
func FilterTasks(tasks []models.Task, f TaskFilter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// PendingFor returns an employee's pending tasks, newest first. This is the
// employee dashboard's task list.
func PendingFor(tasks []models.Task, assignee string) []models.Task {
	return FilterTasks(tasks, TaskFilter{AssignedTo: assignee, Status: models.StatusPending})
}

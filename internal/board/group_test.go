package board

import (
	"testing"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

func TestPartitionTasks(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		{ID: "1", TaskName: "Audit", AssignedTo: "alice", Status: models.StatusPending, TaskType: models.TaskTypeBAU, Priority: models.PriorityHigh},
		{ID: "2", TaskName: "Audit", AssignedTo: "bob", Status: models.StatusCompleted, TaskType: models.TaskTypeBAU, Priority: models.PriorityHigh},
		{ID: "3", TaskName: "Fix bug", AssignedTo: "alice", Status: models.StatusPending},
	}

	individual, groups := PartitionTasks(tasks)
	if len(individual) != 1 || individual[0].ID != "3" {
		t.Fatalf("individual = %+v, want only task 3", individual)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %+v, want one group", groups)
	}
	g := groups[0]
	if g.TaskName != "Audit" || g.ID != "1,2" || g.AssignedTo != "alice, bob" {
		t.Fatalf("group summary = %+v", g)
	}
	if g.TaskType != models.TaskTypeBAU || g.Priority != models.PriorityHigh {
		t.Fatalf("group should take type/priority from first member, got %+v", g)
	}
	// Members keep their own status; the aggregate has none.
	if len(g.Members) != 2 || g.Members[0].Status != models.StatusPending || g.Members[1].Status != models.StatusCompleted {
		t.Fatalf("group members = %+v", g.Members)
	}
}

// Exactly-one partition membership, and distinct-assignee (not row) counting.
func TestPartitionTasksEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		tasks          []models.Task
		wantIndividual int
		wantGroups     int
	}{
		{"empty", nil, 0, 0},
		{"single assignee", []models.Task{
			{ID: "1", TaskName: "A", AssignedTo: "alice"},
		}, 1, 0},
		{"two assignees", []models.Task{
			{ID: "1", TaskName: "A", AssignedTo: "alice"},
			{ID: "2", TaskName: "A", AssignedTo: "bob"},
		}, 0, 1},
		{"duplicate rows same assignee stay individual", []models.Task{
			{ID: "1", TaskName: "A", AssignedTo: "alice"},
			{ID: "2", TaskName: "A", AssignedTo: "alice"},
		}, 2, 0},
		{"degenerate broadcast marker is not a group", []models.Task{
			{ID: "1", TaskName: "A", AssignedTo: models.AssignAll},
		}, 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			individual, groups := PartitionTasks(tc.tasks)
			if len(individual) != tc.wantIndividual || len(groups) != tc.wantGroups {
				t.Fatalf("got %d individual / %d groups, want %d / %d",
					len(individual), len(groups), tc.wantIndividual, tc.wantGroups)
			}
			// Every input row appears in exactly one partition.
			total := len(individual)
			for _, g := range groups {
				total += len(g.Members)
			}
			if total != len(tc.tasks) {
				t.Fatalf("partition lost or duplicated rows: %d in, %d out", len(tc.tasks), total)
			}
		})
	}
}

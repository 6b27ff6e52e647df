package board

import (
	"sort"
	"strings"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// PartitionTasks splits tasks into individual tasks and broadcast groups.
// Rows are grouped by TaskName; a name assigned to more than one distinct
// employee forms a group (all rows kept, one per assignee, each with its own
// status), anything else is individual. Distinct-assignee count decides, not
// row count: duplicate rows for the same assignee stay individual.
//
// Every input task lands in exactly one partition. Group and member order is
// deterministic: groups by name, members and individuals by store ID.
func PartitionTasks(tasks []models.Task) (individual []models.Task, groups []models.TaskGroup) {
	byName := make(map[string][]models.Task)
	order := make([]string, 0)
	for _, t := range tasks {
		if _, seen := byName[t.TaskName]; !seen {
			order = append(order, t.TaskName)
		}
		byName[t.TaskName] = append(byName[t.TaskName], t)
	}
	sort.Strings(order)

	individual = make([]models.Task, 0, len(tasks))
	for _, name := range order {
		rows := byName[name]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

		assignees := make(map[string]struct{}, len(rows))
		for _, t := range rows {
			assignees[t.AssignedTo] = struct{}{}
		}
		if len(assignees) > 1 {
			groups = append(groups, summarize(name, rows))
			continue
		}
		individual = append(individual, rows...)
	}
	return individual, groups
}

// summarize derives the synthetic aggregate record for a broadcast group.
// TaskType and Priority come from the first member (assumed homogeneous,
// not validated); status is omitted because members may differ.
func summarize(name string, rows []models.Task) models.TaskGroup {
	ids := make([]string, 0, len(rows))
	assignees := make([]string, 0, len(rows))
	for _, t := range rows {
		ids = append(ids, t.ID)
		assignees = append(assignees, t.AssignedTo)
	}
	return models.TaskGroup{
		ID:         strings.Join(ids, ","),
		TaskName:   name,
		AssignedTo: strings.Join(assignees, ", "),
		TaskType:   rows[0].TaskType,
		Priority:   rows[0].Priority,
		Members:    rows,
	}
}

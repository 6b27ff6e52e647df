package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/board"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/config"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
	"github.com/spf13/cobra"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskStatusCmd())
	cmd.AddCommand(newTaskCompleteCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var (
		name       string
		assignTo   string
		employees  []string
		assignedBy string
		taskType   string
		difficulty string
		priority   string
		estHours   float64
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task (--assign-to a name, all, or selected with --employees)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || assignTo == "" {
				return errors.New("--name and --assign-to are required")
			}
			ctx := cmd.Context()
			home := config.MustHomeFrom(ctx)
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			targets, err := resolveTargets(ctx, st, assignTo, employees)
			if err != nil {
				return err
			}
			for _, target := range targets {
				id, err := st.CreateTask(ctx, models.Task{
					TaskName:      name,
					AssignedTo:    target,
					AssignedBy:    assignedBy,
					TaskType:      taskType,
					Difficulty:    difficulty,
					Priority:      priority,
					EstimatedTime: estHours,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %q for %s (%s)\n", name, target, id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&assignTo, "assign-to", "", "Assignee name, or all, or selected")
	cmd.Flags().StringSliceVar(&employees, "employees", nil, "Target employees for --assign-to selected")
	cmd.Flags().StringVar(&assignedBy, "assigned-by", "", "Assigning employer name")
	cmd.Flags().StringVar(&taskType, "type", "", "Task type (BAU, Challenge, Ad Hoc, Project-Based)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty (easy, medium, hard)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, medium, high)")
	cmd.Flags().Float64Var(&estHours, "estimated-hours", 0, "Estimated effort in hours")
	return cmd
}

func resolveTargets(ctx context.Context, st store.Store, assignTo string, employees []string) ([]string, error) {
	switch assignTo {
	case models.AssignAll:
		all, err := st.ListEmployees(ctx)
		if err != nil {
			return nil, err
		}
		if len(all) == 0 {
			return nil, errors.New("no employees to assign")
		}
		names := make([]string, 0, len(all))
		for _, e := range all {
			names = append(names, e.Name)
		}
		return names, nil
	case models.AssignSelected:
		if len(employees) == 0 {
			return nil, errors.New("--employees is required with --assign-to selected")
		}
		for _, name := range employees {
			if _, err := st.GetEmployeeByName(ctx, name); err != nil {
				return nil, fmt.Errorf("unknown employee %q", name)
			}
		}
		return employees, nil
	default:
		e, err := st.GetEmployeeByName(ctx, assignTo)
		if err != nil {
			return nil, fmt.Errorf("unknown employee %q", assignTo)
		}
		return []string{e.Name}, nil
	}
}

func newTaskListCmd() *cobra.Command {
	var (
		assignedTo string
		status     string
		taskType   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (newest first, optionally filtered)",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := config.MustHomeFrom(cmd.Context())
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			tasks, err := st.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			tasks = board.FilterTasks(tasks, board.TaskFilter{
				AssignedTo: assignedTo,
				Status:     status,
				TaskType:   taskType,
			})
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			for _, t := range tasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- [%s] %s -> %s (%s)\n", t.Status, t.TaskName, t.AssignedTo, t.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Filter by assignee")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&taskType, "type", "", "Filter by task type")
	return cmd
}

func newTaskStatusCmd() *cobra.Command {
	var (
		id     string
		status string
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Set task status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || status == "" {
				return errors.New("--id and --status are required")
			}
			if status != models.StatusPending && status != models.StatusInProgress && status != models.StatusCompleted {
				return errors.New("status must be pending, in-progress, or completed")
			}
			home := config.MustHomeFrom(cmd.Context())
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.UpdateTaskStatus(cmd.Context(), id, status, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s status set to %q\n", id, status)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Task ID")
	cmd.Flags().StringVar(&status, "status", "", "New status (pending, in-progress, completed)")
	return cmd
}

func newTaskCompleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark a task completed and award points to the assignee",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return errors.New("--id is required")
			}
			ctx := cmd.Context()
			home := config.MustHomeFrom(ctx)
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			task, err := st.GetTask(ctx, id)
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			if err := st.UpdateTaskStatus(ctx, id, models.StatusCompleted, &now); err != nil {
				return err
			}
			points := models.PointsFor(task.Difficulty)
			if points > 0 {
				if _, err := st.CreatePointEntry(ctx, models.PointEntry{
					UserName:  task.AssignedTo,
					Points:    points,
					TaskID:    id,
					TaskName:  task.TaskName,
					Timestamp: now,
				}); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %q completed; %s earned %d points\n", task.TaskName, task.AssignedTo, points)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Task ID")
	return cmd
}

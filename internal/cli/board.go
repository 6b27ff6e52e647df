package cli

import (
	"fmt"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/board"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/config"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	var window string
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show a summary of the board: headcount, task counts, top scorers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			home := config.MustHomeFrom(ctx)
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			employees, err := st.ListEmployees(ctx)
			if err != nil {
				return err
			}
			tasks, err := st.ListTasks(ctx)
			if err != nil {
				return err
			}
			points, err := st.ListPoints(ctx)
			if err != nil {
				return err
			}

			snap := board.Snapshot{Employees: employees, Tasks: tasks, Points: points}
			o := snap.Overview(window, models.DefaultLeaderboardLimit, time.Now())

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Employees: %d\n", o.Employees)
			_, _ = fmt.Fprintf(out, "Tasks: %d pending, %d in progress, %d completed\n",
				o.TasksByStatus[models.StatusPending],
				o.TasksByStatus[models.StatusInProgress],
				o.TasksByStatus[models.StatusCompleted])
			if len(o.TopScorers) == 0 {
				_, _ = fmt.Fprintln(out, "No points yet.")
				return nil
			}
			_, _ = fmt.Fprintf(out, "Top scorers (%s):\n", window)
			for _, e := range o.TopScorers {
				_, _ = fmt.Fprintf(out, "  %d. %s - %d points\n", e.Rank, e.Name, e.Points)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&window, "window", models.WindowAllTime, "Window: week, month, or allTime")
	return cmd
}

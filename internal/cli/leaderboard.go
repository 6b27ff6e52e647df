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

func newLeaderboardCmd() *cobra.Command {
	var (
		window string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the points leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := config.MustHomeFrom(cmd.Context())
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			entries, err := st.ListPoints(cmd.Context())
			if err != nil {
				return err
			}
			ranked := board.Leaderboard(entries, window, limit, time.Now())
			if len(ranked) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No points yet.")
				return nil
			}
			for _, e := range ranked {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s - %d points\n", e.Rank, e.Name, e.Points)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&window, "window", models.WindowAllTime, "Window: week, month, or allTime")
	cmd.Flags().IntVar(&limit, "limit", models.DefaultLeaderboardLimit, "Number of entries to show")
	return cmd
}

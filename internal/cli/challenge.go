package cli

import (
	"fmt"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/board"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/config"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store"
	"github.com/spf13/cobra"
)

func newChallengesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "Show this week's team challenge progress",
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
			progress := board.EvaluateChallenges(board.DefaultChallenges(), tasks, time.Now())
			for _, p := range progress {
				marker := " "
				if p.Complete {
					marker = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %d/%d (%.0f%%) reward: %s\n",
					marker, p.Title, p.Current, p.Target, p.Percent, p.Reward)
			}
			return nil
		},
	}
	return cmd
}

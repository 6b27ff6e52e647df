package cli

import (
	"os"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/config"
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	var homeOverride string

	cmd := &cobra.Command{
		Use:          "taskboard",
		Short:        "Taskboard: employee task dashboard with points and challenges",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			home, err := config.ResolveHome(homeOverride)
			if err != nil {
				return err
			}
			cmd.SetContext(config.WithHome(cmd.Context(), home))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&homeOverride, "home", "", "Override Taskboard home directory (default: ~/.taskboard, env: TASKBOARD_HOME)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEmployeeCmd())
	cmd.AddCommand(newTaskCmd())
	cmd.AddCommand(newLeaderboardCmd())
	cmd.AddCommand(newBoardCmd())
	cmd.AddCommand(newChallengesCmd())
	cmd.AddCommand(newApikeyCmd())

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}

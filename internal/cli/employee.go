package cli

import (
	"errors"
	"fmt"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/config"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/store"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
	"github.com/spf13/cobra"
)

func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}
	cmd.AddCommand(newEmployeeAddCmd())
	cmd.AddCommand(newEmployeeListCmd())
	cmd.AddCommand(newEmployeeRemoveCmd())
	return cmd
}

func newEmployeeAddCmd() *cobra.Command {
	var (
		name       string
		department string
		email      string
		joinDate   string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			home := config.MustHomeFrom(cmd.Context())
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			id, err := st.CreateEmployee(cmd.Context(), models.Employee{
				Name:       name,
				Department: department,
				Email:      email,
				JoinDate:   joinDate,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created employee %q (%s)\n", name, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Employee name")
	cmd.Flags().StringVar(&department, "department", "", "Department (default Development)")
	cmd.Flags().StringVar(&email, "email", "", "Email for assignment notifications")
	cmd.Flags().StringVar(&joinDate, "join-date", "", "Join date (YYYY-MM-DD)")
	return cmd
}

func newEmployeeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := config.MustHomeFrom(cmd.Context())
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			employees, err := st.ListEmployees(cmd.Context())
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No employees.")
				return nil
			}
			for _, e := range employees {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s (%s) %s\n", e.Name, e.Department, e.ID)
			}
			return nil
		},
	}
	return cmd
}

func newEmployeeRemoveCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an employee by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return errors.New("--id is required")
			}
			home := config.MustHomeFrom(cmd.Context())
			st, err := store.Open(home)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.DeleteEmployee(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Employee ID")
	return cmd
}

package cli

import (
	"strings"

	"secretary-cli/internal/api"
	"secretary-cli/internal/dashboard"
	"secretary-cli/internal/model"

	"github.com/spf13/cobra"
)

func newDepartmentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "departments",
		Aliases: []string{"department", "dept"},
		Short:   "Department commands",
	}
	cmd.AddCommand(newDepartmentsListCmd(app))
	cmd.AddCommand(newDepartmentsCreateCmd(app))
	cmd.AddCommand(newDepartmentsUpdateCmd(app))
	cmd.AddCommand(newDepartmentsDeleteCmd(app))
	return cmd
}

func newDepartmentsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.client().ListDepartments(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if ds == nil {
				ds = []model.Department{}
			}
			return writeOut(cmd, app, map[string]any{"data": ds})
		},
	}
}

func newDepartmentsCreateCmd(app *App) *cobra.Command {
	var in api.DepartmentInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a department",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = strings.TrimSpace(in.Name)
			env, err := app.client().CreateDepartment(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgDepartmentCreated)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Department name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newDepartmentsUpdateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <department-id>",
		Short: "Update a department (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("department", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c := app.client()
			ds, err := c.ListDepartments(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, ok := model.FindDepartment(ds, id)
			if !ok {
				return writeErr(cmd, &dashboard.NotFoundError{Kind: dashboard.KindDepartment, ID: id})
			}
			in := api.DepartmentInput{Name: cur.Name, Description: cur.Description}
			if cmd.Flags().Changed("name") {
				in.Name = strings.TrimSpace(name)
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}
			env, err := c.UpdateDepartment(cmd.Context(), id, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgDepartmentUpdated)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Department name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func newDepartmentsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <department-id>",
		Short: "Delete a department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("department", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errConfirmRequired(dashboard.ConfirmDeleteDepartment))
			}
			env, err := app.client().DeleteDepartment(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgDepartmentDeleted)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

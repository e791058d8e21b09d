package cli

import (
	"errors"
	"strings"

	"secretary-cli/internal/api"
	"secretary-cli/internal/dashboard"
	"secretary-cli/internal/model"

	"github.com/spf13/cobra"
)

func newRoomsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rooms",
		Aliases: []string{"room"},
		Short:   "Meeting room commands",
	}
	cmd.AddCommand(newRoomsListCmd(app))
	cmd.AddCommand(newRoomsCreateCmd(app))
	cmd.AddCommand(newRoomsUpdateCmd(app))
	cmd.AddCommand(newRoomsDeleteCmd(app))
	return cmd
}

type roomFlags struct {
	name        string
	description string
	capacity    int
	location    string
}

func (f *roomFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Room name")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().IntVar(&f.capacity, "capacity", 0, "Seats (0 clears the value)")
	cmd.Flags().StringVar(&f.location, "location", "", "Location")
}

// apply overlays the flags the user set on in.
func (f *roomFlags) apply(cmd *cobra.Command, in *api.RoomInput) error {
	if cmd.Flags().Changed("name") {
		in.Name = strings.TrimSpace(f.name)
	}
	if cmd.Flags().Changed("description") {
		in.Description = f.description
	}
	if cmd.Flags().Changed("location") {
		in.Location = strings.TrimSpace(f.location)
	}
	if cmd.Flags().Changed("capacity") {
		switch {
		case f.capacity < 0:
			return errors.New("--capacity must not be negative")
		case f.capacity == 0:
			in.Capacity = nil
		default:
			n := f.capacity
			in.Capacity = &n
		}
	}
	return nil
}

func newRoomsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List meeting rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := app.client().ListRooms(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if rs == nil {
				rs = []model.Room{}
			}
			return writeOut(cmd, app, map[string]any{"data": rs})
		},
	}
}

func newRoomsCreateCmd(app *App) *cobra.Command {
	var f roomFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a meeting room",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in api.RoomInput
			if err := f.apply(cmd, &in); err != nil {
				return writeErr(cmd, err)
			}
			env, err := app.client().CreateRoom(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgRoomCreated)
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRoomsUpdateCmd(app *App) *cobra.Command {
	var f roomFlags

	cmd := &cobra.Command{
		Use:   "update <room-id>",
		Short: "Update a meeting room (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("room", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c := app.client()
			rs, err := c.ListRooms(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, ok := model.FindRoom(rs, id)
			if !ok {
				return writeErr(cmd, &dashboard.NotFoundError{Kind: dashboard.KindRoom, ID: id})
			}
			in := api.RoomInput{Name: cur.Name, Description: cur.Description, Capacity: cur.Capacity, Location: cur.Location}
			if err := f.apply(cmd, &in); err != nil {
				return writeErr(cmd, err)
			}
			env, err := c.UpdateRoom(cmd.Context(), id, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgRoomUpdated)
		},
	}

	f.register(cmd)
	return cmd
}

func newRoomsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <room-id>",
		Short: "Delete a meeting room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("room", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errConfirmRequired(dashboard.ConfirmDeleteRoom))
			}
			env, err := app.client().DeleteRoom(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgRoomDeleted)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"secretary-cli/internal/api"
	"secretary-cli/internal/dashboard"
	"secretary-cli/internal/handoff"
	"secretary-cli/internal/model"
	"secretary-cli/internal/publish"
	"secretary-cli/internal/view"

	"github.com/spf13/cobra"
)

func newMeetingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meetings",
		Aliases: []string{"meeting", "mtg"},
		Short:   "Meeting commands",
	}
	cmd.AddCommand(newMeetingsListCmd(app))
	cmd.AddCommand(newMeetingsRecentCmd(app))
	cmd.AddCommand(newMeetingsShowCmd(app))
	cmd.AddCommand(newMeetingsCreateCmd(app))
	cmd.AddCommand(newMeetingsUpdateCmd(app))
	cmd.AddCommand(newMeetingsDeleteCmd(app))
	cmd.AddCommand(newMeetingsStatusCmd(app))
	cmd.AddCommand(newMeetingsJoinCmd(app))
	cmd.AddCommand(newMeetingsHandoffCmd(app))
	return cmd
}

// readController is a controller without handoff wiring, for commands that
// only read caches or change status.
func readController(app *App) *dashboard.Controller {
	return dashboard.New(app.client(), dashboard.Options{Logger: app.log()})
}

type filterFlags struct {
	status     string
	department string
	room       string
	date       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", "", "Filter by status (SCHEDULED|ONGOING|FINISHED)")
	cmd.Flags().StringVar(&f.department, "department", "", "Filter by department name")
	cmd.Flags().StringVar(&f.room, "room", "", "Filter by room name")
	cmd.Flags().StringVar(&f.date, "date", "", "Filter by start date (YYYY-MM-DD)")
}

func (f *filterFlags) filter() (dashboard.Filter, error) {
	out := dashboard.Filter{
		Department: strings.TrimSpace(f.department),
		Room:       strings.TrimSpace(f.room),
		Date:       strings.TrimSpace(f.date),
	}
	if s := strings.TrimSpace(f.status); s != "" {
		st, err := model.ParseStatus(s)
		if err != nil {
			return dashboard.Filter{}, err
		}
		out.Status = st
	}
	if err := out.Validate(); err != nil {
		return dashboard.Filter{}, err
	}
	return out, nil
}

func newMeetingsListCmd(app *App) *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meetings (filters combine with AND)",
		RunE: func(cmd *cobra.Command, args []string) error {
			flt, err := f.filter()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl := readController(app)
			if err := ctrl.LoadMeetings(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ctrl.ApplyFilter(flt)})
		},
	}

	f.register(cmd)
	return cmd
}

func newMeetingsRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Most recent meetings by start time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return writeErr(cmd, errors.New("--limit must be positive"))
			}
			ms, err := app.client().ListMeetings(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": view.Recent(ms, limit)})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", view.RecentLimit, "Number of meetings")
	return cmd
}

func newMeetingsShowCmd(app *App) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "show <meeting-id>",
		Short: "Show one meeting (accepts 42 or MTG-42)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("meeting", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := app.client().GetMeeting(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if m.ID == 0 {
				return writeErr(cmd, &dashboard.NotFoundError{Kind: dashboard.KindMeeting, ID: id})
			}
			if markdown {
				_, err := io.WriteString(cmd.OutOrStdout(), publish.RenderMeetingMarkdown(m))
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"data":   m,
				"code":   handoff.MeetingCode(m.ID),
				"_hints": []string{fmt.Sprintf("secretary meetings join %d", m.ID)},
			})
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print as Markdown instead of structured output")
	return cmd
}

type meetingFlags struct {
	title       string
	description string
	department  string
	room        string
	chairman    string
	secretary   string
	start       string
	end         string
	status      string
}

func (f *meetingFlags) register(cmd *cobra.Command, withStatus bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.department, "department", "", "Department name")
	cmd.Flags().StringVar(&f.room, "room", "", "Room name")
	cmd.Flags().StringVar(&f.chairman, "chairman", "", "Chairman")
	cmd.Flags().StringVar(&f.secretary, "secretary", "", "Secretary")
	cmd.Flags().StringVar(&f.start, "start", "", "Start time (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&f.end, "end", "", "End time (YYYY-MM-DDTHH:MM)")
	if withStatus {
		cmd.Flags().StringVar(&f.status, "status", "", "Status (SCHEDULED|ONGOING|FINISHED)")
	}
}

// apply overlays the flags the user set on in.
func (f *meetingFlags) apply(cmd *cobra.Command, in *api.MeetingInput) error {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("title", &in.Title, strings.TrimSpace(f.title))
	set("description", &in.Description, f.description)
	set("department", &in.Department, strings.TrimSpace(f.department))
	set("room", &in.Room, strings.TrimSpace(f.room))
	set("chairman", &in.Chairman, strings.TrimSpace(f.chairman))
	set("secretary", &in.Secretary, strings.TrimSpace(f.secretary))

	for _, tf := range []struct {
		name string
		v    string
		dst  *model.LocalTime
	}{{"start", f.start, &in.StartTime}, {"end", f.end, &in.EndTime}} {
		if !cmd.Flags().Changed(tf.name) {
			continue
		}
		if strings.TrimSpace(tf.v) == "" {
			*tf.dst = model.LocalTime{}
			continue
		}
		t, err := model.ParseLocalTime(tf.v)
		if err != nil {
			return fmt.Errorf("--%s: %w", tf.name, err)
		}
		*tf.dst = t
	}

	if cmd.Flags().Lookup("status") != nil && cmd.Flags().Changed("status") {
		st, err := model.ParseStatus(f.status)
		if err != nil {
			return err
		}
		in.Status = st
	}
	return nil
}

func meetingInputFrom(m model.Meeting) api.MeetingInput {
	return api.MeetingInput{
		Title:       m.Title,
		Description: m.Description,
		Department:  m.Department,
		Room:        m.Room,
		Chairman:    m.Chairman,
		Secretary:   m.Secretary,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Status:      m.Status,
	}
}

func newMeetingsCreateCmd(app *App) *cobra.Command {
	var f meetingFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a meeting (the server assigns the initial status)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in api.MeetingInput
			if err := f.apply(cmd, &in); err != nil {
				return writeErr(cmd, err)
			}
			env, err := app.client().CreateMeeting(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgMeetingCreated)
		},
	}

	f.register(cmd, false)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newMeetingsUpdateCmd(app *App) *cobra.Command {
	var f meetingFlags

	cmd := &cobra.Command{
		Use:   "update <meeting-id>",
		Short: "Update a meeting (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("meeting", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c := app.client()
			cur, err := c.GetMeeting(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cur.ID == 0 {
				return writeErr(cmd, &dashboard.NotFoundError{Kind: dashboard.KindMeeting, ID: id})
			}
			in := meetingInputFrom(cur)
			if err := f.apply(cmd, &in); err != nil {
				return writeErr(cmd, err)
			}
			env, err := c.UpdateMeeting(cmd.Context(), id, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgMeetingUpdated)
		},
	}

	f.register(cmd, true)
	return cmd
}

func newMeetingsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <meeting-id>",
		Short: "Delete a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("meeting", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errConfirmRequired(dashboard.ConfirmDeleteMeeting))
			}
			env, err := app.client().DeleteMeeting(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEnvelope(cmd, app, env, dashboard.MsgMeetingDeleted)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

func newMeetingsStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <meeting-id>",
		Short: "Advance a meeting to the next status (SCHEDULED -> ONGOING -> FINISHED -> SCHEDULED)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("meeting", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl := readController(app)
			if err := ctrl.LoadMeetings(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			prev, err := ctrl.Meeting(id)
			if err != nil {
				return writeErr(cmd, err)
			}
			next, err := ctrl.ChangeStatus(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"id":       id,
					"previous": prev.Status,
					"status":   next,
				},
				"message": dashboard.MsgStatusChanged(next),
			})
		},
	}
}

func newMeetingsJoinCmd(app *App) *cobra.Command {
	var noOpen bool

	cmd := &cobra.Command{
		Use:   "join <meeting-id>",
		Short: "Store the meeting handoff record and open the meeting-room page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("meeting", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, err := app.controller(cmd.Context(), app.navigator(!noOpen, cmd.ErrOrStderr()))
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ctrl.LoadMeetings(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			info, err := ctrl.JoinMeetingRoom(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data":   info,
				"key":    handoff.StorageKey,
				"target": handoff.NavigationTarget,
			})
		},
	}

	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Do not launch a browser; print the meeting-room URL to stderr")
	return cmd
}

func newMeetingsHandoffCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "handoff",
		Short: "Print the stored meetingInfo handoff record",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.openStorage(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			info, ok, err := handoff.Read(cmd.Context(), st)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, fmt.Errorf("no %s stored (run: secretary meetings join <id>)", handoff.StorageKey))
			}
			return writeOut(cmd, app, map[string]any{"data": info})
		},
	}
}

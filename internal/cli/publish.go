package cli

import (
	"io"
	"strings"

	"secretary-cli/internal/dashboard"
	"secretary-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir, title string
	var html, ics, overwrite bool
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the meeting agenda as Markdown (and optionally HTML)",
		Long: strings.TrimSpace(`
Without --to the agenda Markdown is printed to stdout. With --to DIR it writes
DIR/agenda.md plus DIR/meetings/MTG-<id>.md, .html renderings with --html and
an iCalendar DIR/agenda.ics with --ics.
Existing files are kept unless --overwrite is passed.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			flt, err := f.filter()
			if err != nil {
				return writeErr(cmd, err)
			}
			ms, err := app.client().ListMeetings(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ms = dashboard.FilterMeetings(ms, flt)
			opt := publish.RenderOptions{Title: title, Subtitle: filterSubtitle(flt)}

			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), publish.RenderAgendaMarkdown(ms, opt))
				return err
			}
			res, err := publish.WriteAgenda(ms, toDir, publish.WriteOptions{
				RenderOptions: opt,
				HTML:          html,
				ICS:           ics,
				Overwrite:     overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().StringVar(&title, "title", "", "Agenda title")
	cmd.Flags().BoolVar(&html, "html", false, "Also write HTML files")
	cmd.Flags().BoolVar(&ics, "ics", false, "Also write agenda.ics")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	f.register(cmd)
	return cmd
}

func filterSubtitle(f dashboard.Filter) string {
	var parts []string
	if f.Status != "" {
		parts = append(parts, "Trạng thái: "+f.Status.Label())
	}
	if f.Department != "" {
		parts = append(parts, "Phòng ban: "+f.Department)
	}
	if f.Room != "" {
		parts = append(parts, "Phòng họp: "+f.Room)
	}
	if f.Date != "" {
		parts = append(parts, "Ngày: "+f.Date)
	}
	return strings.Join(parts, " · ")
}

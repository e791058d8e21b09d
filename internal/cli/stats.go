package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var date, month string
	var year int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Meeting statistics (overall, or for one date, month or year)",
		Example: strings.TrimSpace(`
  secretary stats
  secretary stats --date 2024-05-01
  secretary stats --month 2024-05
  secretary stats --year 2024
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.client()
			ctx := cmd.Context()
			switch {
			case cmd.Flags().Changed("date"):
				d, err := time.Parse("2006-01-02", strings.TrimSpace(date))
				if err != nil {
					return writeErr(cmd, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date))
				}
				st, err := c.StatisticsByDate(ctx, d.Format("2006-01-02"))
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": st, "period": map[string]any{"date": d.Format("2006-01-02")}})
			case cmd.Flags().Changed("month"):
				m, err := time.Parse("2006-01", strings.TrimSpace(month))
				if err != nil {
					return writeErr(cmd, fmt.Errorf("invalid --month %q (expected YYYY-MM)", month))
				}
				st, err := c.StatisticsByMonth(ctx, m.Year(), int(m.Month()))
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": st, "period": map[string]any{"year": m.Year(), "month": int(m.Month())}})
			case cmd.Flags().Changed("year"):
				if year < 1 || year > 9999 {
					return writeErr(cmd, fmt.Errorf("invalid --year %d", year))
				}
				st, err := c.StatisticsByYear(ctx, year)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": st, "period": map[string]any{"year": year}})
			}
			st, err := c.Statistics(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "One day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&month, "month", "", "One month (YYYY-MM)")
	cmd.Flags().IntVar(&year, "year", 0, "One year")
	cmd.MarkFlagsMutuallyExclusive("date", "month", "year")
	return cmd
}

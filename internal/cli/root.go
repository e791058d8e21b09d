package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"secretary-cli/internal/api"
	"secretary-cli/internal/browser"
	"secretary-cli/internal/dashboard"
	"secretary-cli/internal/format"
	"secretary-cli/internal/logging"
	"secretary-cli/internal/store"
	"secretary-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL      string
	WebURL      string
	StoragePath string
	PrettyJSON  bool
	Format      string
	LogFile     string
	LogLevel    string

	cfg     *store.GlobalConfig
	logger  *slog.Logger
	closers []func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "secretary",
		Short:        "Meeting secretary admin CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  secretary

  # Scriptable commands
  secretary meetings list --status ONGOING
  secretary departments create --name "Phòng Kỹ thuật"

  # Direct meeting lookup (shortcut for: secretary meetings show 42)
  secretary MTG-42
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal; its logs only go to --log-file.
		return app.setupLogging(cmd, cmd == cmd.Root())
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("SECRETARY_API_URL", ""), "Backend API base URL (default "+api.DefaultBaseURL+")")
	cmd.PersistentFlags().StringVar(&app.WebURL, "web-url", envOr("SECRETARY_WEB_URL", ""), "Base URL serving meeting-room.html (default: api-url without /api)")
	cmd.PersistentFlags().StringVar(&app.StoragePath, "storage", envOr("SECRETARY_STORAGE", ""), "Path to the shared storage file read by the meeting-room page")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SECRETARY_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("SECRETARY_LOG_FILE", ""), "Append logs to this file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("SECRETARY_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newDepartmentsCmd(app))
	cmd.AddCommand(newRoomsCmd(app))
	cmd.AddCommand(newMeetingsCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	cfg, err := app.config()
	if err != nil {
		return writeErr(cmd, err)
	}
	ctrl, err := app.controller(cmd.Context(), app.navigator(true, io.Discard))
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(cmd.Context(), ctrl, tui.Options{Profile: cfg.TUIProfile()})
}

func (app *App) setupLogging(cmd *cobra.Command, interactive bool) error {
	level, err := logging.ParseLevel(app.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	var w io.Writer = cmd.ErrOrStderr()
	if interactive {
		w = io.Discard
	}
	if p := strings.TrimSpace(app.LogFile); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("open log file: %w", err))
		}
		app.closers = append(app.closers, f.Close)
		w = f
	}
	app.logger = logging.New(w, level)
	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), app.logger))
	return nil
}

func (app *App) close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i]())
	}
	app.closers = nil
	return errors.Join(errs...)
}

// config loads ~/.secretary/config.yaml once per invocation.
func (app *App) config() (*store.GlobalConfig, error) {
	if app.cfg != nil {
		return app.cfg, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	app.cfg = cfg
	return cfg, nil
}

// Resolution order for every setting: flag, env (folded into the flag
// default), config file, built-in default.

func (app *App) apiURL() string {
	if v := strings.TrimSpace(app.APIURL); v != "" {
		return v
	}
	if cfg, err := app.config(); err == nil && cfg.APIURL != "" {
		return cfg.APIURL
	}
	return api.DefaultBaseURL
}

func (app *App) webURL() string {
	if v := strings.TrimSpace(app.WebURL); v != "" {
		return v
	}
	if cfg, err := app.config(); err == nil && cfg.WebURL != "" {
		return cfg.WebURL
	}
	return browser.WebURLFromAPI(app.apiURL())
}

func (app *App) storagePath() (string, error) {
	if v := strings.TrimSpace(app.StoragePath); v != "" {
		return v, nil
	}
	if cfg, err := app.config(); err == nil && cfg.StoragePath != "" {
		return cfg.StoragePath, nil
	}
	return store.DefaultStoragePath()
}

func (app *App) timeout() time.Duration {
	if cfg, err := app.config(); err == nil && cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return api.DefaultTimeout
}

func (app *App) openBrowser() bool {
	if cfg, err := app.config(); err == nil && cfg.OpenBrowser != nil {
		return *cfg.OpenBrowser
	}
	return true
}

func (app *App) log() *slog.Logger {
	if app.logger == nil {
		return logging.New(io.Discard, slog.LevelError)
	}
	return app.logger
}

func (app *App) client() *api.Client {
	return api.New(app.apiURL(), api.WithTimeout(app.timeout()), api.WithLogger(app.log()))
}

func (app *App) openStorage(ctx context.Context) (*store.LocalStorage, error) {
	path, err := app.storagePath()
	if err != nil {
		return nil, err
	}
	s, err := store.OpenLocalStorage(ctx, path)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, s.Close)
	return s, nil
}

// navigator opens the system browser unless disabled, in which case the
// resolved meeting-room URL is printed to w.
func (app *App) navigator(open bool, w io.Writer) browser.Navigator {
	if open && app.openBrowser() {
		return browser.NewSystemNavigator(app.webURL())
	}
	return browser.PrintNavigator{BaseURL: app.webURL(), Out: w}
}

// controller builds a dashboard controller with shared storage and nav
// attached.
func (app *App) controller(ctx context.Context, nav browser.Navigator) (*dashboard.Controller, error) {
	st, err := app.openStorage(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.New(app.client(), dashboard.Options{
		Navigator: nav,
		Storage:   st,
		Logger:    app.log(),
	}), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

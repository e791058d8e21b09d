package cli

import (
	"secretary-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change ~/.secretary/config.yaml",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored config and the effective values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			storage, err := app.storagePath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": cfg,
				"path": path,
				"effective": map[string]any{
					"apiUrl":      app.apiURL(),
					"webUrl":      app.webURL(),
					"storagePath": storage,
					"timeout":     app.timeout().String(),
					"openBrowser": app.openBrowser(),
					"tuiProfile":  cfg.TUIProfile(),
				},
			})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set one config key (an empty value clears it)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: store.ConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
}

// Package commands is the folio command line. With no subcommand it opens
// the TUI; the subcommands run one operation against the books API and
// exit.
package commands

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/app"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	ConfigPath string
	APIURL     string
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{ConfigPath: o.ConfigPath, APIURL: o.APIURL}
}

// env wires a controller for a one-shot command. Logs go to stderr and
// stay quiet below warn so they do not interleave with command output.
func (o *rootOptions) env(cmd *cobra.Command) (*app.Env, error) {
	cfg, err := app.LoadConfig(o.appOptions())
	if err != nil {
		return nil, err
	}
	return app.NewEnv(cfg, app.NewLogger(cmd.ErrOrStderr(), max(slog.LevelWarn, cfg.LogLevel)))
}

func New() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Keep a books collection in sync with a remote books API.",
		Long: `folio lists, adds, edits and deletes books stored behind a books HTTP API.

Run without a subcommand to open the interactive UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), ro.appOptions())
		},
	}
	cmd.SetOut(color.Output)

	cmd.PersistentFlags().StringVar(&ro.ConfigPath, "config", "", "Config file path (default ~/.config/folio/config.toml).")
	cmd.PersistentFlags().StringVar(&ro.APIURL, "api", "", "Books API root, overrides api_url from the config file.")

	addCommands(cmd, ro)
	return cmd
}

func addCommands(topLevel *cobra.Command, ro *rootOptions) {
	addList(topLevel, ro)
	addAdd(topLevel, ro)
	addEdit(topLevel, ro)
	addRemove(topLevel, ro)
	addLogs(topLevel, ro)
	addVersion(topLevel)
}

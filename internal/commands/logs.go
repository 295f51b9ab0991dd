package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/app"
	"github.com/five82/folio/internal/logtail"
)

const defaultLogLines = 50

func addLogs(topLevel *cobra.Command, ro *rootOptions) {
	lines := defaultLogLines
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the folio log file.",
		Example: `
folio logs
folio logs -n 200
folio logs -n 0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(ro.appOptions())
			if err != nil {
				return err
			}
			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			if len(tail) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(logtail.ColorizeLines(tail), "\n"))
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "Number of trailing lines to print, 0 for all.")

	topLevel.AddCommand(cmd)
}

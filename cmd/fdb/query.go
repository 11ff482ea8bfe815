package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/lucasew/fdb/internal/app"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:     "query <pattern>...",
	Aliases: []string{"q"},
	Short:   "Print tracked paths matching the patterns, best first",
	Long: `Print every tracked path matching the regular expression built by joining
the patterns with ".*", sorted by --sort-by. Output stops quietly if the reader
goes away, e.g. "fdb query src | head -n 1".`,
	Args: cobra.MinimumNArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		// Turn SIGPIPE on stdout into EPIPE write errors so an early
		// closing reader ends the query instead of killing the process.
		signal.Notify(make(chan os.Signal, 1), syscall.SIGPIPE)
	},
	RunE: runAction(app.Query),
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

// Command qcirc drives a hardware-aware circuit transpilation end to end
// from files on disk (SPEC_FULL.md §4.10).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qxform/qxform/internal/qlog"
)

var (
	logLevel  string
	logFormat string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "qcirc",
		Short:         "Hardware-aware quantum circuit transpiler",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return qlog.Configure(logLevel, logFormat)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log output format (console, json)")
	root.AddCommand(newTranspileCmd())
	root.AddCommand(newInspectCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "qcirc:", err)
		qlog.Sync()
		os.Exit(1)
	}
	qlog.Sync()
}

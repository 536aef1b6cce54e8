// Command qcirc-inspect runs a circuit through the transpilation pipeline
// and opens an interactive terminal browser over the result, without
// requiring the full qcirc CLI (SPEC_FULL.md §4.10).
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/qxform/qxform/cmd/qcirc-inspect/tui"
	"github.com/qxform/qxform/internal/cliutil"
	"github.com/qxform/qxform/internal/qlog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "qcirc-inspect:", err)
		os.Exit(1)
	}
}

func run() error {
	var logLevel, logFormat string
	f := &cliutil.RunFlags{}

	flags := pflag.NewFlagSet("qcirc-inspect", pflag.ExitOnError)
	cliutil.AddRunFlags(flags, f)
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	if err := qlog.Configure(logLevel, logFormat); err != nil {
		return err
	}
	defer qlog.Sync()

	if f.CircuitPath == "" || f.DevicePath == "" {
		return fmt.Errorf("--circuit and --device are required")
	}

	result, err := cliutil.Run(context.Background(), f)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(result))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running inspector: %w", err)
	}
	return nil
}

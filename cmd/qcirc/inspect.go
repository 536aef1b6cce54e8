package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	inspect "github.com/qxform/qxform/cmd/qcirc-inspect/tui"
)

func newInspectCmd() *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Transpile a circuit then browse the result interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runTranspile(cmd.Context(), f)
			if err != nil {
				return err
			}
			program := tea.NewProgram(inspect.NewModel(result))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("qcirc: running inspector: %w", err)
			}
			return nil
		},
	}

	addRunFlags(cmd.Flags(), f)
	_ = cmd.MarkFlagRequired("circuit")
	_ = cmd.MarkFlagRequired("device")
	return cmd
}

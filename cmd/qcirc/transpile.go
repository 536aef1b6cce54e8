package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qxform/qxform/internal/cost"
	"github.com/qxform/qxform/internal/pipeline"
	"github.com/qxform/qxform/internal/qerr"
)

func newTranspileCmd() *cobra.Command {
	f := &runFlags{}
	var outputPath string
	var resultFormat string

	cmd := &cobra.Command{
		Use:   "transpile",
		Short: "Normalize, place, and route a circuit onto a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runTranspile(cmd.Context(), f)
			if err != nil {
				return err
			}
			rendered, err := renderResult(result, resultFormat)
			if err != nil {
				return err
			}
			return writeOutput(outputPath, rendered)
		},
	}

	addRunFlags(cmd.Flags(), f)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result here instead of stdout")
	cmd.Flags().StringVar(&resultFormat, "result-format", "json", "result output format (json, text)")
	_ = cmd.MarkFlagRequired("circuit")
	_ = cmd.MarkFlagRequired("device")
	return cmd
}

// transpileOutput is the JSON wire shape written by `qcirc transpile`, kept
// separate from pipeline.Result so the serialized circuits are rendered as
// text and the layouts as plain maps rather than leaking internal types.
type transpileOutput struct {
	NormalizedCircuit  string                     `json:"normalized_circuit"`
	RoutedCircuit      string                     `json:"routed_circuit"`
	InitialLayout      map[int]int                `json:"initial_layout"`
	FinalLayout        map[int]int                `json:"final_layout"`
	Structural         pipeline.StructuralMetrics `json:"structural_metrics"`
	Cost               cost.Metrics               `json:"cost_metrics"`
	Warnings           []qerr.Warning             `json:"warnings"`
	EquivalenceChecked bool                       `json:"equivalence_checked"`
	Equivalent         bool                       `json:"equivalent"`
}

func toOutput(r pipeline.Result) transpileOutput {
	return transpileOutput{
		NormalizedCircuit:  r.NormalizedCircuitText,
		RoutedCircuit:      r.RoutedCircuitText,
		InitialLayout:      r.InitialLayout.Map(),
		FinalLayout:        r.FinalLayout.Map(),
		Structural:         r.Structural,
		Cost:               r.Cost,
		Warnings:           r.Warnings,
		EquivalenceChecked: r.EquivalenceChecked,
		Equivalent:         r.Equivalent,
	}
}

func renderResult(r pipeline.Result, format string) (string, error) {
	switch format {
	case "text":
		return renderResultText(r), nil
	case "json", "":
		data, err := json.MarshalIndent(toOutput(r), "", "  ")
		if err != nil {
			return "", fmt.Errorf("qcirc: encoding result: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("qcirc: unknown result format %q", format)
	}
}

func renderResultText(r pipeline.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "depth: %d -> %d\n", r.Structural.OriginalDepth, r.Structural.TranspiledDepth)
	fmt.Fprintf(&b, "gates: %d (two-qubit: %d), swaps inserted: %d\n",
		r.Structural.GateCount, r.Structural.TwoQubitGateCount, r.Structural.SwapCount)
	fmt.Fprintf(&b, "fidelity: %.6f (effective error %.6g)\n", r.Cost.Fidelity, r.Cost.EffectiveError)
	fmt.Fprintf(&b, "overall execution time: %.3f\n", r.Cost.OverallExecutionTime)
	if r.EquivalenceChecked {
		fmt.Fprintf(&b, "equivalence check: %v\n", r.Equivalent)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning [%s]: %s\n", w.Kind, w.Message)
	}
	b.WriteString("\nrouted circuit:\n")
	b.WriteString(r.RoutedCircuitText)
	return b.String()
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("qcirc: writing output file: %w", err)
	}
	return nil
}

// Package cliutil holds the flag parsing and file-loading plumbing shared
// by cmd/qcirc and cmd/qcirc-inspect, so the two binaries' "run a
// transpilation from files on disk" behavior (SPEC_FULL.md §4.10) cannot
// drift apart.
package cliutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/layout"
	"github.com/qxform/qxform/internal/parse"
	"github.com/qxform/qxform/internal/pipeline"
	"github.com/qxform/qxform/internal/router"
)

// RunFlags is the flag set shared by every subcommand that runs a
// transpilation.
type RunFlags struct {
	CircuitPath      string
	DevicePath       string
	InputFormat      string
	RoutingStrategy  string
	LayoutStrategy   string
	CheckEquivalence bool
	Timeout          time.Duration
}

// AddRunFlags registers RunFlags' fields on flags.
func AddRunFlags(flags *pflag.FlagSet, f *RunFlags) {
	flags.StringVar(&f.CircuitPath, "circuit", "", "path to the input circuit file (required)")
	flags.StringVar(&f.DevicePath, "device", "", "path to the device topology JSON file (required)")
	flags.StringVar(&f.InputFormat, "format", "qasm", "input circuit format (qasm, json)")
	flags.StringVar(&f.RoutingStrategy, "routing", "sabre", "routing strategy (naive, basic, lookahead, sabre)")
	flags.StringVar(&f.LayoutStrategy, "layout", "calibration", "layout strategy (trivial, dense, calibration)")
	flags.BoolVar(&f.CheckEquivalence, "check-equivalence", false, "run the permutation-aware unitary equivalence check")
	flags.DurationVar(&f.Timeout, "timeout", 0, "abort the transpilation after this duration (0 disables the timeout)")
}

// LoadCircuit reads and parses the circuit file named by path in format
// ("qasm" or "json").
func LoadCircuit(path, format string) (circuitdag.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return circuitdag.Circuit{}, fmt.Errorf("qcirc: reading circuit file: %w", err)
	}
	switch format {
	case "json":
		return parse.ParseJSON(data)
	case "qasm", "":
		return parse.ParseAssembly(string(data))
	default:
		return circuitdag.Circuit{}, fmt.Errorf("qcirc: unknown circuit format %q", format)
	}
}

// LoadDevice reads and parses the device topology JSON file named by path.
func LoadDevice(path string) (*device.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("qcirc: reading device file: %w", err)
	}
	return parse.ParseDevice(data)
}

func parseLayoutStrategy(s string) (layout.Strategy, error) {
	switch s {
	case "trivial":
		return layout.Trivial, nil
	case "dense":
		return layout.Dense, nil
	case "calibration":
		return layout.Calibration, nil
	default:
		return "", fmt.Errorf("qcirc: unknown layout strategy %q", s)
	}
}

func parseRoutingStrategy(s string) (router.Strategy, error) {
	switch s {
	case "naive":
		return router.Naive, nil
	case "basic":
		return router.Basic, nil
	case "lookahead":
		return router.Lookahead, nil
	case "sabre":
		return router.Sabre, nil
	default:
		return "", fmt.Errorf("qcirc: unknown routing strategy %q", s)
	}
}

// BuildOptions translates f's strategy names into a pipeline.Options.
func BuildOptions(f *RunFlags) (pipeline.Options, error) {
	layoutStrategy, err := parseLayoutStrategy(f.LayoutStrategy)
	if err != nil {
		return pipeline.Options{}, err
	}
	routingStrategy, err := parseRoutingStrategy(f.RoutingStrategy)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		LayoutStrategy:   layoutStrategy,
		RoutingStrategy:  routingStrategy,
		CheckEquivalence: f.CheckEquivalence,
	}, nil
}

// Run loads the circuit and device named by f, applies f.Timeout to ctx if
// set, and runs the transpilation pipeline.
func Run(ctx context.Context, f *RunFlags) (pipeline.Result, error) {
	circuit, err := LoadCircuit(f.CircuitPath, f.InputFormat)
	if err != nil {
		return pipeline.Result{}, err
	}
	top, err := LoadDevice(f.DevicePath)
	if err != nil {
		return pipeline.Result{}, err
	}
	opts, err := BuildOptions(f)
	if err != nil {
		return pipeline.Result{}, err
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	return pipeline.Run(ctx, circuit, top, opts)
}

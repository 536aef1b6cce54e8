// Package pipeline implements the Transpilation Pipeline (spec §4.8): it
// glues the Normalizer, Layout Planner, Router, and Cost Estimator together
// and returns a TranspilationResult.
package pipeline

import (
	"context"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/cost"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/equiv"
	"github.com/qxform/qxform/internal/layout"
	"github.com/qxform/qxform/internal/normalize"
	"github.com/qxform/qxform/internal/parse"
	"github.com/qxform/qxform/internal/qerr"
	"github.com/qxform/qxform/internal/qlog"
	"github.com/qxform/qxform/internal/router"
	"go.uber.org/zap"
)

// StructuralMetrics is the depth/gate-count portion of a Result, recomputed
// from the routed circuit (spec §4.8).
type StructuralMetrics struct {
	OriginalDepth     int `json:"original_depth"`
	TranspiledDepth   int `json:"transpiled_depth"`
	GateCount         int `json:"gate_count"`
	TwoQubitGateCount int `json:"two_qubit_gate_count"`
	SwapCount         int `json:"swap_count"`
}

// Result is the Go realization of TranspilationResult (spec §3, §4.8/§6):
// the routed circuit (in both structured and text form), the initial and
// final layouts, structural metrics, cost metrics, and accumulated
// warnings.
type Result struct {
	NormalizedCircuit     circuitdag.Circuit
	NormalizedCircuitText string
	RoutedCircuit         circuitdag.Circuit
	RoutedCircuitText     string
	InitialLayout         layout.Layout
	FinalLayout           layout.Layout
	Structural            StructuralMetrics
	Cost                  cost.Metrics
	Warnings              []qerr.Warning
	EquivalenceChecked    bool
	Equivalent            bool
}

// Options configures a single Run call.
type Options struct {
	LayoutStrategy   layout.Strategy
	RoutingStrategy  router.Strategy
	CheckEquivalence bool
}

// Run executes normalize → plan → route → estimate (spec §4.8's algorithm)
// and returns the TranspilationResult. ctx is checked between every stage,
// after each emitted Router op (inside internal/router), and — when
// requested — before the equivalence check (spec §5).
func Run(ctx context.Context, circuit circuitdag.Circuit, top *device.Topology, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, qerr.Wrap(qerr.KindCancelled, "pipeline: cancelled before normalization", err)
	}

	qlog.L().Debug("pipeline: normalizing", zap.Int("num_qubits", circuit.NumQubits))
	normalized, err := normalize.Normalize(circuit, top.BasisGates)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, qerr.Wrap(qerr.KindCancelled, "pipeline: cancelled before layout planning", err)
	}

	qlog.L().Debug("pipeline: planning layout", zap.String("strategy", string(opts.LayoutStrategy)))
	initial, err := layout.Plan(normalized, top, opts.LayoutStrategy)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, qerr.Wrap(qerr.KindCancelled, "pipeline: cancelled before routing", err)
	}

	qlog.L().Debug("pipeline: routing", zap.String("strategy", string(opts.RoutingStrategy)))
	routed, err := router.Route(ctx, normalized, top, initial, opts.RoutingStrategy)
	if err != nil {
		return Result{}, err
	}

	qlog.L().Debug("pipeline: estimating cost")
	metrics := cost.Estimate(routed, top)
	warnings := calibrationWarnings(routed.Circuit, top)
	for _, w := range warnings {
		qlog.L().Warn("pipeline: calibration incomplete", zap.String("message", w.Message))
	}

	originalDAG := circuitdag.Build(circuit)
	routedDAG := circuitdag.Build(routed.Circuit)
	result := Result{
		NormalizedCircuit:     normalized,
		NormalizedCircuitText: parse.EncodeAssembly(normalized),
		RoutedCircuit:         routed.Circuit,
		RoutedCircuitText:     parse.EncodeAssembly(routed.Circuit),
		InitialLayout:         routed.InitialLayout,
		FinalLayout:           routed.FinalLayout,
		Structural: StructuralMetrics{
			OriginalDepth:     originalDAG.Depth(),
			TranspiledDepth:   routedDAG.Depth(),
			GateCount:         len(routed.Circuit.Ops),
			TwoQubitGateCount: len(routed.Circuit.TwoQubitOps()),
			SwapCount:         routed.SwapCount,
		},
		Cost:     metrics,
		Warnings: warnings,
	}

	if opts.CheckEquivalence {
		if err := ctx.Err(); err != nil {
			return Result{}, qerr.Wrap(qerr.KindCancelled, "pipeline: cancelled before equivalence check", err)
		}
		eq, err := equiv.Check(circuit, routed)
		if err != nil {
			return Result{}, err
		}
		if !eq.Skipped {
			result.EquivalenceChecked = true
			result.Equivalent = eq.Equal
			if !eq.Equal {
				return Result{}, qerr.New(qerr.KindRoutingUnitaryMismatch, "pipeline: routed circuit is not equivalent to the input circuit")
			}
		}
	}

	return result, nil
}

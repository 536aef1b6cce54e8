package router

import (
	"context"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/layout"
)

// sabreCalibrationWeight tunes how strongly the sabre forward/reverse
// passes prefer low-error edges over pure distance reduction.
const sabreCalibrationWeight = 0.1

// routeSabre implements the two-phase sabre strategy (spec §4.6): a
// calibration-weighted lookahead forward pass, a reverse pass over the
// reversed circuit seeded with that pass's final mapping to refine the
// initial layout, and a final forward pass (emitted) seeded with the
// refined layout.
func routeSabre(ctx context.Context, normalized circuitdag.Circuit, top *device.Topology, initial layout.Layout) (RoutedCircuit, error) {
	chooser := lookaheadChooser(lookaheadWindow, sabreCalibrationWeight)

	forward := circuitdag.Build(normalized)
	m := newMapping(initial)
	_, _, err := drive(ctx, forward, top, m, chooser)
	if err != nil {
		return RoutedCircuit{}, err
	}

	reverseDAG := circuitdag.Build(reverseCircuit(normalized))
	reverseMapping := newMapping(m.toLayout())
	_, _, err = drive(ctx, reverseDAG, top, reverseMapping, chooser)
	if err != nil {
		return RoutedCircuit{}, err
	}

	refinedInitial := reverseMapping.toLayout()
	return runEngine(ctx, normalized, top, refinedInitial, chooser)
}

// reverseCircuit builds the time-reversed circuit sabre's backward pass
// routes: operations in reverse program order, the only transformation
// needed since the Router only reasons about DAG dependency structure, not
// gate semantics, while choosing SWAPs.
func reverseCircuit(c circuitdag.Circuit) circuitdag.Circuit {
	ops := make([]circuitdag.GateOp, len(c.Ops))
	for i, op := range c.Ops {
		ops[len(ops)-1-i] = circuitdag.GateOp{Kind: op.Kind, Qubits: op.Qubits, Clbits: op.Clbits, Params: op.Params}
	}
	return circuitdag.Circuit{NumQubits: c.NumQubits, NumClbits: c.NumClbits, Ops: ops}
}

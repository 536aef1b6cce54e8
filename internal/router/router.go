// Package router implements the Router (spec §4.6): it turns a normalized
// Circuit and an initial Layout into a RoutedCircuit in which every
// two-qubit operation acts on a physically coupled pair, inserting SWAPs
// along the way.
package router

import (
	"context"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/layout"
	"github.com/qxform/qxform/internal/qerr"
	"github.com/qxform/qxform/internal/qlog"
	"go.uber.org/zap"
)

// Strategy selects which Router heuristic drives SWAP insertion.
type Strategy string

const (
	Naive     Strategy = "naive"
	Basic     Strategy = "basic"
	Lookahead Strategy = "lookahead"
	Sabre     Strategy = "sabre"
)

// lookaheadWindow is the default W of spec §4.6's lookahead strategy.
const lookaheadWindow = 20

// RoutedCircuit is the Router's output (spec §4.6): a Circuit expressed
// entirely in physical-qubit indices, plus the initial and final
// logical->physical layouts and the count of inserted SWAPs.
type RoutedCircuit struct {
	Circuit       circuitdag.Circuit
	InitialLayout layout.Layout
	FinalLayout   layout.Layout
	SwapCount     int
}

// Route implements route(normalized, device, initial_layout, strategy) →
// RoutedCircuit (spec §4.6). ctx is checked after every emitted operation
// (including SWAPs); a cancelled context aborts with qerr.Cancelled and no
// partial result.
func Route(ctx context.Context, normalized circuitdag.Circuit, top *device.Topology, initial layout.Layout, strategy Strategy) (RoutedCircuit, error) {
	if err := checkConnectivity(normalized, top, initial); err != nil {
		return RoutedCircuit{}, err
	}

	switch strategy {
	case Naive:
		return runEngine(ctx, normalized, top, initial, naiveChooser)
	case Basic:
		return runEngine(ctx, normalized, top, initial, basicChooser)
	case Lookahead:
		return runEngine(ctx, normalized, top, initial, lookaheadChooser(lookaheadWindow, 0))
	case Sabre:
		return routeSabre(ctx, normalized, top, initial)
	default:
		return RoutedCircuit{}, qerr.New(qerr.KindNoFeasibleLayout, "router: unknown strategy "+string(strategy))
	}
}

// checkConnectivity rejects up front any circuit where two logical qubits
// that interact have physical images in different connected components of
// the coupling graph — no amount of SWAPping can route such a pair (spec
// §4.6's DisconnectedDevice condition).
func checkConnectivity(c circuitdag.Circuit, top *device.Topology, initial layout.Layout) error {
	for _, i := range c.TwoQubitOps() {
		q := c.Ops[i].Qubits
		p0, ok0 := initial.Physical(q[0])
		p1, ok1 := initial.Physical(q[1])
		if !ok0 || !ok1 {
			continue
		}
		if top.Distance(p0, p1) < 0 {
			qlog.L().Debug("router: disconnected pair", zap.Int("logical_a", q[0]), zap.Int("logical_b", q[1]))
			return qerr.New(qerr.KindDisconnectedDevice, "router: interacting logical qubits map to disconnected physical components")
		}
	}
	return nil
}

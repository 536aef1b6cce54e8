package router

import (
	"context"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/layout"
	"github.com/qxform/qxform/internal/qerr"
	"github.com/qxform/qxform/internal/qlog"
	"go.uber.org/zap"
)

// mapping is the Router's working state machine's M: logical -> physical,
// kept alongside its inverse for O(1) SWAP bookkeeping.
type mapping struct {
	logToPhys map[int]int
	physToLog map[int]int
}

func newMapping(initial layout.Layout) *mapping {
	m := &mapping{logToPhys: initial.Map(), physToLog: make(map[int]int)}
	for l, p := range m.logToPhys {
		m.physToLog[p] = l
	}
	return m
}

func (m *mapping) physical(logical int) int { return m.logToPhys[logical] }

// swap exchanges the physical images of whatever logical qubits currently
// sit at physical a and b (spec §4.6's "update M accordingly").
func (m *mapping) swap(a, b int) {
	la, hasA := m.physToLog[a]
	lb, hasB := m.physToLog[b]
	if hasA {
		m.logToPhys[la] = b
	}
	if hasB {
		m.logToPhys[lb] = a
	}
	delete(m.physToLog, a)
	delete(m.physToLog, b)
	if hasA {
		m.physToLog[b] = la
	}
	if hasB {
		m.physToLog[a] = lb
	}
}

func (m *mapping) toLayout() layout.Layout { return layout.New(m.logToPhys) }

// chooser picks the physical edge to SWAP given the current engine state.
// pending is the two-qubit front layer, already sorted ascending by DAG
// node index.
type chooser func(d *circuitdag.DAG, executed map[int]bool, m *mapping, top *device.Topology, pending []int) (a, b int, err error)

// runEngine drives the shared state machine of spec §4.6: drain every
// currently executable front-layer op, then ask chooseSwap for the next
// SWAP when no progress remains, until every DAG node has been emitted.
func runEngine(ctx context.Context, normalized circuitdag.Circuit, top *device.Topology, initial layout.Layout, chooseSwap chooser) (RoutedCircuit, error) {
	d := circuitdag.Build(normalized)
	m := newMapping(initial)

	emitted, swapCount, err := drive(ctx, d, top, m, chooseSwap)
	if err != nil {
		return RoutedCircuit{}, err
	}

	circuit, err := circuitdag.New(top.NumPhysicalQubits, normalized.NumClbits, emitted)
	if err != nil {
		return RoutedCircuit{}, qerr.Wrap(qerr.KindRoutingUnitaryMismatch, "router: emitted circuit failed validation", err)
	}

	return RoutedCircuit{
		Circuit:       circuit,
		InitialLayout: initial,
		FinalLayout:   m.toLayout(),
		SwapCount:     swapCount,
	}, nil
}

// drive runs the emit/SWAP loop to completion, returning the emitted ops
// in physical-qubit space and the number of SWAPs inserted.
func drive(ctx context.Context, d *circuitdag.DAG, top *device.Topology, m *mapping, chooseSwap chooser) ([]circuitdag.GateOp, int, error) {
	executed := make(map[int]bool, d.Len())
	var emitted []circuitdag.GateOp
	swapCount := 0

	for len(executed) < d.Len() {
		if err := ctx.Err(); err != nil {
			return nil, 0, qerr.New(qerr.KindCancelled, "router: cancelled")
		}

		progressed := true
		for progressed {
			progressed = false
			front := d.FrontLayer(executed)
			for _, i := range front {
				op := d.Circuit.Ops[i]
				if !executable(op, m, top) {
					continue
				}
				emitted = append(emitted, mapToPhysical(op, m))
				executed[i] = true
				progressed = true
				if err := ctx.Err(); err != nil {
					return nil, 0, qerr.New(qerr.KindCancelled, "router: cancelled")
				}
			}
		}
		if len(executed) == d.Len() {
			break
		}

		pending := d.TwoQubitFrontLayer(executed)
		if len(pending) == 0 {
			return nil, 0, qerr.New(qerr.KindRoutingUnitaryMismatch, "router: no executable op and no pending two-qubit op to route")
		}
		a, b, err := chooseSwap(d, executed, m, top, pending)
		if err != nil {
			return nil, 0, err
		}
		emitted = append(emitted, circuitdag.GateOp{Kind: gate.SWAP, Qubits: []int{a, b}})
		m.swap(a, b)
		swapCount++
		qlog.L().Debug("router: inserted swap", zap.Int("physical_a", a), zap.Int("physical_b", b))
		if err := ctx.Err(); err != nil {
			return nil, 0, qerr.New(qerr.KindCancelled, "router: cancelled")
		}
	}
	return emitted, swapCount, nil
}

func executable(op circuitdag.GateOp, m *mapping, top *device.Topology) bool {
	if len(op.Qubits) != 2 {
		return true
	}
	a, b := m.physical(op.Qubits[0]), m.physical(op.Qubits[1])
	return top.Coupled(a, b)
}

func mapToPhysical(op circuitdag.GateOp, m *mapping) circuitdag.GateOp {
	qubits := make([]int, len(op.Qubits))
	for i, q := range op.Qubits {
		qubits[i] = m.physical(q)
	}
	return circuitdag.GateOp{Kind: op.Kind, Qubits: qubits, Clbits: op.Clbits, Params: op.Params}
}

// distanceOf returns the current physical distance between a front op's
// two logical qubits under m.
func distanceOf(op circuitdag.GateOp, m *mapping, top *device.Topology) int {
	return top.Distance(m.physical(op.Qubits[0]), m.physical(op.Qubits[1]))
}

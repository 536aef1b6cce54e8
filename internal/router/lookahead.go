package router

import (
	"math"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
)

// lookaheadChooser implements the lookahead strategy (spec §4.6): score
// every candidate SWAP adjacent to the pending front by the total distance
// reduction it induces over the next window pending two-qubit ops, pick the
// highest scorer, and break ties by the higher product of gate fidelities
// on the swapped edge. calibrationWeight, when non-zero, additionally
// subtracts calibrationWeight * edgeCost from the score, the hook the sabre
// strategy's forward/reverse passes reuse.
func lookaheadChooser(window int, calibrationWeight float64) chooser {
	return func(d *circuitdag.DAG, executed map[int]bool, m *mapping, top *device.Topology, pending []int) (int, int, error) {
		horizon := pendingWindow(d, executed, window)
		candidates := candidateSwaps(d, pending, m, top)

		bestA, bestB := -1, -1
		bestScore := math.Inf(-1)
		bestFidelity := -1.0
		for _, edge := range candidates {
			score := float64(windowDistanceReduction(d, horizon, m, top, edge[0], edge[1]))
			if calibrationWeight != 0 {
				score -= calibrationWeight * edgeCost(top, edge[0], edge[1])
			}
			fidelity := edgeFidelity(top, edge[0], edge[1])
			if score > bestScore || (score == bestScore && fidelity > bestFidelity) {
				bestScore = score
				bestFidelity = fidelity
				bestA, bestB = edge[0], edge[1]
			}
		}
		if bestA == -1 || bestScore <= 0 {
			// No scored candidate improved anything (can happen on a very
			// sparse device); fall back to naive's direct approach so
			// progress is still guaranteed.
			return naiveChooser(d, executed, m, top, pending)
		}
		return bestA, bestB, nil
	}
}

// pendingWindow returns the next n two-qubit DAG node indices, in
// topological order, that have not yet executed.
func pendingWindow(d *circuitdag.DAG, executed map[int]bool, n int) []int {
	var out []int
	for _, i := range d.TopologicalOrder() {
		if executed[i] {
			continue
		}
		if len(d.Circuit.Ops[i].Qubits) != 2 {
			continue
		}
		out = append(out, i)
		if len(out) == n {
			break
		}
	}
	return out
}

// candidateSwaps returns every coupling-map edge touching a physical qubit
// currently holding one of pending's logical qubits, the standard
// front-layer-adjacent SWAP candidate set.
func candidateSwaps(d *circuitdag.DAG, pending []int, m *mapping, top *device.Topology) [][2]int {
	seen := make(map[[2]int]bool)
	visited := make(map[int]bool)
	var out [][2]int
	visit := func(p int) {
		if visited[p] {
			return
		}
		visited[p] = true
		for _, nb := range top.Neighbors(p) {
			e := edgeKey(p, nb)
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	for _, i := range pending {
		op := d.Circuit.Ops[i]
		visit(m.physical(op.Qubits[0]))
		visit(m.physical(op.Qubits[1]))
	}
	return out
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func windowDistanceReduction(d *circuitdag.DAG, window []int, m *mapping, top *device.Topology, a, b int) int {
	before := 0
	for _, i := range window {
		before += distanceOf(d.Circuit.Ops[i], m, top)
	}
	m.swap(a, b)
	after := 0
	for _, i := range window {
		after += distanceOf(d.Circuit.Ops[i], m, top)
	}
	m.swap(a, b)
	return before - after
}

// edgeCost is the calibration-weighted cost of a physical edge, -log(1 -
// gate_error), used by the sabre strategy's scoring (spec §4.6's "-log(1 -
// gate_error)" edge weight). Falls back to a nominal error rate when no
// calibration entry exists for CX on that pair.
func edgeCost(top *device.Topology, a, b int) float64 {
	errRate := gateErrorFallbackRouter
	if cal, present, usable := top.Calibration.GateCalibration(gate.CX, []int{a, b}); present && usable && cal.GateError != nil {
		errRate = *cal.GateError
	}
	return -math.Log(1 - errRate)
}

func edgeFidelity(top *device.Topology, a, b int) float64 {
	errRate := gateErrorFallbackRouter
	if cal, present, usable := top.Calibration.GateCalibration(gate.CX, []int{a, b}); present && usable && cal.GateError != nil {
		errRate = *cal.GateError
	}
	return 1 - errRate
}

const gateErrorFallbackRouter = 1e-2

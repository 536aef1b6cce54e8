// Package layout implements the Layout Planner (spec §4.5): the initial
// mapping from logical circuit qubits to physical device qubits.
package layout

import (
	"math"
	"sort"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/qerr"
)

// Layout is a partial injection from logical qubit index to physical qubit
// index (spec §3): L(logical) → physical.
type Layout struct {
	l map[int]int
}

// New builds a Layout from a logical->physical map, copying it.
func New(m map[int]int) Layout {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return Layout{l: out}
}

// Physical returns the physical qubit assigned to logical, if any.
func (l Layout) Physical(logical int) (int, bool) {
	p, ok := l.l[logical]
	return p, ok
}

// Map returns a copy of the underlying logical->physical map.
func (l Layout) Map() map[int]int {
	out := make(map[int]int, len(l.l))
	for k, v := range l.l {
		out[k] = v
	}
	return out
}

// Strategy selects which Layout Planner heuristic to run.
type Strategy string

const (
	Trivial     Strategy = "trivial"
	Dense       Strategy = "dense"
	Calibration Strategy = "calibration"
)

// calibAlpha weights the decoherence terms in the calibration-weighted
// strategy's placement cost so that readout_error and alpha/T1, alpha/T2
// land in the same rough magnitude as a typical two-qubit gate_error
// (spec §4.5's "chosen so decoherence and readout contribute comparable
// weight to a typical gate error"). T1/T2 are conventionally reported in
// microseconds with typical values in the tens; a two-qubit gate error is
// typically on the order of 1e-2, so alpha = 0.5 puts alpha/T1 in that
// same range for a T1 around 50us.
const calibAlpha = 0.5

// Plan builds an initial Layout for circuit on top under strategy (spec
// §4.5's plan(circuit, device, strategy) → Layout contract).
func Plan(circuit circuitdag.Circuit, top *device.Topology, strategy Strategy) (Layout, error) {
	if circuit.NumQubits > top.NumPhysicalQubits {
		return Layout{}, qerr.New(qerr.KindNoFeasibleLayout, "layout: circuit has more logical qubits than the device has physical qubits")
	}
	switch strategy {
	case Trivial:
		return planTrivial(circuit), nil
	case Dense:
		l, ok := planWeighted(circuit, top, nil)
		if !ok {
			return planTrivial(circuit), nil
		}
		return l, nil
	case Calibration:
		l, ok := planWeighted(circuit, top, calibCostFn(top))
		if !ok {
			return planTrivial(circuit), nil
		}
		return l, nil
	default:
		return Layout{}, qerr.New(qerr.KindNoFeasibleLayout, "layout: unknown strategy "+string(strategy))
	}
}

func planTrivial(circuit circuitdag.Circuit) Layout {
	m := make(map[int]int, circuit.NumQubits)
	for i := 0; i < circuit.NumQubits; i++ {
		m[i] = i
	}
	return Layout{l: m}
}

// interactionWeights tallies, for each unordered pair of logical qubits,
// the number of two-qubit ops that touch both (spec §4.5's logical
// interaction graph).
func interactionWeights(c circuitdag.Circuit) map[[2]int]int {
	w := make(map[[2]int]int)
	for _, i := range c.TwoQubitOps() {
		q := c.Ops[i].Qubits
		a, b := q[0], q[1]
		if a > b {
			a, b = b, a
		}
		w[[2]int{a, b}]++
	}
	return w
}

// costFn scores placing a logical qubit at physical qubit p, used only by
// the calibration-weighted strategy to bias placement away from noisy or
// short-lived physical qubits. nil for the plain dense strategy.
type costFn func(p int) float64

func calibCostFn(top *device.Topology) costFn {
	return func(p int) float64 {
		qc, ok := top.Calibration.QubitCalibration(p)
		if !ok {
			return 0
		}
		cost := 0.0
		if qc.ReadoutError != nil {
			cost += *qc.ReadoutError
		}
		if qc.T1 != nil && *qc.T1 > 0 {
			cost += calibAlpha / *qc.T1
		}
		if qc.T2 != nil && *qc.T2 > 0 {
			cost += calibAlpha / *qc.T2
		}
		return cost
	}
}

// planWeighted implements the shared greedy shape of the dense and
// calibration-weighted strategies (spec §4.5): seed from the highest
// weighted-degree logical qubit, then attach the rest in decreasing
// weighted-degree order to the physically coupled neighbour of an
// already-placed qubit that maximizes the calibration-weighted edge score,
// minus placementCost(p) for the calibration-weighted variant. Returns
// ok=false if some logical qubit cannot be attached to any free coupled
// physical neighbour, signalling the caller to fall back to Trivial.
func planWeighted(c circuitdag.Circuit, top *device.Topology, placementCost costFn) (Layout, bool) {
	n := c.NumQubits
	if n == 0 {
		return Layout{l: map[int]int{}}, true
	}
	weight := interactionWeights(c)
	degree := make([]int, n)
	for pair, w := range weight {
		degree[pair[0]] += w
		degree[pair[1]] += w
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if degree[order[i]] != degree[order[j]] {
			return degree[order[i]] > degree[order[j]]
		}
		return order[i] < order[j]
	})

	placed := make(map[int]int, n)
	used := make(map[int]bool, n)

	seed := order[0]
	seedPhys := highestDegreePhysical(top)
	placed[seed] = seedPhys
	used[seedPhys] = true

	for _, q := range order[1:] {
		best := -1
		bestScore := math.Inf(-1)
		for cand := 0; cand < top.NumPhysicalQubits; cand++ {
			if used[cand] {
				continue
			}
			score, reachable := candidateScore(q, cand, placed, weight, top)
			if !reachable {
				continue
			}
			if placementCost != nil {
				score -= placementCost(cand)
			}
			if score > bestScore {
				bestScore = score
				best = cand
			}
		}
		if best == -1 {
			return Layout{}, false
		}
		placed[q] = best
		used[best] = true
	}
	return Layout{l: placed}, true
}

// candidateScore sums log(1 - gate_error) over already-placed logical
// qubits that interact with q, for the hypothesis that q is placed at
// cand, provided cand is physically coupled to that placed qubit's
// physical image. reachable is false if cand is not coupled to any
// already-placed neighbour of q at all.
func candidateScore(q, cand int, placed map[int]int, weight map[[2]int]int, top *device.Topology) (float64, bool) {
	score := 0.0
	reachable := false
	for placedLogical, placedPhys := range placed {
		if !top.Coupled(cand, placedPhys) {
			continue
		}
		a, b := q, placedLogical
		if a > b {
			a, b = b, a
		}
		w, ok := weight[[2]int{a, b}]
		if !ok {
			continue
		}
		reachable = true
		errRate := gateErrorFallback
		if cal, present, usable := top.Calibration.GateCalibration(gate.CX, []int{cand, placedPhys}); present && usable {
			if cal.GateError != nil {
				errRate = *cal.GateError
			}
		}
		score += float64(w) * math.Log(1-errRate)
	}
	if !reachable {
		// cand may still be a valid attach point with no scored edges if it is
		// coupled to a placed qubit but that qubit does not interact with q;
		// such an attach carries no information so it is not preferred, but it
		// keeps the placement feasible when the interaction graph is sparse.
		for _, placedPhys := range placed {
			if top.Coupled(cand, placedPhys) {
				return 0, true
			}
		}
	}
	return score, reachable
}

const gateErrorFallback = 1e-2

func highestDegreePhysical(top *device.Topology) int {
	best, bestDeg := 0, -1
	for p := 0; p < top.NumPhysicalQubits; p++ {
		d := len(top.Neighbors(p))
		if d > bestDeg {
			bestDeg = d
			best = p
		}
	}
	return best
}

package device

import (
	"fmt"
	"sort"

	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/qerr"
)

// Topology is the Device Model's connectivity and basis record (spec §3):
// a fixed number of physical qubits, an undirected coupling map, the set of
// natively supported gate kinds, and the calibration data layered on top.
type Topology struct {
	NumPhysicalQubits int
	CouplingMap       [][2]int
	BasisGates        []gate.Kind
	Calibration       Calibration

	adjacency map[int][]int
}

// New validates and builds a Topology. Coupling pairs are treated as
// undirected: (a,b) and (b,a) are equivalent, duplicates are tolerated.
func New(numPhysicalQubits int, couplingMap [][2]int, basisGates []gate.Kind, cal Calibration) (*Topology, error) {
	if numPhysicalQubits <= 0 {
		return nil, qerr.New(qerr.KindNoFeasibleLayout, "device: num_physical_qubits must be positive")
	}
	if err := gate.ValidateBasis(basisGates); err != nil {
		return nil, err
	}
	adjacency := make(map[int][]int, numPhysicalQubits)
	for _, pair := range couplingMap {
		a, b := pair[0], pair[1]
		if a < 0 || a >= numPhysicalQubits || b < 0 || b >= numPhysicalQubits {
			return nil, qerr.New(qerr.KindNoFeasibleLayout, fmt.Sprintf("device: coupling pair (%d,%d) out of range [0,%d)", a, b, numPhysicalQubits))
		}
		if a == b {
			return nil, qerr.New(qerr.KindNoFeasibleLayout, fmt.Sprintf("device: coupling pair (%d,%d) is a self-loop", a, b))
		}
		adjacency[a] = appendUnique(adjacency[a], b)
		adjacency[b] = appendUnique(adjacency[b], a)
	}
	for p := 0; p < numPhysicalQubits; p++ {
		sort.Ints(adjacency[p])
	}
	if cal.Qubits == nil || cal.Gates == nil {
		cal = NewCalibration()
	}
	return &Topology{
		NumPhysicalQubits: numPhysicalQubits,
		CouplingMap:       couplingMap,
		BasisGates:        basisGates,
		Calibration:       cal,
		adjacency:         adjacency,
	}, nil
}

func appendUnique(xs []int, v int) []int {
	for _, x := range xs {
		if x == v {
			return xs
		}
	}
	return append(xs, v)
}

// Neighbors returns the physical qubits directly coupled to p, ascending.
func (t *Topology) Neighbors(p int) []int { return t.adjacency[p] }

// Coupled reports whether a and b are directly connected in the coupling
// map (spec §4.3's coupled(a,b) predicate).
func (t *Topology) Coupled(a, b int) bool {
	for _, n := range t.adjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}

// InBasis reports whether k is one of the device's natively supported
// gate kinds.
func (t *Topology) InBasis(k gate.Kind) bool {
	for _, g := range t.BasisGates {
		if g == k {
			return true
		}
	}
	return false
}

// ConnectedComponents partitions the physical qubits into connected
// components, each sorted ascending and listed in order of its lowest
// qubit index.
func (t *Topology) ConnectedComponents() [][]int {
	seen := make([]bool, t.NumPhysicalQubits)
	var comps [][]int
	for start := 0; start < t.NumPhysicalQubits; start++ {
		if seen[start] {
			continue
		}
		queue := []int{start}
		seen[start] = true
		var comp []int
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			comp = append(comp, n)
			for _, nb := range t.adjacency[n] {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

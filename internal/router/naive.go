package router

import (
	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
)

// naiveChooser implements the naive strategy (spec §4.6): pick the
// earliest pending two-qubit op in topological order, insert one SWAP on
// the shortest-path step closest to its control (first-listed) qubit.
func naiveChooser(d *circuitdag.DAG, executed map[int]bool, m *mapping, top *device.Topology, pending []int) (int, int, error) {
	op := d.Circuit.Ops[pending[0]]
	return swapTowardTarget(op, m, top)
}

// swapTowardTarget returns the first edge of the shortest path from op's
// control qubit's physical image toward its target's, the SWAP that
// reduces their distance by exactly one.
func swapTowardTarget(op circuitdag.GateOp, m *mapping, top *device.Topology) (int, int, error) {
	p0, p1 := m.physical(op.Qubits[0]), m.physical(op.Qubits[1])
	path, err := top.ShortestPath(p0, p1)
	if err != nil {
		return 0, 0, err
	}
	return path[0], path[1], nil
}

package router

import (
	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
)

// basicChooser implements the basic strategy (spec §4.6). The drain step in
// runEngine already takes care of "drain all currently coupled ops before
// considering SWAPs"; basic additionally breaks ties among the minimum-
// distance pending ops by preferring the SWAP that reduces the *total*
// distance summed over the whole pending front, a cheap greedy-progress
// measure naive does not bother computing.
func basicChooser(d *circuitdag.DAG, executed map[int]bool, m *mapping, top *device.Topology, pending []int) (int, int, error) {
	minDist := -1
	var candidates []int
	for _, i := range pending {
		dist := distanceOf(d.Circuit.Ops[i], m, top)
		if minDist == -1 || dist < minDist {
			minDist = dist
			candidates = []int{i}
		} else if dist == minDist {
			candidates = append(candidates, i)
		}
	}

	bestA, bestB, bestReduction := -1, -1, -1
	for _, i := range candidates {
		a, b, err := swapTowardTarget(d.Circuit.Ops[i], m, top)
		if err != nil {
			return 0, 0, err
		}
		reduction := totalDistanceReduction(d, pending, m, top, a, b)
		if reduction > bestReduction {
			bestReduction = reduction
			bestA, bestB = a, b
		}
	}
	return bestA, bestB, nil
}

// totalDistanceReduction computes how much the sum of distances over
// pending would shrink if physical qubits a and b were swapped.
func totalDistanceReduction(d *circuitdag.DAG, pending []int, m *mapping, top *device.Topology, a, b int) int {
	before := 0
	for _, i := range pending {
		before += distanceOf(d.Circuit.Ops[i], m, top)
	}
	m.swap(a, b)
	after := 0
	for _, i := range pending {
		after += distanceOf(d.Circuit.Ops[i], m, top)
	}
	m.swap(a, b)
	return before - after
}

package device

import (
	"fmt"

	"github.com/qxform/qxform/internal/qerr"
)

// ShortestPath returns a shortest physical-qubit path from a to b (spec
// §4.3's shortest_path), inclusive of both endpoints. Ties among equal-length
// paths are broken by preferring lower-indexed neighbors at each BFS step,
// which the adjacency lists (kept sorted ascending by New) make deterministic.
func (t *Topology) ShortestPath(a, b int) ([]int, error) {
	if a == b {
		return []int{a}, nil
	}
	prev := make(map[int]int, t.NumPhysicalQubits)
	visited := make([]bool, t.NumPhysicalQubits)
	visited[a] = true
	queue := []int{a}
	found := false
	for len(queue) > 0 && !found {
		next := queue[:0:0]
		for _, n := range queue {
			for _, nb := range t.adjacency[n] {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				prev[nb] = n
				if nb == b {
					found = true
				}
				next = append(next, nb)
			}
		}
		queue = next
	}
	if !visited[b] {
		return nil, qerr.New(qerr.KindDisconnectedDevice, fmt.Sprintf("device: no path between physical qubits %d and %d", a, b))
	}
	path := []int{b}
	for cur := b; cur != a; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Distance returns the length, in edges, of a shortest path between a and
// b, or -1 if they are disconnected.
func (t *Topology) Distance(a, b int) int {
	path, err := t.ShortestPath(a, b)
	if err != nil {
		return -1
	}
	return len(path) - 1
}

// DistanceMatrix precomputes all-pairs distances by one BFS per physical
// qubit; unreachable pairs hold -1.
func (t *Topology) DistanceMatrix() [][]int {
	n := t.NumPhysicalQubits
	dist := make([][]int, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]int, n)
		for j := 0; j < n; j++ {
			dist[i][j] = -1
		}
		dist[i][i] = 0
		queue := []int{i}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range t.adjacency[cur] {
				if dist[i][nb] == -1 {
					dist[i][nb] = dist[i][cur] + 1
					queue = append(queue, nb)
				}
			}
		}
	}
	return dist
}

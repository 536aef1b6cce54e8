package circuitdag

import (
	"sort"

	"github.com/qxform/qxform/internal/qerr"
)

// DAG is the canonical, topologically queryable view of a Circuit (spec
// §4.2). Nodes are arena-indexed by position (spec §9's "integer indices,
// no back-pointers"): node i corresponds to Circuit.Ops[i]. Edges connect
// operations that share at least one qubit or classical bit resource, in
// program order.
type DAG struct {
	Circuit Circuit
	preds   [][]int
	succs   [][]int
}

// Build constructs a DAG from c in O(n_q + n_c + len(ops)) time by tracking,
// per resource, the most recent operation index that touched it.
func Build(c Circuit) *DAG {
	n := len(c.Ops)
	d := &DAG{
		Circuit: c,
		preds:   make([][]int, n),
		succs:   make([][]int, n),
	}
	lastOnQubit := make(map[int]int, c.NumQubits)
	lastOnClbit := make(map[int]int, c.NumClbits)

	for i, op := range c.Ops {
		depSet := make(map[int]bool)
		for _, q := range op.Qubits {
			if last, ok := lastOnQubit[q]; ok {
				depSet[last] = true
			}
			lastOnQubit[q] = i
		}
		for _, cb := range op.Clbits {
			if last, ok := lastOnClbit[cb]; ok {
				depSet[last] = true
			}
			lastOnClbit[cb] = i
		}
		deps := make([]int, 0, len(depSet))
		for dep := range depSet {
			deps = append(deps, dep)
		}
		sort.Ints(deps)
		d.preds[i] = deps
		for _, dep := range deps {
			d.succs[dep] = append(d.succs[dep], i)
		}
	}
	return d
}

// Len returns the number of nodes (operations) in the DAG.
func (d *DAG) Len() int { return len(d.Circuit.Ops) }

// Predecessors returns the node indices that must execute before node i.
func (d *DAG) Predecessors(i int) []int { return d.preds[i] }

// Successors returns the node indices that depend on node i.
func (d *DAG) Successors(i int) []int { return d.succs[i] }

// TopologicalOrder returns a topological order over the nodes, tie-broken
// by lower index (spec §5's determinism requirement); since edges only ever
// point from a lower program-order index to a higher one (spec §4.2's
// invariant), this always coincides with the original program order, but
// it is computed generically via Kahn's algorithm so Substitute-produced
// DAGs are handled the same way.
func (d *DAG) TopologicalOrder() []int {
	n := d.Len()
	indegree := make([]int, n)
	for i := 0; i < n; i++ {
		indegree[i] = len(d.preds[i])
	}
	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}
	sort.Ints(ready)

	order := make([]int, 0, n)
	for len(ready) > 0 {
		sort.Ints(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		for _, s := range d.succs[next] {
			indegree[s]--
			if indegree[s] == 0 {
				ready = append(ready, s)
			}
		}
	}
	return order
}

// Depth returns the longest path through the DAG counted in operations
// (spec §4.2), matching the "H;CX depth 2" / "5-op linear chain depth 5"
// worked examples of spec §8.
func (d *DAG) Depth() int {
	n := d.Len()
	if n == 0 {
		return 0
	}
	depth := make([]int, n)
	best := 0
	for _, i := range d.TopologicalOrder() {
		depth[i] = 1
		for _, p := range d.preds[i] {
			if depth[p]+1 > depth[i] {
				depth[i] = depth[p] + 1
			}
		}
		if depth[i] > best {
			best = depth[i]
		}
	}
	return best
}

// FrontLayer returns the node indices whose predecessors are all marked
// executed in the supplied set (spec §4.6's ready set R), excluding nodes
// already marked executed themselves.
func (d *DAG) FrontLayer(executed map[int]bool) []int {
	var out []int
	for i := 0; i < d.Len(); i++ {
		if executed[i] {
			continue
		}
		ready := true
		for _, p := range d.preds[i] {
			if !executed[p] {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// TwoQubitFrontLayer is FrontLayer filtered to the two-qubit operations
// (spec §4.2's two_qubit_front_layer contract) — the population the Router
// needs to reason about when choosing SWAPs.
func (d *DAG) TwoQubitFrontLayer(executed map[int]bool) []int {
	front := d.FrontLayer(executed)
	var out []int
	for _, i := range front {
		if len(d.Circuit.Ops[i].Qubits) == 2 {
			out = append(out, i)
		}
	}
	return out
}

// Substitute returns a new DAG in which node idx's single operation is
// replaced by sub, a sequence of fully resolved (concrete-qubit) ops. The
// new DAG is rebuilt from scratch so all resource dependencies — including
// the ones sub's expanded ops introduce among themselves — are recomputed
// correctly (spec §4.2's substitute contract).
func (d *DAG) Substitute(idx int, sub []GateOp) (*DAG, error) {
	if idx < 0 || idx >= d.Len() {
		return nil, qerr.New(qerr.KindRoutingUnitaryMismatch, "substitute: node index out of range")
	}
	newOps := make([]GateOp, 0, d.Len()-1+len(sub))
	newOps = append(newOps, d.Circuit.Ops[:idx]...)
	newOps = append(newOps, sub...)
	newOps = append(newOps, d.Circuit.Ops[idx+1:]...)
	newCircuit := Circuit{
		NumQubits: d.Circuit.NumQubits,
		NumClbits: d.Circuit.NumClbits,
		Ops:       newOps,
	}
	return Build(newCircuit), nil
}

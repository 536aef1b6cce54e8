// Package circuitdag holds the value-typed Circuit (spec §3) and its
// derived DAG view (spec §4.2): nodes are operations, edges are qubit/clbit
// data dependencies in program order.
package circuitdag

import (
	"fmt"

	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/qerr"
)

// GateOp is a single operation in a circuit: a gate kind, its ordered
// logical qubit operands, an optional ordered list of classical bit
// operands (measurement only), and an optional parameter vector.
type GateOp struct {
	Kind   gate.Kind
	Qubits []int
	Clbits []int
	Params []float64
}

func (op GateOp) clone() GateOp {
	out := op
	out.Qubits = append([]int(nil), op.Qubits...)
	if op.Clbits != nil {
		out.Clbits = append([]int(nil), op.Clbits...)
	}
	if op.Params != nil {
		out.Params = append([]float64(nil), op.Params...)
	}
	return out
}

// validate checks GateOp's own invariants (spec §3): qubit indices are
// pairwise distinct, and arity/param-count match the Gate Library entry
// for Kind.
func (op GateOp) validate() error {
	seen := make(map[int]bool, len(op.Qubits))
	for _, q := range op.Qubits {
		if seen[q] {
			return qerr.New(qerr.KindInvalidArity, fmt.Sprintf("%s: duplicate qubit operand %d", op.Kind, q))
		}
		seen[q] = true
	}
	return gate.ValidateOp(op.Kind, len(op.Qubits), len(op.Params))
}

// Circuit is an immutable value-typed record (spec §3): qubit/clbit
// counts and an ordered sequence of operations. Every transformation in
// this module (Normalizer, Router, ...) produces a new Circuit rather than
// mutating one in place.
type Circuit struct {
	NumQubits int
	NumClbits int
	Ops       []GateOp
}

// New builds a Circuit from a copy of ops, validating every operation and
// the measurement-ordering invariant from spec §3 (a measurement is never
// followed by another op on the same qubit).
func New(numQubits, numClbits int, ops []GateOp) (Circuit, error) {
	cloned := make([]GateOp, len(ops))
	for i, op := range ops {
		cloned[i] = op.clone()
	}
	c := Circuit{NumQubits: numQubits, NumClbits: numClbits, Ops: cloned}
	if err := c.Validate(); err != nil {
		return Circuit{}, err
	}
	return c, nil
}

// Validate checks every op's own invariants, index-range invariants, and
// the "measurement is terminal on its qubit" ordering invariant (spec §3).
func (c Circuit) Validate() error {
	measured := make(map[int]bool)
	for i, op := range c.Ops {
		if err := op.validate(); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		for _, q := range op.Qubits {
			if q < 0 || q >= c.NumQubits {
				return qerr.New(qerr.KindInvalidArity, fmt.Sprintf("op %d: qubit %d out of range [0,%d)", i, q, c.NumQubits))
			}
			if measured[q] {
				return qerr.New(qerr.KindInvalidArity, fmt.Sprintf("op %d: qubit %d used after measurement", i, q))
			}
		}
		for _, cb := range op.Clbits {
			if cb < 0 || cb >= c.NumClbits {
				return qerr.New(qerr.KindInvalidArity, fmt.Sprintf("op %d: clbit %d out of range [0,%d)", i, cb, c.NumClbits))
			}
		}
		if op.Kind == gate.Measure {
			for _, q := range op.Qubits {
				measured[q] = true
			}
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c Circuit) Clone() Circuit {
	ops := make([]GateOp, len(c.Ops))
	for i, op := range c.Ops {
		ops[i] = op.clone()
	}
	return Circuit{NumQubits: c.NumQubits, NumClbits: c.NumClbits, Ops: ops}
}

// TwoQubitOps returns the indices of ops with exactly two qubit operands,
// the population the Layout Planner's interaction graph and the Router's
// legality checks both care about.
func (c Circuit) TwoQubitOps() []int {
	var out []int
	for i, op := range c.Ops {
		if len(op.Qubits) == 2 {
			out = append(out, i)
		}
	}
	return out
}

// GateCounts tallies operations by kind, used by structural metrics (spec
// §3's TranspilationResult) and by tests.
func (c Circuit) GateCounts() map[gate.Kind]int {
	counts := make(map[gate.Kind]int)
	for _, op := range c.Ops {
		counts[op.Kind]++
	}
	return counts
}

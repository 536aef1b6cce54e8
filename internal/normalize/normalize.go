// Package normalize implements the Normalizer (spec §4.4): it rewrites a
// Circuit so every operation's kind lies in a target basis, preserving the
// composed unitary up to global phase.
package normalize

import (
	"fmt"
	"math"
	"sort"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/gate"
)

const halfPi = math.Pi / 2

// singleQubitUnitary reports whether k is a single-qubit kind with a fixed
// matrix representation, i.e. a candidate for the rotation-fusion pass.
// Measure and Barrier are excluded even though they take one qubit operand.
func singleQubitUnitary(k gate.Kind) bool {
	switch k {
	case gate.Measure, gate.Barrier:
		return false
	}
	info, ok := gate.LookupInfo(k)
	return ok && info.Arity == 1
}

// Normalize rewrites c so every op's kind is a member of basis (spec §4.4's
// normalize(circuit, basis) → Circuit contract). It performs a single pass
// that decomposes non-basis kinds via the Gate Library, followed by a local
// fusion pass that collapses adjacent single-qubit rotations on the same
// qubit into at most one basis-native gate sequence, then drops any
// resulting identity operations.
func Normalize(c circuitdag.Circuit, basis []gate.Kind) (circuitdag.Circuit, error) {
	basisSet := gate.Set(basis)

	expanded := make([]circuitdag.GateOp, 0, len(c.Ops))
	for _, op := range c.Ops {
		steps, err := expand(op, basisSet)
		if err != nil {
			return circuitdag.Circuit{}, err
		}
		expanded = append(expanded, steps...)
	}

	fused := fuseSingleQubitRuns(expanded, basisSet)
	final := dropIdentities(fused, basisSet)

	return circuitdag.New(c.NumQubits, c.NumClbits, final)
}

// expand decomposes op into a sequence of ops whose kinds all lie in
// basisSet, recursing through the Gate Library's decomposition rules. It
// special-cases SWAP, CX<->CZ via the Hadamard sandwich, and any
// DefaultBasis-native single-qubit kind that still needs further synthesis:
// gate.Decompose only ever reduces a kind down to DefaultBasis (spec §3's
// universal target set) and leaves DefaultBasis members untouched, so a
// device basis narrower than DefaultBasis needs rules the Gate Library
// itself does not carry.
func expand(op circuitdag.GateOp, basisSet map[gate.Kind]bool) ([]circuitdag.GateOp, error) {
	if basisSet[op.Kind] {
		return []circuitdag.GateOp{op}, nil
	}
	if op.Kind == gate.SWAP {
		a, b := op.Qubits[0], op.Qubits[1]
		return expandChain([]circuitdag.GateOp{
			{Kind: gate.CX, Qubits: []int{a, b}},
			{Kind: gate.CX, Qubits: []int{b, a}},
			{Kind: gate.CX, Qubits: []int{a, b}},
		}, basisSet)
	}
	if op.Kind == gate.CX && basisSet[gate.CZ] {
		c, t := op.Qubits[0], op.Qubits[1]
		return expandChain([]circuitdag.GateOp{
			{Kind: gate.H, Qubits: []int{t}},
			{Kind: gate.CZ, Qubits: []int{c, t}},
			{Kind: gate.H, Qubits: []int{t}},
		}, basisSet)
	}
	if op.Kind == gate.CZ && basisSet[gate.CX] {
		c, t := op.Qubits[0], op.Qubits[1]
		return expandChain([]circuitdag.GateOp{
			{Kind: gate.H, Qubits: []int{t}},
			{Kind: gate.CX, Qubits: []int{c, t}},
			{Kind: gate.H, Qubits: []int{t}},
		}, basisSet)
	}
	if singleQubitUnitary(op.Kind) && gate.InBasis(op.Kind, gate.DefaultBasis) {
		m, err := gate.Matrix1For(op.Kind, op.Params)
		if err != nil {
			return nil, err
		}
		return synthesizeMatrix(op.Qubits[0], m, basisSet)
	}
	if gate.InBasis(op.Kind, gate.DefaultBasis) {
		return nil, fmt.Errorf("normalize: no rule to map %s into target basis", op.Kind)
	}

	steps, err := gate.Decompose(op.Kind, op.Params)
	if err != nil {
		return nil, err
	}
	var out []circuitdag.GateOp
	for _, s := range steps {
		qubits := make([]int, len(s.Roles))
		for i, r := range s.Roles {
			qubits[i] = op.Qubits[r]
		}
		sub := circuitdag.GateOp{Kind: s.Kind, Qubits: qubits, Params: s.Params}
		expanded, err := expand(sub, basisSet)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func expandChain(chain []circuitdag.GateOp, basisSet map[gate.Kind]bool) ([]circuitdag.GateOp, error) {
	var out []circuitdag.GateOp
	for _, sub := range chain {
		expanded, err := expand(sub, basisSet)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// synthesizeMatrix rewrites the single-qubit unitary m on qubit q into a
// sequence of ops whose kinds all lie in basisSet. Euler-angle extraction
// (gate.U3Angles) plus the RZ/SX and RZ/RX conjugation identities are the
// same identities original_source's basis_mapping.py uses for rx/cx rewriting
// (RX(θ) = RZ(-π/2)·SX·RZ(θ)·SX·RZ(π/2), generalized here to an arbitrary
// single-qubit unitary instead of just rx).
func synthesizeMatrix(q int, m gate.Matrix1, basisSet map[gate.Kind]bool) ([]circuitdag.GateOp, error) {
	if gate.IsIdentity1(m, 1e-9) {
		return nil, nil
	}
	theta, phi, lambda := gate.U3Angles(m)
	switch {
	case basisSet[gate.U3]:
		return []circuitdag.GateOp{{Kind: gate.U3, Qubits: []int{q}, Params: []float64{theta, phi, lambda}}}, nil
	case basisSet[gate.RZ] && basisSet[gate.SX]:
		// U3(θ,φ,λ) = RZ(φ)·SX·RZ(π-θ)·SX·RZ(λ+π), up to global phase.
		return []circuitdag.GateOp{
			{Kind: gate.RZ, Qubits: []int{q}, Params: []float64{lambda + math.Pi}},
			{Kind: gate.SX, Qubits: []int{q}},
			{Kind: gate.RZ, Qubits: []int{q}, Params: []float64{math.Pi - theta}},
			{Kind: gate.SX, Qubits: []int{q}},
			{Kind: gate.RZ, Qubits: []int{q}, Params: []float64{phi}},
		}, nil
	case basisSet[gate.RZ] && basisSet[gate.RX]:
		// U3(θ,φ,λ) = RZ(φ+π/2)·RX(θ)·RZ(λ-π/2), up to global phase.
		return []circuitdag.GateOp{
			{Kind: gate.RZ, Qubits: []int{q}, Params: []float64{lambda - halfPi}},
			{Kind: gate.RX, Qubits: []int{q}, Params: []float64{theta}},
			{Kind: gate.RZ, Qubits: []int{q}, Params: []float64{phi + halfPi}},
		}, nil
	case basisSet[gate.RZ] && basisSet[gate.RY]:
		// U3(θ,φ,λ) = RZ(φ)·RY(θ)·RZ(λ), up to global phase.
		return []circuitdag.GateOp{
			{Kind: gate.RZ, Qubits: []int{q}, Params: []float64{lambda}},
			{Kind: gate.RY, Qubits: []int{q}, Params: []float64{theta}},
			{Kind: gate.RZ, Qubits: []int{q}, Params: []float64{phi}},
		}, nil
	default:
		return nil, fmt.Errorf("normalize: no single-qubit synthesis rule for target basis (need u3, or rz+sx, or rz+rx, or rz+ry)")
	}
}

type pendingFusion struct {
	ops    []circuitdag.GateOp
	matrix gate.Matrix1
	active bool
}

// fuseSingleQubitRuns merges runs of adjacent single-qubit-unitary
// operations on the same qubit into a basis-native gate sequence (spec
// §4.4d: "fused into at most one U3, or the basis equivalent, before final
// decomposition"). A run of length one is re-emitted unchanged, since it is
// already a basis member (every op reaching this pass was produced by
// expand, which guarantees basis membership). A longer run is fused into a
// single matrix and synthesized into basisSet; if the target basis carries
// no synthesis rule for it, the run is passed through unfused rather than
// silently emitting an out-of-basis kind. A run breaks whenever an operation
// touching that qubit is not itself a single-qubit unitary (a two/three-qubit
// gate, Measure, or Barrier).
func fuseSingleQubitRuns(ops []circuitdag.GateOp, basisSet map[gate.Kind]bool) []circuitdag.GateOp {
	pending := make(map[int]*pendingFusion)
	var out []circuitdag.GateOp

	flush := func(q int) {
		p := pending[q]
		if p == nil || !p.active {
			return
		}
		p.active = false
		if len(p.ops) == 0 {
			return
		}
		if len(p.ops) == 1 {
			out = append(out, p.ops[0])
			return
		}
		if gate.IsIdentity1(p.matrix, 1e-9) {
			return
		}
		synthesized, err := synthesizeMatrix(q, p.matrix, basisSet)
		if err != nil {
			// The basis has no rule to synthesize the fused unitary; leave
			// the run unfused rather than emit a kind outside basisSet.
			out = append(out, p.ops...)
			return
		}
		out = append(out, synthesized...)
	}

	for _, op := range ops {
		if len(op.Qubits) == 1 && singleQubitUnitary(op.Kind) {
			q := op.Qubits[0]
			m, err := gate.Matrix1For(op.Kind, op.Params)
			if err != nil {
				flush(q)
				out = append(out, op)
				continue
			}
			p := pending[q]
			if p == nil {
				p = &pendingFusion{}
				pending[q] = p
			}
			if !p.active {
				p.ops = []circuitdag.GateOp{op}
				p.matrix = m
				p.active = true
			} else {
				p.ops = append(p.ops, op)
				p.matrix = gate.Mul1(m, p.matrix)
			}
			continue
		}
		for _, q := range op.Qubits {
			flush(q)
		}
		out = append(out, op)
	}

	qubits := make([]int, 0, len(pending))
	for q := range pending {
		qubits = append(qubits, q)
	}
	sort.Ints(qubits)
	for _, q := range qubits {
		flush(q)
	}
	return out
}

// dropIdentities removes single-qubit-unitary ops that reduce to the
// identity up to global phase (spec §4.4e: RZ(0), RX(2*pi*k), ...).
func dropIdentities(ops []circuitdag.GateOp, basisSet map[gate.Kind]bool) []circuitdag.GateOp {
	out := make([]circuitdag.GateOp, 0, len(ops))
	for _, op := range ops {
		if len(op.Qubits) == 1 && singleQubitUnitary(op.Kind) {
			if m, err := gate.Matrix1For(op.Kind, op.Params); err == nil && gate.IsIdentity1(m, 1e-9) {
				continue
			}
		}
		out = append(out, op)
	}
	return out
}

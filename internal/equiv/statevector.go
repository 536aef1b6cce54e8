package equiv

import (
	"fmt"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/gate"
)

// StateVector is a dense amplitude vector over numQubits qubits, evolved one
// gate at a time by bit manipulation on the amplitude index — the same
// technique the teacher's state simulator uses, generalized here to pull its
// matrices from the Gate Library instead of a per-gate-name switch, so any
// recognized single- or two-qubit kind can be simulated without new cases.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewBasisState returns the pure computational-basis state |basisIndex>.
func NewBasisState(numQubits, basisIndex int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[basisIndex] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Apply evolves the state by op. Measure and Barrier are semantically
// no-ops on the amplitude vector for equivalence purposes — only the
// unitary part of the circuit matters.
func (s *StateVector) Apply(op circuitdag.GateOp) error {
	if op.Kind == gate.Measure || op.Kind == gate.Barrier {
		return nil
	}
	switch len(op.Qubits) {
	case 1:
		m, err := gate.Matrix1For(op.Kind, op.Params)
		if err != nil {
			return err
		}
		s.apply1(op.Qubits[0], m)
		return nil
	case 2:
		m, err := gate.Matrix2For(op.Kind)
		if err != nil {
			return err
		}
		s.apply2(op.Qubits[0], op.Qubits[1], m)
		return nil
	default:
		return fmt.Errorf("equiv: %s has unsupported arity %d for simulation, expected a decomposed circuit", op.Kind, len(op.Qubits))
	}
}

func (s *StateVector) apply1(q int, m gate.Matrix1) {
	bit := 1 << q
	amps := s.Amplitudes
	for i := 0; i < len(amps); i++ {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a, b := amps[i], amps[j]
		amps[i] = m[0][0]*a + m[0][1]*b
		amps[j] = m[1][0]*a + m[1][1]*b
	}
}

// apply2 applies m, whose basis ordering is (bit(q0), bit(q1)) read as a
// 2-bit number (spec-matching Matrix2For convention: control/first operand
// is the high bit), to every amplitude quadruple sharing all other bits.
func (s *StateVector) apply2(q0, q1 int, m gate.Matrix2) {
	bit0, bit1 := 1<<q0, 1<<q1
	amps := s.Amplitudes
	for i := 0; i < len(amps); i++ {
		if i&bit0 != 0 || i&bit1 != 0 {
			continue
		}
		i00, i01, i10, i11 := i, i|bit1, i|bit0, i|bit0|bit1
		a00, a01, a10, a11 := amps[i00], amps[i01], amps[i10], amps[i11]
		amps[i00] = m[0][0]*a00 + m[0][1]*a01 + m[0][2]*a10 + m[0][3]*a11
		amps[i01] = m[1][0]*a00 + m[1][1]*a01 + m[1][2]*a10 + m[1][3]*a11
		amps[i10] = m[2][0]*a00 + m[2][1]*a01 + m[2][2]*a10 + m[2][3]*a11
		amps[i11] = m[3][0]*a00 + m[3][1]*a01 + m[3][2]*a10 + m[3][3]*a11
	}
}

// simulate runs every op of c, in order, over a fresh basis state and
// returns the resulting amplitude vector.
func simulate(c circuitdag.Circuit, numQubits, basisIndex int) ([]complex128, error) {
	sv := NewBasisState(numQubits, basisIndex)
	for _, op := range c.Ops {
		if err := sv.Apply(op); err != nil {
			return nil, err
		}
	}
	return sv.Amplitudes, nil
}

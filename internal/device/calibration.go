// Package device is the Device Model (spec §4.3): the physical connectivity
// graph plus per-qubit and per-gate calibration, and the adjacency/cost
// queries built on top of it.
package device

import "github.com/qxform/qxform/internal/gate"

// QubitCal holds the per-qubit calibration record from spec §3. Every
// field is optional — a missing value is never silently treated as zero
// (spec §9's design note): callers must check the pointer.
type QubitCal struct {
	T1           *float64
	T2           *float64
	Frequency    *float64
	ReadoutError *float64
}

// GateCalKey identifies a calibrated gate entry by kind and the physical
// qubit tuple it acts on. Q1 is -1 for single-qubit kinds.
type GateCalKey struct {
	Kind gate.Kind
	Q0   int
	Q1   int
}

func gateCalKey(k gate.Kind, qubits []int) GateCalKey {
	switch len(qubits) {
	case 1:
		return GateCalKey{Kind: k, Q0: qubits[0], Q1: -1}
	case 2:
		a, b := qubits[0], qubits[1]
		if a > b {
			a, b = b, a
		}
		return GateCalKey{Kind: k, Q0: a, Q1: b}
	default:
		return GateCalKey{Kind: k, Q0: -1, Q1: -1}
	}
}

// GateCal holds the per-gate calibration record from spec §3.
type GateCal struct {
	GateError  *float64
	Duration   *float64
	Parameters []float64
}

// Calibration is the two-map calibration record from spec §3.
type Calibration struct {
	Qubits map[int]QubitCal
	Gates  map[GateCalKey]GateCal
}

// NewCalibration returns an empty Calibration, safe to populate.
func NewCalibration() Calibration {
	return Calibration{
		Qubits: make(map[int]QubitCal),
		Gates:  make(map[GateCalKey]GateCal),
	}
}

// QubitCalibration returns the calibration for physical qubit p, if any.
func (c Calibration) QubitCalibration(p int) (QubitCal, bool) {
	q, ok := c.Qubits[p]
	return q, ok
}

// GateCalibration returns the calibration entry for kind on qubits, if any,
// and whether it is usable for cost purposes. An entry with GateError == 1.0
// is present but reported unusable, per spec §3's "obsolete / not
// operational" invariant.
func (c Calibration) GateCalibration(k gate.Kind, qubits []int) (cal GateCal, present bool, usable bool) {
	cal, present = c.Gates[gateCalKey(k, qubits)]
	if !present {
		return cal, false, false
	}
	if cal.GateError != nil && *cal.GateError >= 1.0 {
		return cal, true, false
	}
	return cal, true, true
}

// Set records a gate calibration entry, keyed by kind and qubit tuple.
func (c Calibration) Set(k gate.Kind, qubits []int, cal GateCal) {
	c.Gates[gateCalKey(k, qubits)] = cal
}

// SetQubit records a qubit calibration entry.
func (c Calibration) SetQubit(p int, cal QubitCal) {
	c.Qubits[p] = cal
}

func ptr(v float64) *float64 { return &v }

// Float builds a *float64, used by callers constructing calibration
// literals (tests, JSON decoding) without repeating address-of-local
// boilerplate.
func Float(v float64) *float64 { return ptr(v) }

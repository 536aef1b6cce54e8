// Package equiv implements the optional small-circuit equivalence check
// (spec §5): a permutation-aware comparison of the composed unitaries of a
// circuit and its routed counterpart, up to global phase.
package equiv

import (
	"math"
	"math/cmplx"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/layout"
	"github.com/qxform/qxform/internal/normalize"
	"github.com/qxform/qxform/internal/qerr"
	"github.com/qxform/qxform/internal/router"
)

// MaxQubits is the largest qubit count the check will attempt — above it
// the check is skipped rather than paying the exponential simulation cost
// (spec §5's "n_q ≤ 10; skipped above that threshold").
const MaxQubits = 10

// DefaultTolerance is the Frobenius-distance threshold spec §8's worked
// examples hold equivalent circuits to.
const DefaultTolerance = 1e-9

// Result is the outcome of a Check call.
type Result struct {
	Skipped  bool
	Equal    bool
	Distance float64
}

// Check compares circuit's composed unitary, viewed through routed's
// initial layout, against routed.Circuit's composed unitary, viewed through
// routed's final layout, up to a single shared global phase (spec §4.6's
// routing guarantee, restated as a runtime check). It reports Skipped
// instead of an error when either side exceeds MaxQubits.
func Check(circuit circuitdag.Circuit, routed router.RoutedCircuit) (Result, error) {
	nLogical := circuit.NumQubits
	nPhys := routed.Circuit.NumQubits
	if nLogical > MaxQubits || nPhys > MaxQubits {
		return Result{Skipped: true}, nil
	}

	elementaryCircuit, err := normalize.Normalize(circuit, gate.DefaultBasis)
	if err != nil {
		return Result{}, err
	}
	elementaryRouted, err := normalize.Normalize(routed.Circuit, gate.DefaultBasis)
	if err != nil {
		return Result{}, err
	}

	dim := 1 << nLogical
	columnsCircuit := make([][]complex128, dim)
	columnsRouted := make([][]complex128, dim)
	totalLeak := 0.0
	for basis := 0; basis < dim; basis++ {
		out, err := simulate(elementaryCircuit, nLogical, basis)
		if err != nil {
			return Result{}, err
		}
		columnsCircuit[basis] = out

		physBasis, err := embedInitial(basis, nLogical, routed.InitialLayout)
		if err != nil {
			return Result{}, err
		}
		physOut, err := simulate(elementaryRouted, nPhys, physBasis)
		if err != nil {
			return Result{}, err
		}
		projected, leak := projectFinal(physOut, nLogical, nPhys, routed.FinalLayout)
		totalLeak += leak
		columnsRouted[basis] = projected
	}

	distance := frobeniusDistanceUpToPhase(columnsCircuit, columnsRouted)
	if totalLeak > DefaultTolerance {
		distance = math.Max(distance, math.Sqrt(totalLeak))
	}
	return Result{Equal: distance <= DefaultTolerance, Distance: distance}, nil
}

// embedInitial maps a logical computational-basis index into the
// device-sized basis index it corresponds to under initial, with every
// physical qubit not holding a logical one left at |0>.
func embedInitial(logicalBasis, nLogical int, initial layout.Layout) (int, error) {
	phys := 0
	for l := 0; l < nLogical; l++ {
		if logicalBasis&(1<<l) == 0 {
			continue
		}
		p, ok := initial.Physical(l)
		if !ok {
			return 0, qerr.New(qerr.KindRoutingUnitaryMismatch, "equiv: initial layout has no image for logical qubit")
		}
		phys |= 1 << p
	}
	return phys, nil
}

// projectFinal reduces a device-sized amplitude vector back into the
// logical basis via final's inverse mapping, reporting leaked probability
// mass into configurations where an unmapped ("ancilla") physical qubit
// ended up excited — a genuine mismatch, not a bookkeeping artifact.
func projectFinal(physAmps []complex128, nLogical, nPhys int, final layout.Layout) ([]complex128, float64) {
	physToLogical := make(map[int]int, nLogical)
	for l, p := range final.Map() {
		physToLogical[p] = l
	}

	logicalAmps := make([]complex128, 1<<nLogical)
	leak := 0.0
	for physIdx, amp := range physAmps {
		if amp == 0 {
			continue
		}
		logicalIdx := 0
		ancillaExcited := false
		for p := 0; p < nPhys; p++ {
			if physIdx&(1<<p) == 0 {
				continue
			}
			if l, ok := physToLogical[p]; ok {
				logicalIdx |= 1 << l
			} else {
				ancillaExcited = true
			}
		}
		if ancillaExcited {
			leak += real(amp)*real(amp) + imag(amp)*imag(amp)
			continue
		}
		logicalAmps[logicalIdx] += amp
	}
	return logicalAmps, leak
}

// frobeniusDistanceUpToPhase treats a and b as matrices given by columns and
// computes ||A - e^{iθ}B||_F for the θ minimizing that distance, the
// standard "equal up to global phase" comparison (spec §8's worked
// examples).
func frobeniusDistanceUpToPhase(a, b [][]complex128) float64 {
	var overlap complex128
	for col := range a {
		for i := range a[col] {
			overlap += cmplx.Conj(a[col][i]) * b[col][i]
		}
	}
	phase := complex(1, 0)
	if cmplx.Abs(overlap) > 1e-15 {
		phase = overlap / complex(cmplx.Abs(overlap), 0)
	}

	sumSq := 0.0
	for col := range a {
		for i := range a[col] {
			d := a[col][i] - phase*b[col][i]
			sumSq += real(d)*real(d) + imag(d)*imag(d)
		}
	}
	return math.Sqrt(sumSq)
}

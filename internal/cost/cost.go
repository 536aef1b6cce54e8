// Package cost implements the Cost Estimator (spec §4.7): it turns a
// RoutedCircuit and a device's calibration into the TranspilationResult's
// quantitative fidelity, error, and timing metrics.
package cost

import (
	"math"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/router"
)

// FallbackGateError is the ε used in place of a missing calibration entry
// when computing per-gate fidelity (spec §4.7's "1 - ε" fallback).
const FallbackGateError = 0.0

// QubitDetail is the per-physical-qubit breakdown spec §4.7 requires
// alongside the aggregate Metrics.
type QubitDetail struct {
	ActiveTime               float64 `json:"active_time"`
	T1Error                  float64 `json:"t1_error"`
	T2Error                  float64 `json:"t2_error"`
	CombinedDecoherenceError float64 `json:"combined_decoherence_error"`
	ReadoutError             float64 `json:"readout_error"`
	Measured                 bool    `json:"measured"`
}

// Metrics is the TranspilationResult's quantitative record (spec §4.7).
type Metrics struct {
	GateFidelity          float64             `json:"gate_fidelity"`
	OverallGateError      float64             `json:"overall_gate_error"`
	DecoherenceFidelity   float64             `json:"decoherence_fidelity"`
	AverageDecoherenceErr float64             `json:"average_decoherence_error"`
	ReadoutFidelity       float64             `json:"readout_fidelity"`
	OverallReadoutError   float64             `json:"overall_readout_error"`
	AverageReadoutError   float64             `json:"average_readout_error"`
	Fidelity              float64             `json:"fidelity"`
	EffectiveError        float64             `json:"effective_error"`
	OverallExecutionTime  float64             `json:"overall_execution_time"`
	PerQubit              map[int]QubitDetail `json:"per_qubit"`
}

// Estimate implements estimate(routed, device) → Metrics (spec §4.7).
func Estimate(routed router.RoutedCircuit, top *device.Topology) Metrics {
	c := routed.Circuit

	logGateFidelitySum := 0.0
	overallGateError := 0.0
	for _, op := range c.Ops {
		if !isUnitaryOp(op.Kind) {
			continue
		}
		errRate := gateErrorFor(top, op)
		overallGateError += errRate
		logGateFidelitySum += math.Log(1 - errRate)
	}

	activeTime := make(map[int]float64)
	for _, op := range c.Ops {
		if !isUnitaryOp(op.Kind) {
			continue
		}
		d := gateDurationFor(top, op)
		for _, q := range op.Qubits {
			activeTime[q] += d
		}
	}

	measured := make(map[int]bool)
	for _, op := range c.Ops {
		if op.Kind == gate.Measure {
			measured[op.Qubits[0]] = true
		}
	}

	perQubit := make(map[int]QubitDetail)
	logDecFidelitySum := 0.0
	decErrSum := 0.0
	decCount := 0
	for p, t := range activeTime {
		detail := QubitDetail{ActiveTime: t}
		rate := 0.0
		if qc, ok := top.Calibration.QubitCalibration(p); ok {
			if qc.T1 != nil && *qc.T1 > 0 {
				detail.T1Error = 1 - math.Exp(-t/(*qc.T1))
				rate += 1 / *qc.T1
			}
			if qc.T2 != nil && *qc.T2 > 0 {
				detail.T2Error = 1 - math.Exp(-t/(*qc.T2))
				rate += 1 / *qc.T2
			}
		}
		detail.CombinedDecoherenceError = 1 - math.Exp(-t*rate)
		logDecFidelitySum += math.Log(1 - detail.CombinedDecoherenceError)
		decErrSum += detail.CombinedDecoherenceError
		decCount++
		perQubit[p] = detail
	}

	logReadoutFidelitySum := 0.0
	readoutErrSum := 0.0
	readoutCount := 0
	for p := range measured {
		detail := perQubit[p]
		detail.Measured = true
		if qc, ok := top.Calibration.QubitCalibration(p); ok && qc.ReadoutError != nil {
			detail.ReadoutError = *qc.ReadoutError
		}
		logReadoutFidelitySum += math.Log(1 - detail.ReadoutError)
		readoutErrSum += detail.ReadoutError
		readoutCount++
		perQubit[p] = detail
	}

	gateFidelity := math.Exp(logGateFidelitySum)
	decFidelity := math.Exp(logDecFidelitySum)
	readoutFidelity := math.Exp(logReadoutFidelitySum)
	fidelity := gateFidelity * readoutFidelity * decFidelity

	avgDec := 0.0
	if decCount > 0 {
		avgDec = decErrSum / float64(decCount)
	}
	avgRo := 0.0
	if readoutCount > 0 {
		avgRo = readoutErrSum / float64(readoutCount)
	}

	return Metrics{
		GateFidelity:          gateFidelity,
		OverallGateError:      overallGateError,
		DecoherenceFidelity:   decFidelity,
		AverageDecoherenceErr: avgDec,
		ReadoutFidelity:       readoutFidelity,
		OverallReadoutError:   readoutErrSum,
		AverageReadoutError:   avgRo,
		Fidelity:              fidelity,
		EffectiveError:        1 - fidelity,
		OverallExecutionTime:  criticalPathDuration(c, top),
		PerQubit:              perQubit,
	}
}

func isUnitaryOp(k gate.Kind) bool {
	return k != gate.Measure && k != gate.Barrier
}

// gateErrorFor looks up g's calibrated error, falling back to
// FallbackGateError when no usable entry exists (spec §4.7's f(g) rule). A
// bare SWAP with no direct calibration entry instead falls back to the
// three-CX error estimate, since most devices calibrate SWAP only
// indirectly via the CX it decomposes into.
func gateErrorFor(top *device.Topology, op circuitdag.GateOp) float64 {
	cal, present, usable := top.Calibration.GateCalibration(op.Kind, op.Qubits)
	if present && usable && cal.GateError != nil {
		return *cal.GateError
	}
	if op.Kind == gate.SWAP {
		return estimateSwapError(top, op.Qubits)
	}
	return FallbackGateError
}

// estimateSwapError is transpilation_utils.py's estimate_swap_error: a SWAP
// costs as much as three CX gates on the same pair, 1 - (1-cx_error)^3.
func estimateSwapError(top *device.Topology, qubits []int) float64 {
	cxError := FallbackGateError
	if cal, present, usable := top.Calibration.GateCalibration(gate.CX, qubits); present && usable && cal.GateError != nil {
		cxError = *cal.GateError
	}
	return 1 - math.Pow(1-cxError, 3)
}

func gateDurationFor(top *device.Topology, op circuitdag.GateOp) float64 {
	cal, present, usable := top.Calibration.GateCalibration(op.Kind, op.Qubits)
	if present && usable && cal.Duration != nil {
		return *cal.Duration
	}
	if op.Kind == gate.SWAP {
		if cxCal, present, usable := top.Calibration.GateCalibration(gate.CX, op.Qubits); present && usable && cxCal.Duration != nil {
			return 3 * *cxCal.Duration
		}
	}
	return 0
}

// criticalPathDuration is the longest-path sum of per-op durations through
// the emitted circuit's data dependencies (spec §4.7's overall execution
// time — the critical path, not the sum of all durations).
func criticalPathDuration(c circuitdag.Circuit, top *device.Topology) float64 {
	d := circuitdag.Build(c)
	n := d.Len()
	if n == 0 {
		return 0
	}
	finish := make([]float64, n)
	best := 0.0
	for _, i := range d.TopologicalOrder() {
		dur := gateDurationFor(top, c.Ops[i])
		start := 0.0
		for _, p := range d.Predecessors(i) {
			if finish[p] > start {
				start = finish[p]
			}
		}
		finish[i] = start + dur
		if finish[i] > best {
			best = finish[i]
		}
	}
	return best
}

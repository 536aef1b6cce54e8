package pipeline

import (
	"fmt"
	"sort"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/qerr"
)

// calibrationWarnings builds one CalibrationIncomplete warning per distinct
// (kind, qubit-tuple) touched by routed that either has no calibration
// entry or holds an obsolete one (spec §7, supplemented per SPEC_FULL.md's
// calibration-completeness feature).
func calibrationWarnings(routed circuitdag.Circuit, top *device.Topology) []qerr.Warning {
	seen := make(map[device.GateCalKey]bool)
	var out []qerr.Warning
	for _, op := range routed.Ops {
		if op.Kind == gate.Measure || op.Kind == gate.Barrier {
			continue
		}
		key := device.GateCalKey{Kind: op.Kind, Q0: -1, Q1: -1}
		switch len(op.Qubits) {
		case 1:
			key.Q0 = op.Qubits[0]
		case 2:
			a, b := op.Qubits[0], op.Qubits[1]
			if a > b {
				a, b = b, a
			}
			key.Q0, key.Q1 = a, b
		default:
			continue
		}
		if seen[key] {
			continue
		}
		_, present, usable := top.Calibration.GateCalibration(op.Kind, op.Qubits)
		if present && usable {
			continue
		}
		seen[key] = true
		reason := "no calibration entry"
		if present && !usable {
			reason = "obsolete calibration entry (gate_error >= 1.0)"
		}
		out = append(out, qerr.Warning{
			Kind:    qerr.KindCalibrationIncomplete,
			Message: fmt.Sprintf("%s on qubits %v: %s", op.Kind, op.Qubits, reason),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Message < out[j].Message })
	return out
}

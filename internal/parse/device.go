package parse

import (
	"encoding/json"
	"fmt"

	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
)

// jsonQubitCal mirrors spec §3's per-qubit calibration record.
type jsonQubitCal struct {
	T1           *float64 `json:"t1,omitempty"`
	T2           *float64 `json:"t2,omitempty"`
	Frequency    *float64 `json:"frequency,omitempty"`
	ReadoutError *float64 `json:"readout_error,omitempty"`
}

// jsonGateCal mirrors spec §3's per-gate calibration record. Qubits gives
// the physical tuple this entry applies to.
type jsonGateCal struct {
	Kind       string    `json:"kind"`
	Qubits     []int     `json:"qubits"`
	GateError  *float64  `json:"gate_error,omitempty"`
	Duration   *float64  `json:"duration,omitempty"`
	Parameters []float64 `json:"parameters,omitempty"`
}

// jsonCalibration mirrors spec §3's Calibration record.
type jsonCalibration struct {
	Qubits map[string]jsonQubitCal `json:"qubits,omitempty"`
	Gates  []jsonGateCal           `json:"gates,omitempty"`
}

// jsonDevice mirrors spec §6's device description record.
type jsonDevice struct {
	Name        string          `json:"name"`
	Vendor      string          `json:"vendor"`
	NumQubits   int             `json:"num_qubits"`
	CouplingMap [][2]int        `json:"coupling_map"`
	BasisGates  []string        `json:"basis_gates"`
	LayoutHint  string          `json:"layout_hint"`
	Calibration jsonCalibration `json:"calibration"`
}

// ParseDevice parses the device description record of spec §6.
func ParseDevice(data []byte) (*device.Topology, error) {
	var jd jsonDevice
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, fmt.Errorf("parse: invalid device JSON: %w", err)
	}
	basis := make([]gate.Kind, len(jd.BasisGates))
	for i, k := range jd.BasisGates {
		basis[i] = gate.Kind(k)
	}
	cal := device.NewCalibration()
	for key, qc := range jd.Calibration.Qubits {
		var p int
		if _, err := fmt.Sscanf(key, "%d", &p); err != nil {
			return nil, fmt.Errorf("parse: device calibration qubit key %q is not an index", key)
		}
		cal.SetQubit(p, device.QubitCal{
			T1:           qc.T1,
			T2:           qc.T2,
			Frequency:    qc.Frequency,
			ReadoutError: qc.ReadoutError,
		})
	}
	for _, gc := range jd.Calibration.Gates {
		cal.Set(gate.Kind(gc.Kind), gc.Qubits, device.GateCal{
			GateError:  gc.GateError,
			Duration:   gc.Duration,
			Parameters: gc.Parameters,
		})
	}
	return device.New(jd.NumQubits, jd.CouplingMap, basis, cal)
}

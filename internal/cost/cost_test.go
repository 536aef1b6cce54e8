package cost

import (
	"context"
	"testing"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/layout"
	"github.com/qxform/qxform/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineTopology(t *testing.T, n int, cal device.Calibration) *device.Topology {
	t.Helper()
	var coupling [][2]int
	for i := 0; i < n-1; i++ {
		coupling = append(coupling, [2]int{i, i + 1})
	}
	top, err := device.New(n, coupling, gate.DefaultBasis, cal)
	require.NoError(t, err)
	return top
}

func identityLayout(n int) layout.Layout {
	m := make(map[int]int, n)
	for i := 0; i < n; i++ {
		m[i] = i
	}
	return layout.New(m)
}

func routedFrom(t *testing.T, c circuitdag.Circuit, top *device.Topology) router.RoutedCircuit {
	t.Helper()
	routed, err := router.Route(context.Background(), c, top, identityLayout(c.NumQubits), router.Naive)
	require.NoError(t, err)
	return routed
}

func TestEstimatePerfectCalibrationGivesFidelityOne(t *testing.T) {
	cal := device.NewCalibration()
	cal.Set(gate.CX, []int{0, 1}, device.GateCal{GateError: device.Float(0), Duration: device.Float(0)})
	top := lineTopology(t, 2, cal)

	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)

	metrics := Estimate(routedFrom(t, c, top), top)
	assert.InDelta(t, 1.0, metrics.Fidelity, 1e-9)
	assert.InDelta(t, 0.0, metrics.EffectiveError, 1e-9)
	assert.InDelta(t, 0.0, metrics.OverallGateError, 1e-9)
}

func TestEstimateUsesCalibratedGateErrorInProduct(t *testing.T) {
	cal := device.NewCalibration()
	cal.Set(gate.CX, []int{0, 1}, device.GateCal{GateError: device.Float(0.02), Duration: device.Float(100)})
	top := lineTopology(t, 2, cal)

	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)

	metrics := Estimate(routedFrom(t, c, top), top)
	assert.InDelta(t, 0.02, metrics.OverallGateError, 1e-9)
	assert.InDelta(t, 0.98, metrics.GateFidelity, 1e-9)
}

func TestEstimateMissingCalibrationFallsBackToZeroError(t *testing.T) {
	top := lineTopology(t, 2, device.NewCalibration())
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)

	metrics := Estimate(routedFrom(t, c, top), top)
	assert.InDelta(t, 0.0, metrics.OverallGateError, 1e-9)
	assert.InDelta(t, 1.0, metrics.GateFidelity, 1e-9)
}

func TestEstimateObsoleteGateCalibrationIsTreatedAsMissing(t *testing.T) {
	cal := device.NewCalibration()
	cal.Set(gate.CX, []int{0, 1}, device.GateCal{GateError: device.Float(1.0)})
	top := lineTopology(t, 2, cal)
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)

	metrics := Estimate(routedFrom(t, c, top), top)
	assert.InDelta(t, 1.0, metrics.GateFidelity, 1e-9)
}

func TestEstimateDecoherenceErrorGrowsWithActiveTime(t *testing.T) {
	cal := device.NewCalibration()
	cal.Set(gate.CX, []int{0, 1}, device.GateCal{GateError: device.Float(0), Duration: device.Float(1000)})
	cal.SetQubit(0, device.QubitCal{T1: device.Float(50000), T2: device.Float(70000)})
	cal.SetQubit(1, device.QubitCal{T1: device.Float(50000), T2: device.Float(70000)})
	top := lineTopology(t, 2, cal)
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)

	metrics := Estimate(routedFrom(t, c, top), top)
	assert.Greater(t, metrics.AverageDecoherenceErr, 0.0)
	assert.Less(t, metrics.DecoherenceFidelity, 1.0)
	detail, ok := metrics.PerQubit[0]
	require.True(t, ok)
	assert.InDelta(t, 1000, detail.ActiveTime, 1e-9)
}

func TestEstimateMissingT1T2ContributesZeroDecoherence(t *testing.T) {
	cal := device.NewCalibration()
	cal.Set(gate.CX, []int{0, 1}, device.GateCal{GateError: device.Float(0), Duration: device.Float(1000)})
	top := lineTopology(t, 2, cal)
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)

	metrics := Estimate(routedFrom(t, c, top), top)
	assert.InDelta(t, 1.0, metrics.DecoherenceFidelity, 1e-9)
}

func TestEstimateReadoutErrorAppliesOnlyToMeasuredQubits(t *testing.T) {
	cal := device.NewCalibration()
	cal.SetQubit(0, device.QubitCal{ReadoutError: device.Float(0.03)})
	cal.SetQubit(1, device.QubitCal{ReadoutError: device.Float(0.05)})
	top := lineTopology(t, 2, cal)
	c, err := circuitdag.New(2, 2, []circuitdag.GateOp{
		{Kind: gate.CX, Qubits: []int{0, 1}},
		{Kind: gate.Measure, Qubits: []int{0}, Clbits: []int{0}},
	})
	require.NoError(t, err)

	metrics := Estimate(routedFrom(t, c, top), top)
	assert.InDelta(t, 0.03, metrics.OverallReadoutError, 1e-9)
	assert.InDelta(t, 0.97, metrics.ReadoutFidelity, 1e-9)
}

func TestEstimateExecutionTimeIsCriticalPathNotSum(t *testing.T) {
	cal := device.NewCalibration()
	cal.Set(gate.X, []int{0}, device.GateCal{Duration: device.Float(10)})
	cal.Set(gate.X, []int{1}, device.GateCal{Duration: device.Float(20)})
	cal.Set(gate.CX, []int{0, 1}, device.GateCal{Duration: device.Float(100)})
	top := lineTopology(t, 2, cal)
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.X, Qubits: []int{0}},
		{Kind: gate.X, Qubits: []int{1}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
	})
	require.NoError(t, err)

	metrics := Estimate(routedFrom(t, c, top), top)
	// The two independent X gates run in parallel branches of the DAG; the
	// critical path is max(10, 20) + 100 = 120, not their sum (10+20+100=130).
	assert.InDelta(t, 120, metrics.OverallExecutionTime, 1e-9)
}

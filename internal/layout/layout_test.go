package layout

import (
	"testing"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineTop(t *testing.T, n int) *device.Topology {
	t.Helper()
	var coupling [][2]int
	for i := 0; i < n-1; i++ {
		coupling = append(coupling, [2]int{i, i + 1})
	}
	top, err := device.New(n, coupling, gate.DefaultBasis, device.NewCalibration())
	require.NoError(t, err)
	return top
}

func TestPlanTrivialMapsIdentically(t *testing.T) {
	c, err := circuitdag.New(3, 0, []circuitdag.GateOp{{Kind: gate.H, Qubits: []int{0}}})
	require.NoError(t, err)
	top := lineTop(t, 5)
	l, err := Plan(c, top, Trivial)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		p, ok := l.Physical(i)
		require.True(t, ok)
		assert.Equal(t, i, p)
	}
}

func TestPlanTrivialFailsWhenCircuitTooLarge(t *testing.T) {
	c, err := circuitdag.New(6, 0, nil)
	require.NoError(t, err)
	top := lineTop(t, 5)
	_, err = Plan(c, top, Trivial)
	assert.Error(t, err)
}

func TestPlanDenseAssignsEveryLogicalQubit(t *testing.T) {
	c, err := circuitdag.New(3, 0, []circuitdag.GateOp{
		{Kind: gate.CX, Qubits: []int{0, 1}},
		{Kind: gate.CX, Qubits: []int{1, 2}},
	})
	require.NoError(t, err)
	top := lineTop(t, 5)
	l, err := Plan(c, top, Dense)
	require.NoError(t, err)
	seen := make(map[int]bool)
	for i := 0; i < 3; i++ {
		p, ok := l.Physical(i)
		require.True(t, ok)
		assert.False(t, seen[p], "physical qubit %d assigned twice", p)
		seen[p] = true
	}
}

func TestPlanCalibrationPrefersLowerErrorQubits(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)
	top := lineTop(t, 3)
	top.Calibration.SetQubit(2, device.QubitCal{ReadoutError: device.Float(0.5)})
	l, err := Plan(c, top, Calibration)
	require.NoError(t, err)
	p0, _ := l.Physical(0)
	p1, _ := l.Physical(1)
	assert.False(t, p0 == 2 || p1 == 2, "should avoid the noisy qubit when a better option exists")
}

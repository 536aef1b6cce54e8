package equiv

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

func identityLayout(n int) layout.Layout {
	m := make(map[int]int, n)
	for i := 0; i < n; i++ {
		m[i] = i
	}
	return layout.New(m)
}

func lineTopology(t *testing.T, n int) *device.Topology {
	t.Helper()
	var coupling [][2]int
	for i := 0; i < n-1; i++ {
		coupling = append(coupling, [2]int{i, i + 1})
	}
	top, err := device.New(n, coupling, gate.DefaultBasis, device.NewCalibration())
	require.NoError(t, err)
	return top
}

func TestCheckBellPairNoRoutingNeededIsEquivalent(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.H, Qubits: []int{0}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
	})
	require.NoError(t, err)
	top := lineTopology(t, 2)
	routed, err := router.Route(context.Background(), c, top, identityLayout(2), router.Naive)
	require.NoError(t, err)

	result, err := Check(c, routed)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.True(t, result.Equal, "distance %v", result.Distance)
	assert.Less(t, result.Distance, DefaultTolerance*10)
}

func TestCheckNonAdjacentCXWithSwapIsStillEquivalent(t *testing.T) {
	c, err := circuitdag.New(3, 0, []circuitdag.GateOp{
		{Kind: gate.CX, Qubits: []int{0, 2}},
	})
	require.NoError(t, err)
	top := lineTopology(t, 3)
	routed, err := router.Route(context.Background(), c, top, identityLayout(3), router.Naive)
	require.NoError(t, err)
	require.Equal(t, 1, routed.SwapCount)

	result, err := Check(c, routed)
	require.NoError(t, err)
	assert.True(t, result.Equal, "distance %v", result.Distance)
}

func TestCheckSkipsAboveMaxQubits(t *testing.T) {
	n := MaxQubits + 1
	ops := []circuitdag.GateOp{{Kind: gate.H, Qubits: []int{0}}}
	c, err := circuitdag.New(n, 0, ops)
	require.NoError(t, err)
	var coupling [][2]int
	for i := 0; i < n-1; i++ {
		coupling = append(coupling, [2]int{i, i + 1})
	}
	top, err := device.New(n, coupling, gate.DefaultBasis, device.NewCalibration())
	require.NoError(t, err)
	routed, err := router.Route(context.Background(), c, top, identityLayout(n), router.Naive)
	require.NoError(t, err)

	result, err := Check(c, routed)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
}

func TestCheckDetectsGenuineMismatch(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.H, Qubits: []int{0}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
	})
	require.NoError(t, err)
	top := lineTopology(t, 2)
	routed, err := router.Route(context.Background(), c, top, identityLayout(2), router.Naive)
	require.NoError(t, err)

	// Corrupt the routed circuit so it no longer matches the original.
	routed.Circuit.Ops = append([]circuitdag.GateOp{}, routed.Circuit.Ops...)
	routed.Circuit.Ops[0] = circuitdag.GateOp{Kind: gate.X, Qubits: []int{0}}

	result, err := Check(c, routed)
	require.NoError(t, err)
	assert.False(t, result.Equal)
}

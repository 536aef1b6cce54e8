package router

import (
	"context"
	"testing"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/device"
	"github.com/qxform/qxform/internal/gate"
	"github.com/qxform/qxform/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func trivialLayout(n int) layout.Layout {
	m := make(map[int]int, n)
	for i := 0; i < n; i++ {
		m[i] = i
	}
	return layout.New(m)
}

func nonAdjacentCXCircuit(t *testing.T) circuitdag.Circuit {
	t.Helper()
	c, err := circuitdag.New(3, 0, []circuitdag.GateOp{
		{Kind: gate.CX, Qubits: []int{0, 2}},
	})
	require.NoError(t, err)
	return c
}

func assertAllTwoQubitOpsCoupled(t *testing.T, c circuitdag.Circuit, top *device.Topology) {
	t.Helper()
	for _, i := range c.TwoQubitOps() {
		q := c.Ops[i].Qubits
		assert.True(t, top.Coupled(q[0], q[1]), "op %d not on a coupled pair: %v", i, q)
	}
}

func TestNaiveRoutesNonAdjacentCXWithOneSwap(t *testing.T) {
	c := nonAdjacentCXCircuit(t)
	top := lineTopology(t, 3)
	routed, err := Route(context.Background(), c, top, trivialLayout(3), Naive)
	require.NoError(t, err)
	assert.Equal(t, 1, routed.SwapCount)
	assertAllTwoQubitOpsCoupled(t, routed.Circuit, top)
}

func TestBasicRoutesNonAdjacentCX(t *testing.T) {
	c := nonAdjacentCXCircuit(t)
	top := lineTopology(t, 3)
	routed, err := Route(context.Background(), c, top, trivialLayout(3), Basic)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, routed.SwapCount, 1)
	assertAllTwoQubitOpsCoupled(t, routed.Circuit, top)
}

func TestLookaheadRoutesNonAdjacentCX(t *testing.T) {
	c := nonAdjacentCXCircuit(t)
	top := lineTopology(t, 3)
	routed, err := Route(context.Background(), c, top, trivialLayout(3), Lookahead)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, routed.SwapCount, 1)
	assertAllTwoQubitOpsCoupled(t, routed.Circuit, top)
}

func TestSabreRoutesNonAdjacentCX(t *testing.T) {
	c := nonAdjacentCXCircuit(t)
	top := lineTopology(t, 3)
	routed, err := Route(context.Background(), c, top, trivialLayout(3), Sabre)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, routed.SwapCount, 0)
	assertAllTwoQubitOpsCoupled(t, routed.Circuit, top)
}

func TestRouteNoSwapNeededWhenAlreadyAdjacent(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)
	top := lineTopology(t, 2)
	routed, err := Route(context.Background(), c, top, trivialLayout(2), Naive)
	require.NoError(t, err)
	assert.Equal(t, 0, routed.SwapCount)
}

func TestRouteRejectsDisconnectedDevice(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{{Kind: gate.CX, Qubits: []int{0, 1}}})
	require.NoError(t, err)
	top, err := device.New(4, [][2]int{{0, 1}, {2, 3}}, gate.DefaultBasis, device.NewCalibration())
	require.NoError(t, err)
	m := layout.New(map[int]int{0: 0, 1: 2})
	_, err = Route(context.Background(), c, top, m, Naive)
	assert.Error(t, err)
}

func TestRouteIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	strategies := []Strategy{Naive, Basic, Lookahead, Sabre}
	for _, strategy := range strategies {
		c := nonAdjacentCXCircuit(t)
		top := lineTopology(t, 3)
		first, err := Route(context.Background(), c, top, trivialLayout(3), strategy)
		require.NoError(t, err)
		second, err := Route(context.Background(), c, top, trivialLayout(3), strategy)
		require.NoError(t, err)
		assert.Equal(t, first.Circuit, second.Circuit, "strategy %s produced non-deterministic output", strategy)
		assert.Equal(t, first.SwapCount, second.SwapCount, "strategy %s produced non-deterministic swap count", strategy)
	}
}

func TestRouteWithNoTwoQubitGatesNeedsNoSwapsForEveryStrategy(t *testing.T) {
	c, err := circuitdag.New(3, 0, []circuitdag.GateOp{
		{Kind: gate.H, Qubits: []int{0}},
		{Kind: gate.H, Qubits: []int{1}},
		{Kind: gate.H, Qubits: []int{2}},
	})
	require.NoError(t, err)
	top := lineTopology(t, 3)
	for _, strategy := range []Strategy{Naive, Basic, Lookahead, Sabre} {
		routed, err := Route(context.Background(), c, top, trivialLayout(3), strategy)
		require.NoError(t, err)
		assert.Equal(t, 0, routed.SwapCount, "strategy %s", strategy)
	}
}

func TestRouteRespectsCancelledContext(t *testing.T) {
	c := nonAdjacentCXCircuit(t)
	top := lineTopology(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Route(ctx, c, top, trivialLayout(3), Naive)
	assert.Error(t, err)
}

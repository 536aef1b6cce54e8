package circuitdag

import (
	"testing"

	"github.com/qxform/qxform/internal/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bellCircuit(t *testing.T) Circuit {
	t.Helper()
	c, err := New(2, 0, []GateOp{
		{Kind: gate.H, Qubits: []int{0}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
	})
	require.NoError(t, err)
	return c
}

func TestNewRejectsDuplicateQubits(t *testing.T) {
	_, err := New(2, 0, []GateOp{{Kind: gate.CX, Qubits: []int{0, 0}}})
	assert.Error(t, err)
}

func TestNewRejectsUseAfterMeasurement(t *testing.T) {
	_, err := New(1, 1, []GateOp{
		{Kind: gate.Measure, Qubits: []int{0}, Clbits: []int{0}},
		{Kind: gate.X, Qubits: []int{0}},
	})
	assert.Error(t, err)
}

func TestDAGDepthBell(t *testing.T) {
	d := Build(bellCircuit(t))
	assert.Equal(t, 2, d.Depth())
}

func TestDAGDepthGHZ5(t *testing.T) {
	c, err := New(5, 0, []GateOp{
		{Kind: gate.H, Qubits: []int{0}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
		{Kind: gate.CX, Qubits: []int{1, 2}},
		{Kind: gate.CX, Qubits: []int{2, 3}},
		{Kind: gate.CX, Qubits: []int{3, 4}},
	})
	require.NoError(t, err)
	d := Build(c)
	assert.Equal(t, 5, d.Depth())
}

func TestFrontLayerAdvancesAsNodesExecute(t *testing.T) {
	d := Build(bellCircuit(t))
	executed := map[int]bool{}
	front := d.FrontLayer(executed)
	require.Equal(t, []int{0}, front)
	executed[0] = true
	front = d.FrontLayer(executed)
	assert.Equal(t, []int{1}, front)
}

func TestTopologicalOrderIsProgramOrder(t *testing.T) {
	d := Build(bellCircuit(t))
	assert.Equal(t, []int{0, 1}, d.TopologicalOrder())
}

func TestSubstituteRewiresDependencies(t *testing.T) {
	d := Build(bellCircuit(t))
	sub := []GateOp{
		{Kind: gate.RZ, Qubits: []int{0}, Params: []float64{1.5}},
		{Kind: gate.SX, Qubits: []int{0}},
	}
	nd, err := d.Substitute(0, sub)
	require.NoError(t, err)
	require.Equal(t, 3, nd.Len())
	// The CX (now node index 2) must still depend on the last op touching q0.
	assert.Contains(t, nd.Predecessors(2), 1)
}

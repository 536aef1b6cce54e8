package normalize

import (
	"testing"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLeavesBasisCircuitUnchanged(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.H, Qubits: []int{0}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
	})
	require.NoError(t, err)
	out, err := Normalize(c, gate.DefaultBasis)
	require.NoError(t, err)
	assert.Equal(t, c, out)
}

func TestNormalizeDecomposesCCXIntoBasisOnly(t *testing.T) {
	c, err := circuitdag.New(3, 0, []circuitdag.GateOp{
		{Kind: gate.CCX, Qubits: []int{0, 1, 2}},
	})
	require.NoError(t, err)
	out, err := Normalize(c, gate.DefaultBasis)
	require.NoError(t, err)
	basis := gate.Set(gate.DefaultBasis)
	for _, op := range out.Ops {
		assert.True(t, basis[op.Kind], "op kind %s not in basis", op.Kind)
	}
}

func TestNormalizeDropsIdentityRotation(t *testing.T) {
	c, err := circuitdag.New(1, 0, []circuitdag.GateOp{
		{Kind: gate.RZ, Qubits: []int{0}, Params: []float64{0}},
	})
	require.NoError(t, err)
	out, err := Normalize(c, gate.DefaultBasis)
	require.NoError(t, err)
	assert.Empty(t, out.Ops)
}

func TestNormalizeFusesAdjacentRotationsIntoOneU3(t *testing.T) {
	c, err := circuitdag.New(1, 0, []circuitdag.GateOp{
		{Kind: gate.RZ, Qubits: []int{0}, Params: []float64{0.3}},
		{Kind: gate.RX, Qubits: []int{0}, Params: []float64{0.5}},
		{Kind: gate.RZ, Qubits: []int{0}, Params: []float64{-0.2}},
	})
	require.NoError(t, err)
	out, err := Normalize(c, gate.DefaultBasis)
	require.NoError(t, err)
	require.Len(t, out.Ops, 1)
	assert.Equal(t, gate.U3, out.Ops[0].Kind)

	want := gate.Mul1(mustMatrix(t, gate.RZ, -0.2), gate.Mul1(mustMatrix(t, gate.RX, 0.5), mustMatrix(t, gate.RZ, 0.3)))
	got, err := gate.Matrix1For(gate.U3, out.Ops[0].Params)
	require.NoError(t, err)
	assertMatrixEqualUpToPhase(t, want, got)
}

func TestNormalizeFusionInterruptedByTwoQubitGate(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.RZ, Qubits: []int{0}, Params: []float64{0.3}},
		{Kind: gate.RX, Qubits: []int{0}, Params: []float64{0.1}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
		{Kind: gate.RZ, Qubits: []int{0}, Params: []float64{0.4}},
		{Kind: gate.RX, Qubits: []int{0}, Params: []float64{0.2}},
	})
	require.NoError(t, err)
	out, err := Normalize(c, gate.DefaultBasis)
	require.NoError(t, err)
	require.Len(t, out.Ops, 3)
	assert.Equal(t, gate.U3, out.Ops[0].Kind)
	assert.Equal(t, gate.CX, out.Ops[1].Kind)
	assert.Equal(t, gate.U3, out.Ops[2].Kind)
}

func TestNormalizeLeavesIsolatedRotationUnfused(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.RZ, Qubits: []int{0}, Params: []float64{0.3}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
		{Kind: gate.RZ, Qubits: []int{0}, Params: []float64{0.4}},
	})
	require.NoError(t, err)
	out, err := Normalize(c, gate.DefaultBasis)
	require.NoError(t, err)
	require.Len(t, out.Ops, 3)
	assert.Equal(t, gate.RZ, out.Ops[0].Kind)
	assert.Equal(t, gate.CX, out.Ops[1].Kind)
	assert.Equal(t, gate.RZ, out.Ops[2].Kind)
}

func TestNormalizeExpandsSwapWhenNotInBasis(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.SWAP, Qubits: []int{0, 1}},
	})
	require.NoError(t, err)
	restrictedBasis := []gate.Kind{gate.X, gate.Y, gate.Z, gate.H, gate.S, gate.T, gate.SX, gate.RX, gate.RY, gate.RZ, gate.U3, gate.CX, gate.CZ, gate.Measure, gate.Barrier}
	out, err := Normalize(c, restrictedBasis)
	require.NoError(t, err)
	for _, op := range out.Ops {
		assert.Equal(t, gate.CX, op.Kind)
	}
	assert.Len(t, out.Ops, 3)
}

func TestNormalizeToHCXBasisNeverEmitsU3(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.H, Qubits: []int{0}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
	})
	require.NoError(t, err)
	basis := []gate.Kind{gate.H, gate.CX}
	out, err := Normalize(c, basis)
	require.NoError(t, err)
	basisSet := gate.Set(basis)
	for _, op := range out.Ops {
		assert.True(t, basisSet[op.Kind], "op kind %s not in basis", op.Kind)
	}
	assert.Equal(t, c, out)
}

func TestNormalizeToRZSXCXBasisDoesNotRecurseForever(t *testing.T) {
	c, err := circuitdag.New(2, 0, []circuitdag.GateOp{
		{Kind: gate.H, Qubits: []int{0}},
		{Kind: gate.Y, Qubits: []int{0}},
		{Kind: gate.Z, Qubits: []int{0}},
		{Kind: gate.S, Qubits: []int{0}},
		{Kind: gate.T, Qubits: []int{0}},
		{Kind: gate.RX, Qubits: []int{0}, Params: []float64{0.7}},
		{Kind: gate.RY, Qubits: []int{0}, Params: []float64{1.1}},
		{Kind: gate.CX, Qubits: []int{0, 1}},
	})
	require.NoError(t, err)
	basis := []gate.Kind{gate.RZ, gate.SX, gate.CX, gate.Measure, gate.Barrier}
	out, err := Normalize(c, basis)
	require.NoError(t, err)
	basisSet := gate.Set(basis)
	for _, op := range out.Ops {
		assert.True(t, basisSet[op.Kind], "op kind %s not in basis", op.Kind)
	}
}

func TestSynthesizeMatrixIntoRZSXMatchesOriginalUnitary(t *testing.T) {
	basisSet := gate.Set([]gate.Kind{gate.RZ, gate.SX, gate.CX})
	want := mustMatrix(t, gate.H, 0)
	ops, err := synthesizeMatrix(0, want, basisSet)
	require.NoError(t, err)
	require.NotEmpty(t, ops)

	got := gate.Matrix1{{1, 0}, {0, 1}}
	for _, op := range ops {
		m, err := gate.Matrix1For(op.Kind, op.Params)
		require.NoError(t, err)
		got = gate.Mul1(m, got)
	}
	assertMatrixEqualUpToPhase(t, want, got)
}

func mustMatrix(t *testing.T, k gate.Kind, theta float64) gate.Matrix1 {
	t.Helper()
	m, err := gate.Matrix1For(k, []float64{theta})
	require.NoError(t, err)
	return m
}

func assertMatrixEqualUpToPhase(t *testing.T, want, got gate.Matrix1) {
	t.Helper()
	diff := gate.Mul1(got, conjTranspose(want))
	assert.True(t, gate.IsIdentity1(diff, 1e-6))
}

func conjTranspose(m gate.Matrix1) gate.Matrix1 {
	return gate.Matrix1{
		{cmplxConj(m[0][0]), cmplxConj(m[1][0])},
		{cmplxConj(m[0][1]), cmplxConj(m[1][1])},
	}
}

func cmplxConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

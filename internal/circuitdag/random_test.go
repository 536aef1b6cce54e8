package circuitdag

import (
	"math/rand"
	"testing"

	"github.com/qxform/qxform/internal/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomCircuit builds a circuit of n qubits and nOps single- and two-qubit
// gates drawn from a fixed small vocabulary, deterministic for a given seed.
func randomCircuit(t *testing.T, seed int64, n, nOps int) Circuit {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	ops := make([]GateOp, 0, nOps)
	for i := 0; i < nOps; i++ {
		if n >= 2 && r.Intn(2) == 0 {
			q0 := r.Intn(n)
			q1 := r.Intn(n)
			for q1 == q0 {
				q1 = r.Intn(n)
			}
			ops = append(ops, GateOp{Kind: gate.CX, Qubits: []int{q0, q1}})
		} else {
			ops = append(ops, GateOp{Kind: gate.H, Qubits: []int{r.Intn(n)}})
		}
	}
	c, err := New(n, 0, ops)
	require.NoError(t, err)
	return c
}

func TestRandomCircuitDAGPredecessorsPrecedeTheirNode(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		c := randomCircuit(t, seed, 6, 40)
		d := Build(c)
		for i := 0; i < d.Len(); i++ {
			for _, p := range d.Predecessors(i) {
				assert.Less(t, p, i, "seed %d: predecessor %d of node %d must precede it", seed, p, i)
			}
		}
	}
}

func TestRandomCircuitTopologicalOrderIsPermutationOfAllNodes(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		c := randomCircuit(t, seed, 5, 30)
		d := Build(c)
		order := d.TopologicalOrder()
		require.Len(t, order, d.Len())
		seen := make(map[int]bool, len(order))
		for _, idx := range order {
			assert.False(t, seen[idx], "seed %d: node %d listed twice", seed, idx)
			seen[idx] = true
		}
	}
}

func TestRandomCircuitDepthNeverExceedsOpCount(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		c := randomCircuit(t, seed, 4, 25)
		d := Build(c)
		assert.LessOrEqual(t, d.Depth(), len(c.Ops))
		assert.Positive(t, d.Depth())
	}
}

func TestRandomCircuitFrontLayerNeverContainsAnExecutedNode(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		c := randomCircuit(t, seed, 5, 30)
		d := Build(c)
		executed := map[int]bool{}
		for len(executed) < d.Len() {
			front := d.FrontLayer(executed)
			require.NotEmpty(t, front, "seed %d: front layer empty before all nodes executed", seed)
			for _, idx := range front {
				assert.False(t, executed[idx])
				executed[idx] = true
			}
		}
	}
}

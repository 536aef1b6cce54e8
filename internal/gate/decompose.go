package gate

import (
	"fmt"
	"math"
)

// Step is one operation of a decomposition, expressed positionally: Roles
// indexes into the *original* operation's qubit list (e.g. a CCX's Roles
// might be [0,2] meaning "first control, target"), so the caller (the
// Normalizer) can resolve it against whatever concrete qubits the original
// operation used.
type Step struct {
	Kind   Kind
	Roles  []int
	Params []float64
}

const halfPi = math.Pi / 2

// Decompose returns kind's expansion into DefaultBasis. If kind is already
// in DefaultBasis (or is Measure/Barrier) it returns a single Step that is
// the identity on kind's own operands. The returned sequence's composed
// unitary equals the input gate's unitary up to a global phase (spec
// §4.1's contract) — the constant phases dropped by each rule below are
// noted in the case comments and never affect measurement statistics.
func Decompose(k Kind, params []float64) ([]Step, error) {
	info, ok := LookupInfo(k)
	if !ok {
		return nil, fmt.Errorf("gate: unknown kind %q", k)
	}
	if info.ParamCount != len(params) {
		return nil, fmt.Errorf("gate: %s expects %d params, got %d", k, info.ParamCount, len(params))
	}

	if InBasis(k, DefaultBasis) {
		return []Step{identityStep(k, info.Arity, params)}, nil
	}

	switch k {
	case I:
		return nil, nil // exact identity, contributes no basis ops

	case SDG:
		// S = e^{i pi/4} RZ(pi/2)  =>  SDG = e^{-i pi/4} RZ(-pi/2)
		return []Step{{Kind: RZ, Roles: []int{0}, Params: []float64{-halfPi}}}, nil
	case TDG:
		// T = e^{i pi/8} RZ(pi/4)  =>  TDG = e^{-i pi/8} RZ(-pi/4)
		return []Step{{Kind: RZ, Roles: []int{0}, Params: []float64{-math.Pi / 4}}}, nil
	case SXDG:
		// SX = e^{i pi/4} RX(pi/2)  =>  SXDG = e^{-i pi/4} RX(-pi/2)
		return []Step{{Kind: RX, Roles: []int{0}, Params: []float64{-halfPi}}}, nil

	case P, U1:
		// U1(lambda) = e^{i lambda/2} RZ(lambda)
		return []Step{{Kind: RZ, Roles: []int{0}, Params: []float64{params[0]}}}, nil
	case U2:
		// U2(phi, lambda) = U3(pi/2, phi, lambda)
		return []Step{{Kind: U3, Roles: []int{0}, Params: []float64{halfPi, params[0], params[1]}}}, nil

	case CY:
		// CY(c,t) = SDG(t); CX(c,t); S(t)
		return []Step{
			{Kind: RZ, Roles: []int{1}, Params: []float64{-halfPi}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{halfPi}},
		}, nil
	case CH:
		// CH(c,t) = RY(t,pi/4); CX(c,t); RY(t,-pi/4)  (standard controlled-H identity)
		return []Step{
			{Kind: RY, Roles: []int{1}, Params: []float64{math.Pi / 4}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RY, Roles: []int{1}, Params: []float64{-math.Pi / 4}},
		}, nil
	case CRX:
		theta := params[0]
		return []Step{
			{Kind: RZ, Roles: []int{1}, Params: []float64{halfPi}},
			{Kind: RY, Roles: []int{1}, Params: []float64{theta / 2}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RY, Roles: []int{1}, Params: []float64{-theta / 2}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{-halfPi}},
		}, nil
	case CRY:
		theta := params[0]
		return []Step{
			{Kind: RY, Roles: []int{1}, Params: []float64{theta / 2}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RY, Roles: []int{1}, Params: []float64{-theta / 2}},
			{Kind: CX, Roles: []int{0, 1}},
		}, nil
	case CRZ:
		theta := params[0]
		return []Step{
			{Kind: RZ, Roles: []int{1}, Params: []float64{theta / 2}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{-theta / 2}},
			{Kind: CX, Roles: []int{0, 1}},
		}, nil
	case CP, CU1:
		lambda := params[0]
		return []Step{
			{Kind: RZ, Roles: []int{0}, Params: []float64{lambda / 2}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{-lambda / 2}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{lambda / 2}},
		}, nil
	case RXX:
		theta := params[0]
		return []Step{
			{Kind: H, Roles: []int{0}},
			{Kind: H, Roles: []int{1}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{theta}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: H, Roles: []int{0}},
			{Kind: H, Roles: []int{1}},
		}, nil
	case RYY:
		theta := params[0]
		return []Step{
			{Kind: RX, Roles: []int{0}, Params: []float64{halfPi}},
			{Kind: RX, Roles: []int{1}, Params: []float64{halfPi}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{theta}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RX, Roles: []int{0}, Params: []float64{-halfPi}},
			{Kind: RX, Roles: []int{1}, Params: []float64{-halfPi}},
		}, nil
	case RZZ:
		theta := params[0]
		return []Step{
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{theta}},
			{Kind: CX, Roles: []int{0, 1}},
		}, nil

	case CCX:
		// Standard 6-CNOT Toffoli decomposition (Nielsen & Chuang fig. 4.9);
		// roles 0,1 are the controls, role 2 is the target.
		return []Step{
			{Kind: H, Roles: []int{2}},
			{Kind: CX, Roles: []int{1, 2}},
			{Kind: RZ, Roles: []int{2}, Params: []float64{-math.Pi / 4}},
			{Kind: CX, Roles: []int{0, 2}},
			{Kind: RZ, Roles: []int{2}, Params: []float64{math.Pi / 4}},
			{Kind: CX, Roles: []int{1, 2}},
			{Kind: RZ, Roles: []int{2}, Params: []float64{-math.Pi / 4}},
			{Kind: CX, Roles: []int{0, 2}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{math.Pi / 4}},
			{Kind: RZ, Roles: []int{2}, Params: []float64{math.Pi / 4}},
			{Kind: H, Roles: []int{2}},
			{Kind: CX, Roles: []int{0, 1}},
			{Kind: RZ, Roles: []int{0}, Params: []float64{math.Pi / 4}},
			{Kind: RZ, Roles: []int{1}, Params: []float64{-math.Pi / 4}},
			{Kind: CX, Roles: []int{0, 1}},
		}, nil

	case CSWAP:
		// Fredkin = CX(t2,t1); Toffoli(c,t1,t2); CX(t2,t1). Roles: 0=control,
		// 1=target1, 2=target2. We expand the inner Toffoli inline rather
		// than recursing so every step names a real basis-reachable kind.
		toffoli, err := Decompose(CCX, nil)
		if err != nil {
			return nil, err
		}
		remap := map[int]int{0: 0, 1: 1, 2: 2}
		steps := []Step{{Kind: CX, Roles: []int{2, 1}}}
		for _, s := range toffoli {
			roles := make([]int, len(s.Roles))
			for i, r := range s.Roles {
				roles[i] = remap[r]
			}
			steps = append(steps, Step{Kind: s.Kind, Roles: roles, Params: s.Params})
		}
		steps = append(steps, Step{Kind: CX, Roles: []int{2, 1}})
		return steps, nil

	default:
		return nil, fmt.Errorf("gate: no decomposition rule for %s", k)
	}
}

func identityStep(k Kind, arity int, params []float64) Step {
	roles := make([]int, arity)
	for i := range roles {
		roles[i] = i
	}
	if arity == VariadicArity {
		roles = nil
	}
	return Step{Kind: k, Roles: roles, Params: params}
}

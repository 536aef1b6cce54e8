package gate

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Matrix1 is a single-qubit gate matrix, row-major, matching the operator
// convention used by quantum.go's StateVector.apply* routines in the
// teacher repository (amplitude at bit=0 first, bit=1 second).
type Matrix1 [2][2]complex128

// Matrix2 is a two-qubit gate matrix over the basis |00>,|01>,|10>,|11>
// with the first listed qubit as the more significant bit, matching
// CX/CZ/SWAP's control-then-target operand order used throughout this
// module.
type Matrix2 [4][4]complex128

func identity1() Matrix1 {
	return Matrix1{{1, 0}, {0, 1}}
}

// Matrix1For returns the 2x2 unitary for a single-qubit kind, exact up to
// the global phase noted per-kind in decompose.go's comments. Returns an
// error for multi-qubit or unrecognized kinds.
func Matrix1For(k Kind, params []float64) (Matrix1, error) {
	switch k {
	case I:
		return identity1(), nil
	case X:
		return Matrix1{{0, 1}, {1, 0}}, nil
	case Y:
		return Matrix1{{0, -1i}, {1i, 0}}, nil
	case Z:
		return Matrix1{{1, 0}, {0, -1}}, nil
	case H:
		f := complex(1/math.Sqrt2, 0)
		return Matrix1{{f, f}, {f, -f}}, nil
	case S:
		return Matrix1{{1, 0}, {0, 1i}}, nil
	case SDG:
		return Matrix1{{1, 0}, {0, -1i}}, nil
	case T:
		return Matrix1{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}, nil
	case TDG:
		return Matrix1{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}, nil
	case SX:
		return rxMatrix(math.Pi / 2), nil
	case SXDG:
		return rxMatrix(-math.Pi / 2), nil
	case RX:
		return rxMatrix(param(params, 0)), nil
	case RY:
		return ryMatrix(param(params, 0)), nil
	case RZ:
		return rzMatrix(param(params, 0)), nil
	case P, U1:
		lambda := param(params, 0)
		return Matrix1{{1, 0}, {0, cmplx.Exp(complex(0, lambda))}}, nil
	case U2:
		phi, lambda := param(params, 0), param(params, 1)
		return u3Matrix(math.Pi/2, phi, lambda), nil
	case U3:
		return u3Matrix(param(params, 0), param(params, 1), param(params, 2)), nil
	default:
		return Matrix1{}, fmt.Errorf("gate: %s is not a single-qubit kind", k)
	}
}

func param(params []float64, i int) float64 {
	if i < len(params) {
		return params[i]
	}
	return 0
}

func rxMatrix(theta float64) Matrix1 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return Matrix1{{c, s}, {s, c}}
}

func ryMatrix(theta float64) Matrix1 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix1{{c, -s}, {s, c}}
}

func rzMatrix(theta float64) Matrix1 {
	return Matrix1{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

// u3Matrix follows the standard U3(θ,φ,λ) convention used across the
// superconducting-qubit ecosystem (IBM's OpenQASM 2 qelib1.inc definition).
func u3Matrix(theta, phi, lambda float64) Matrix1 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix1{
		{c, -cmplx.Exp(complex(0, lambda)) * s},
		{cmplx.Exp(complex(0, phi)) * s, cmplx.Exp(complex(0, phi+lambda)) * c},
	}
}

// Mul1 returns a*b, the matrix that applies b first then a (standard
// operator composition order).
func Mul1(a, b Matrix1) Matrix1 {
	var out Matrix1
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum complex128
			for k := 0; k < 2; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Matrix2For returns the 4x4 unitary for a two-qubit basis kind, with
// operand order (control, target) for CX/CZ and (a, b) for SWAP.
func Matrix2For(k Kind) (Matrix2, error) {
	switch k {
	case CX:
		return Matrix2{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		}, nil
	case CZ:
		return Matrix2{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, -1},
		}, nil
	case SWAP:
		return Matrix2{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		}, nil
	default:
		return Matrix2{}, fmt.Errorf("gate: %s has no fixed two-qubit matrix", k)
	}
}

// U3Angles inverts u3Matrix: given a single-qubit unitary (up to global
// phase), it returns theta, phi, lambda such that u3Matrix(theta,phi,lambda)
// equals m up to that phase. Used by the Normalizer's rotation-fusion pass
// to collapse an accumulated product of single-qubit matrices back into one
// U3 operation.
func U3Angles(m Matrix1) (theta, phi, lambda float64) {
	theta = 2 * math.Atan2(cmplx.Abs(m[1][0]), cmplx.Abs(m[0][0]))
	if cmplx.Abs(m[0][0]) < 1e-12 {
		// theta == pi: M00 vanishes, read phi/lambda off the off-diagonal.
		phi = cmplx.Phase(m[1][0])
		lambda = cmplx.Phase(m[0][1]) - math.Pi
		return theta, phi, lambda
	}
	if cmplx.Abs(m[1][0]) < 1e-12 {
		// theta == 0: M is diagonal; convention is phi == 0.
		lambda = cmplx.Phase(m[1][1]) - cmplx.Phase(m[0][0])
		return theta, 0, lambda
	}
	base := cmplx.Phase(m[0][0])
	phi = cmplx.Phase(m[1][0]) - base
	lambda = cmplx.Phase(m[0][1]) - base - math.Pi
	return theta, phi, lambda
}

// IsIdentity1 reports whether m is the identity up to a global phase and
// numeric tolerance tol, used to drop trivial rotations (spec §4.4d).
func IsIdentity1(m Matrix1, tol float64) bool {
	// Extract a candidate global phase from the (0,0) entry, then compare.
	var phase complex128 = 1
	if cmplx.Abs(m[0][0]) > 1e-12 {
		phase = m[0][0] / complex(cmplx.Abs(m[0][0]), 0)
	}
	id := identity1()
	var dist float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			d := m[i][j]/phase - id[i][j]
			dist += real(d)*real(d) + imag(d)*imag(d)
		}
	}
	return math.Sqrt(dist) <= tol
}

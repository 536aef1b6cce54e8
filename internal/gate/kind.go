// Package gate is the Gate Library (spec §4.1): the canonical inventory of
// gate kinds, their arities, and their decomposition rules into the target
// basis. It underpins the Circuit DAG, the Normalizer, and the Cost
// Estimator's calibration lookups.
package gate

// Kind is a closed enum-like tag for a gate mnemonic, mirroring the way the
// teacher's Gate.Type/DAGNode.Type strings are used, but as a real Go type
// so unknown mnemonics are rejected once, at parse time (spec §9).
type Kind string

// VariadicArity marks a kind (only Barrier) whose operand count is not
// fixed by the Gate Library but by how many qubits it spans in a circuit.
const VariadicArity = -1

const (
	// Single-qubit, basis-resident kinds.
	X  Kind = "X"
	Y  Kind = "Y"
	Z  Kind = "Z"
	H  Kind = "H"
	S  Kind = "S"
	T  Kind = "T"
	SX Kind = "SX"
	RX Kind = "RX"
	RY Kind = "RY"
	RZ Kind = "RZ"
	U3 Kind = "U3"

	// Two-qubit, basis-resident kinds.
	CX   Kind = "CX"
	CZ   Kind = "CZ"
	SWAP Kind = "SWAP"

	// Pass-through, non-unitary kinds.
	Measure Kind = "MEASURE"
	Barrier Kind = "BARRIER"

	// Single-qubit kinds with a fixed decomposition into the basis above.
	I    Kind = "I"
	SDG  Kind = "SDG"
	TDG  Kind = "TDG"
	SXDG Kind = "SXDG"
	P    Kind = "P"  // alias U1(λ)
	U1   Kind = "U1"
	U2   Kind = "U2"

	// Two-qubit kinds with a fixed or parametric decomposition into CX/basis.
	CY  Kind = "CY"
	CH  Kind = "CH"
	CRX Kind = "CRX"
	CRY Kind = "CRY"
	CRZ Kind = "CRZ"
	CP  Kind = "CP" // alias CU1(λ)
	CU1 Kind = "CU1"
	RXX Kind = "RXX"
	RYY Kind = "RYY"
	RZZ Kind = "RZZ"

	// Three-qubit kinds, decomposed into CX sequences.
	CCX   Kind = "CCX" // Toffoli
	CSWAP Kind = "CSWAP" // Fredkin
)

// Info describes the fixed shape of a Kind: how many qubit operands it
// takes and whether it carries continuous parameters.
type Info struct {
	Arity        int
	IsParametric bool
	ParamCount   int
}

var registry = map[Kind]Info{
	X:  {1, false, 0},
	Y:  {1, false, 0},
	Z:  {1, false, 0},
	H:  {1, false, 0},
	S:  {1, false, 0},
	T:  {1, false, 0},
	SX: {1, false, 0},
	RX: {1, true, 1},
	RY: {1, true, 1},
	RZ: {1, true, 1},
	U3: {1, true, 3},

	CX:   {2, false, 0},
	CZ:   {2, false, 0},
	SWAP: {2, false, 0},

	Measure: {1, false, 0},
	Barrier: {VariadicArity, false, 0},

	I:    {1, false, 0},
	SDG:  {1, false, 0},
	TDG:  {1, false, 0},
	SXDG: {1, false, 0},
	P:    {1, true, 1},
	U1:   {1, true, 1},
	U2:   {1, true, 2},

	CY:  {2, false, 0},
	CH:  {2, false, 0},
	CRX: {2, true, 1},
	CRY: {2, true, 1},
	CRZ: {2, true, 1},
	CP:  {2, true, 1},
	CU1: {2, true, 1},
	RXX: {2, true, 1},
	RYY: {2, true, 1},
	RZZ: {2, true, 1},

	CCX:   {3, false, 0},
	CSWAP: {3, false, 0},
}

// DefaultBasis is the target basis named in spec §3: the fixed gate set the
// Normalizer rewrites every circuit into.
var DefaultBasis = []Kind{X, Y, Z, H, S, T, SX, RX, RY, RZ, U3, CX, CZ, SWAP, Measure, Barrier}

// LookupInfo returns the Info for kind and whether kind is recognized at
// all. It never returns a partial or guessed Info for an unrecognized kind.
func LookupInfo(k Kind) (Info, bool) {
	info, ok := registry[k]
	return info, ok
}

// Recognized reports whether k has any rule in the Gate Library.
func Recognized(k Kind) bool {
	_, ok := registry[k]
	return ok
}

// InBasis reports whether k is a member of basis.
func InBasis(k Kind, basis []Kind) bool {
	for _, b := range basis {
		if b == k {
			return true
		}
	}
	return false
}

// Set builds a lookup set from a basis slice, useful for the Normalizer and
// Cost Estimator hot paths.
func Set(basis []Kind) map[Kind]bool {
	s := make(map[Kind]bool, len(basis))
	for _, k := range basis {
		s[k] = true
	}
	return s
}

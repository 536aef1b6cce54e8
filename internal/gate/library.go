package gate

import "github.com/qxform/qxform/internal/qerr"

// ValidateOp checks a single operation's kind/arity/param-count against the
// Gate Library, returning the exact spec §7 error kinds (UnknownGate,
// InvalidArity, InvalidParamCount) rather than a generic error, so parse
// sites can surface it directly to the caller.
func ValidateOp(k Kind, numQubits, numParams int) error {
	info, ok := LookupInfo(k)
	if !ok {
		return qerr.New(qerr.KindUnknownGate, string(k))
	}
	if info.Arity != VariadicArity && numQubits != info.Arity {
		return qerr.New(qerr.KindInvalidArity, string(k))
	}
	if info.ParamCount != numParams {
		return qerr.New(qerr.KindInvalidParamCount, string(k))
	}
	return nil
}

// ValidateBasis checks that every kind in basis is recognized by the Gate
// Library, returning UnsupportedBasis (spec §7) on the first unrecognized
// entry.
func ValidateBasis(basis []Kind) error {
	for _, k := range basis {
		if !Recognized(k) {
			return qerr.New(qerr.KindUnsupportedBasis, string(k))
		}
	}
	return nil
}

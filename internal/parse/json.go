package parse

import (
	"encoding/json"
	"fmt"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/gate"
)

// jsonOperation mirrors spec §6's JSON operation record:
// { kind, qubits, clbits?, params? }.
type jsonOperation struct {
	Kind   string    `json:"kind"`
	Qubits []int     `json:"qubits"`
	Clbits []int     `json:"clbits,omitempty"`
	Params []float64 `json:"params,omitempty"`
}

// jsonCircuit mirrors spec §6's JSON circuit record.
type jsonCircuit struct {
	NumQubits  int             `json:"num_qubits"`
	NumClbits  int             `json:"num_clbits"`
	Operations []jsonOperation `json:"operations"`
}

// ParseJSON parses the JSON circuit alternative of spec §6.
func ParseJSON(data []byte) (circuitdag.Circuit, error) {
	var jc jsonCircuit
	if err := json.Unmarshal(data, &jc); err != nil {
		return circuitdag.Circuit{}, fmt.Errorf("parse: invalid circuit JSON: %w", err)
	}
	ops := make([]circuitdag.GateOp, len(jc.Operations))
	for i, jo := range jc.Operations {
		ops[i] = circuitdag.GateOp{
			Kind:   gate.Kind(jo.Kind),
			Qubits: jo.Qubits,
			Clbits: jo.Clbits,
			Params: jo.Params,
		}
	}
	return circuitdag.New(jc.NumQubits, jc.NumClbits, ops)
}

// EncodeJSON renders c back into the JSON circuit form, the counterpart
// ParseJSON reads.
func EncodeJSON(c circuitdag.Circuit) ([]byte, error) {
	jc := jsonCircuit{
		NumQubits: c.NumQubits,
		NumClbits: c.NumClbits,
	}
	for _, op := range c.Ops {
		jc.Operations = append(jc.Operations, jsonOperation{
			Kind:   string(op.Kind),
			Qubits: op.Qubits,
			Clbits: op.Clbits,
			Params: op.Params,
		})
	}
	return json.MarshalIndent(jc, "", "  ")
}

// EncodeAssembly renders c back into the textual assembly form of spec §6,
// mirroring the structure ParseAssembly reads (a version header, register
// declarations, then one statement per operation).
func EncodeAssembly(c circuitdag.Circuit) string {
	out := "OPENQASM 2.0;\n"
	out += "include \"qelib1.inc\";\n\n"
	out += fmt.Sprintf("qreg q[%d];\n", c.NumQubits)
	out += fmt.Sprintf("creg c[%d];\n", c.NumClbits)
	for _, op := range c.Ops {
		out += encodeOp(op)
	}
	return out
}

func encodeOp(op circuitdag.GateOp) string {
	kind := string(op.Kind)
	switch op.Kind {
	case gate.Measure:
		return fmt.Sprintf("measure q[%d] -> c[%d];\n", op.Qubits[0], op.Clbits[0])
	case gate.Barrier:
		s := "barrier "
		for i, q := range op.Qubits {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("q[%d]", q)
		}
		return s + ";\n"
	}
	paramStr := ""
	if len(op.Params) > 0 {
		paramStr = "("
		for i, p := range op.Params {
			if i > 0 {
				paramStr += ", "
			}
			paramStr += formatParam(p)
		}
		paramStr += ")"
	}
	qubitStr := ""
	for i, q := range op.Qubits {
		if i > 0 {
			qubitStr += ", "
		}
		qubitStr += fmt.Sprintf("q[%d]", q)
	}
	return fmt.Sprintf("%s%s %s;\n", kind, paramStr, qubitStr)
}

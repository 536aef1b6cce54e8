package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/gate"
)

var (
	qregRegex            = regexp.MustCompile(`^qreg\s+q\[(\d+)\];?$`)
	cregRegex            = regexp.MustCompile(`^creg\s+c\[(\d+)\];?$`)
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\]\s*,\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*c\[(\d+)\];?$`)
	barrierRegex         = regexp.MustCompile(`^barrier(?:\s+(q\[\d+\](?:\s*,\s*q\[\d+\])*))?;?$`)
	barrierQubitRegex    = regexp.MustCompile(`q\[(\d+)\]`)
)

// ParseAssembly parses the textual assembly format of spec §6: a version
// header, qreg/creg declarations, and an ordered list of gate applications.
// Line comments ("//") and blank lines are permitted anywhere. Every
// resulting operation is validated against the Gate Library before the
// Circuit is returned, so an unrecognized kind or a bad arity is reported
// as UnknownGate/InvalidArity rather than surfacing later in the pipeline.
func ParseAssembly(src string) (circuitdag.Circuit, error) {
	var numQubits, numClbits int
	var ops []circuitdag.GateOp
	sawHeader := false

	for lineNo, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !sawHeader {
			if !strings.HasPrefix(line, "QCIRC") && !strings.HasPrefix(line, "OPENQASM") {
				return circuitdag.Circuit{}, fmt.Errorf("parse: line %d: expected a version header (QCIRC or OPENQASM), got %q", lineNo+1, line)
			}
			sawHeader = true
			continue
		}
		if strings.HasPrefix(line, "include") {
			continue
		}
		if m := qregRegex.FindStringSubmatch(line); m != nil {
			numQubits, _ = strconv.Atoi(m[1])
			continue
		}
		if m := cregRegex.FindStringSubmatch(line); m != nil {
			numClbits, _ = strconv.Atoi(m[1])
			continue
		}
		if m := measureRegex.FindStringSubmatch(line); m != nil {
			q, _ := strconv.Atoi(m[1])
			cb, _ := strconv.Atoi(m[2])
			ops = append(ops, circuitdag.GateOp{Kind: gate.Measure, Qubits: []int{q}, Clbits: []int{cb}})
			continue
		}
		if m := barrierRegex.FindStringSubmatch(line); m != nil {
			var qubits []int
			if m[1] != "" {
				for _, qm := range barrierQubitRegex.FindAllStringSubmatch(m[1], -1) {
					q, _ := strconv.Atoi(qm[1])
					qubits = append(qubits, q)
				}
			} else {
				for q := 0; q < numQubits; q++ {
					qubits = append(qubits, q)
				}
			}
			ops = append(ops, circuitdag.GateOp{Kind: gate.Barrier, Qubits: qubits})
			continue
		}
		if m := threeQubitRegex.FindStringSubmatch(line); m != nil {
			k := gate.Kind(strings.ToUpper(m[1]))
			q1, _ := strconv.Atoi(m[2])
			q2, _ := strconv.Atoi(m[3])
			q3, _ := strconv.Atoi(m[4])
			ops = append(ops, circuitdag.GateOp{Kind: k, Qubits: []int{q1, q2, q3}})
			continue
		}
		if m := twoQubitParamRegex.FindStringSubmatch(line); m != nil {
			k := gate.Kind(strings.ToUpper(m[1]))
			params, err := parseParamList(m[2])
			if err != nil {
				return circuitdag.Circuit{}, fmt.Errorf("parse: line %d: %w", lineNo+1, err)
			}
			q1, _ := strconv.Atoi(m[3])
			q2, _ := strconv.Atoi(m[4])
			ops = append(ops, circuitdag.GateOp{Kind: k, Qubits: []int{q1, q2}, Params: params})
			continue
		}
		if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
			k := gate.Kind(strings.ToUpper(m[1]))
			q1, _ := strconv.Atoi(m[2])
			q2, _ := strconv.Atoi(m[3])
			ops = append(ops, circuitdag.GateOp{Kind: k, Qubits: []int{q1, q2}})
			continue
		}
		if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
			k := gate.Kind(strings.ToUpper(m[1]))
			params, err := parseParamList(m[2])
			if err != nil {
				return circuitdag.Circuit{}, fmt.Errorf("parse: line %d: %w", lineNo+1, err)
			}
			q, _ := strconv.Atoi(m[3])
			ops = append(ops, circuitdag.GateOp{Kind: k, Qubits: []int{q}, Params: params})
			continue
		}
		if m := singleGateRegex.FindStringSubmatch(line); m != nil {
			k := gate.Kind(strings.ToUpper(m[1]))
			q, _ := strconv.Atoi(m[2])
			ops = append(ops, circuitdag.GateOp{Kind: k, Qubits: []int{q}})
			continue
		}
		return circuitdag.Circuit{}, fmt.Errorf("parse: line %d: unrecognized statement %q", lineNo+1, line)
	}

	return circuitdag.New(numQubits, numClbits, ops)
}

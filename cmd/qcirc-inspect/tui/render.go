package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qxform/qxform/internal/qerr"
)

func (m Model) renderTabBar() string {
	var parts []string
	for t := tab(0); t < numTabs; t++ {
		if t == m.active {
			parts = append(parts, activeTabStyle.Render("["+t.label()+"]"))
		} else {
			parts = append(parts, inactiveTabStyle.Render(" "+t.label()+" "))
		}
	}
	help := dimStyle.Render("  tab/←→ to switch panels, ↑↓/pgup/pgdn to scroll, q to quit")
	return tabBarStyle.Render(strings.Join(parts, " ") + help)
}

func (m Model) panelBody() string {
	switch m.active {
	case tabCircuit:
		return m.renderCircuitPanel()
	case tabDAG:
		return m.renderDAGPanel()
	case tabLayout:
		return m.renderLayoutPanel()
	case tabCost:
		return m.renderCostPanel()
	default:
		return ""
	}
}

func (m Model) renderCircuitPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("normalized circuit") + "\n")
	b.WriteString(m.result.NormalizedCircuitText)
	b.WriteString("\n" + titleStyle.Render("routed circuit") + "\n")
	b.WriteString(m.result.RoutedCircuitText)
	return b.String()
}

func (m Model) renderDAGPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("dependency graph (%d nodes, depth %d)", m.dag.Len(), m.dag.Depth())) + "\n")
	for i := 0; i < m.dag.Len(); i++ {
		op := m.dag.Circuit.Ops[i]
		preds := m.dag.Predecessors(i)
		b.WriteString(fmt.Sprintf("%3d: %-6s q=%v  <- %v\n", i, op.Kind, op.Qubits, preds))
	}
	return b.String()
}

func (m Model) renderLayoutPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("initial layout (logical -> physical)") + "\n")
	writeSortedMap(&b, m.result.InitialLayout.Map())
	b.WriteString("\n" + titleStyle.Render("final layout (logical -> physical)") + "\n")
	writeSortedMap(&b, m.result.FinalLayout.Map())
	b.WriteString(fmt.Sprintf("\nswaps inserted: %d\n", m.result.Structural.SwapCount))
	return b.String()
}

func writeSortedMap(b *strings.Builder, m map[int]int) {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %d -> %d\n", k, m[k])
	}
}

func (m Model) renderCostPanel() string {
	var b strings.Builder
	c := m.result.Cost
	s := m.result.Structural
	b.WriteString(titleStyle.Render("structural") + "\n")
	fmt.Fprintf(&b, "depth: %d -> %d\n", s.OriginalDepth, s.TranspiledDepth)
	fmt.Fprintf(&b, "gates: %d (two-qubit: %d)\n", s.GateCount, s.TwoQubitGateCount)

	b.WriteString("\n" + titleStyle.Render("fidelity") + "\n")
	fmt.Fprintf(&b, "gate fidelity:        %.6f\n", c.GateFidelity)
	fmt.Fprintf(&b, "overall gate error:   %.6g\n", c.OverallGateError)
	fmt.Fprintf(&b, "decoherence fidelity: %.6f\n", c.DecoherenceFidelity)
	fmt.Fprintf(&b, "readout fidelity:     %.6f\n", c.ReadoutFidelity)
	fmt.Fprintf(&b, "total fidelity:       %s\n", goodStyle.Render(fmt.Sprintf("%.6f", c.Fidelity)))
	fmt.Fprintf(&b, "effective error:      %.6g\n", c.EffectiveError)
	fmt.Fprintf(&b, "execution time:       %.3f\n", c.OverallExecutionTime)

	if m.result.EquivalenceChecked {
		fmt.Fprintf(&b, "\nequivalence check: %v\n", m.result.Equivalent)
	}

	if len(m.result.Warnings) > 0 {
		b.WriteString("\n" + titleStyle.Render("warnings") + "\n")
		for _, w := range m.result.Warnings {
			b.WriteString(warnStyle.Render(renderWarning(w)) + "\n")
		}
	}
	return b.String()
}

func renderWarning(w qerr.Warning) string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

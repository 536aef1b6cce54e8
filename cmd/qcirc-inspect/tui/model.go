// Package tui is the bubbletea program cmd/qcirc-inspect and qcirc's
// "inspect" subcommand both launch to browse a pipeline.Result, adapted
// from the teacher's circuit-editor Model into a read-only result browser:
// the DAG is the teacher's single source of truth too, but here it backs a
// set of tabbed panels instead of an editable grid, and the teacher's
// textarea editor becomes a scrollable viewport over each panel's text.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qxform/qxform/internal/circuitdag"
	"github.com/qxform/qxform/internal/pipeline"
)

type tab int

const (
	tabCircuit tab = iota
	tabDAG
	tabLayout
	tabCost
	numTabs
)

func (t tab) label() string {
	switch t {
	case tabCircuit:
		return "circuit"
	case tabDAG:
		return "dag"
	case tabLayout:
		return "layout"
	case tabCost:
		return "cost"
	default:
		return "?"
	}
}

// Model holds a completed transpilation result and which panel is active.
type Model struct {
	result pipeline.Result
	dag    *circuitdag.DAG
	active tab
	vp     viewport.Model
	ready  bool
	width  int
	height int
}

// NewModel builds the inspector's initial state from a finished
// transpilation.
func NewModel(result pipeline.Result) Model {
	return Model{
		result: result,
		dag:    circuitdag.Build(result.RoutedCircuit),
		active: tabCircuit,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpWidth, vpHeight := m.panelSize()
		if !m.ready {
			m.vp = viewport.New(vpWidth, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = vpWidth
			m.vp.Height = vpHeight
		}
		m.vp.SetContent(m.panelBody())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % numTabs
			m.vp.SetContent(m.panelBody())
			m.vp.GotoTop()
			return m, nil
		case "shift+tab", "left", "h":
			m.active = (m.active - 1 + numTabs) % numTabs
			m.vp.SetContent(m.panelBody())
			m.vp.GotoTop()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	bar := m.renderTabBar()
	panel := panelStyle.Width(m.vp.Width).Height(m.vp.Height).Render(m.vp.View())
	return bar + "\n" + panel
}

func (m Model) panelSize() (int, int) {
	width := m.width - 4
	height := m.height - 6
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return width, height
}

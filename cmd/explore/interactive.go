package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/dataflow"
	"github.com/wippyai/dataflow/constprop"
	"github.com/wippyai/dataflow/ir"
	"github.com/wippyai/dataflow/missingness"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	changedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type exploreModel struct {
	err      error
	filename string
	prog     *ir.Program
	solver   *dataflow.Solver
	last     *dataflow.StepInfo
	changed  map[*ir.Value]bool
	table    viewport.Model
	done     bool
	ready    bool
}

func newExploreModel(filename string) (*exploreModel, error) {
	prog, solver, err := load(filename, dataflow.Config{})
	if err != nil {
		return nil, err
	}
	return &exploreModel{
		filename: filename,
		prog:     prog,
		solver:   solver,
		changed:  make(map[*ir.Value]bool),
	}, nil
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 6
		m.table = viewport.New(msg.Width, msg.Height-headerHeight)
		m.ready = true
		m.table.SetContent(m.renderTable())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "s", " ":
			m.step()

		case "r":
			for !m.done && m.err == nil {
				m.step()
			}

		case "up", "k":
			m.table.LineUp(1)

		case "down", "j":
			m.table.LineDown(1)
		}
	}
	return m, nil
}

// step advances the solver one worklist visit.
func (m *exploreModel) step() {
	if m.done || m.err != nil {
		return
	}
	info, err := m.solver.Step()
	if err != nil {
		m.err = err
		return
	}
	if info == nil {
		m.done = true
		m.last = nil
	} else {
		m.last = info
		m.changed = make(map[*ir.Value]bool)
		for _, v := range info.Changed {
			m.changed[v] = true
		}
	}
	if m.ready {
		m.table.SetContent(m.renderTable())
	}
}

func (m *exploreModel) renderTable() string {
	var b strings.Builder
	for _, v := range m.prog.Values() {
		miss, err := m.solver.Result(missingness.Name, v)
		if err != nil {
			return err.Error()
		}
		c, err := m.solver.Result(constprop.Name, v)
		if err != nil {
			return err.Error()
		}
		line := fmt.Sprintf("%-12s %-14s %s", v.String(), miss.String(), c.String())
		if m.changed[v] {
			b.WriteString(changedStyle.Render(line))
		} else {
			b.WriteString(valueStyle.Render(line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Fixpoint Explorer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.done:
		b.WriteString(doneStyle.Render(fmt.Sprintf("Fixpoint reached in %d visits", m.solver.Steps())))
	case m.last != nil:
		b.WriteString(fmt.Sprintf("Visit %d: %s %s, %d changed, %d pending",
			m.solver.Steps(),
			m.last.Analysis,
			opStyle.Render(m.last.Op.Name()),
			len(m.last.Changed),
			m.solver.WorklistLen()))
	default:
		b.WriteString(fmt.Sprintf("%d ops, %d pending visits", m.prog.NumOps(), m.solver.WorklistLen()))
	}
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.table.View())
	} else {
		b.WriteString(m.renderTable())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s/space step • r run to fixpoint • ↑/↓ scroll • q quit"))

	return b.String()
}

func runInteractive(filename string) error {
	model, err := newExploreModel(filename)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

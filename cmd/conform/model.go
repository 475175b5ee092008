package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go6502/core/fixture"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	totalStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// model renders fixture.Summary one file at a time, so a large directory
// scrolls by as a live pass/fail feed instead of appearing all at once.
type model struct {
	summary *fixture.Summary
	verbose bool
	shown   int
}

type revealMsg struct{}

func newModel(s *fixture.Summary, verbose bool) model {
	return model{summary: s, verbose: verbose}
}

func tickCmd() tea.Cmd {
	return tea.Tick(8*time.Millisecond, func(time.Time) tea.Msg { return revealMsg{} })
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case revealMsg:
		if m.shown >= len(m.summary.Files) {
			return m, tea.Quit
		}
		m.shown++
		if m.shown >= len(m.summary.Files) {
			return m, nil
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	for _, fs := range m.summary.Files[:m.shown] {
		line := fmt.Sprintf("%-60s %d/%d", fs.Path, fs.Passed, fs.Total)
		if fs.Passed == fs.Total {
			b.WriteString(passStyle.Render(line))
		} else {
			b.WriteString(failStyle.Render(line))
		}
		b.WriteString("\n")
		if m.verbose {
			for _, r := range fs.Failing {
				b.WriteString(dimStyle.Render("  "+fixture.Explain(r)) + "\n")
			}
		}
	}
	if m.shown >= len(m.summary.Files) {
		b.WriteString(totalStyle.Render(fmt.Sprintf("TOTAL %d/%d\n", m.summary.Passed, m.summary.Total)))
	}
	return b.String()
}

package console

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the player backs out of a menu.
var ErrCancelled = errors.New("cancelled")

// menuOutcome distinguishes how a menu program finished.
type menuOutcome int

const (
	menuPicked menuOutcome = iota
	menuSave
	menuQuit
	menuCancelled
)

// menuModel is a run-to-completion list picker. Each prompt runs its own
// short-lived program; the turn loop itself stays sequential.
type menuModel struct {
	title    string
	items    []string
	cursor   int
	outcome  menuOutcome
	done     bool
	controls bool // offer the in-game save and quit controls
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	itemStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedDimmed  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	menuBlockIndent = 2
)

func newMenuModel(title string, items []string, controls bool) menuModel {
	return menuModel{title: title, items: items, controls: controls, outcome: menuCancelled}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.outcome = menuPicked
		m.done = true
		return m, tea.Quit
	case "s":
		if m.controls {
			m.outcome = menuSave
			m.done = true
			return m, tea.Quit
		}
	case "q":
		if m.controls {
			m.outcome = menuQuit
		} else {
			m.outcome = menuCancelled
		}
		m.done = true
		return m, tea.Quit
	case "esc", "ctrl+c":
		if m.controls {
			m.outcome = menuQuit
		} else {
			m.outcome = menuCancelled
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(m.title) + "\n\n")

	indent := strings.Repeat(" ", menuBlockIndent)
	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("%s%s %s\n", indent, cursorStyle.Render(">"), selectedDimmed.Render(item)))
		} else {
			b.WriteString(fmt.Sprintf("%s  %s\n", indent, itemStyle.Render(item)))
		}
	}

	help := "up/down: choose, enter: confirm"
	if m.controls {
		help += ", s: save, q: quit"
	}
	b.WriteString("\n" + menuHelpStyle.Render(help) + "\n")
	return b.String()
}

// runMenu blocks until the player resolves the menu.
func runMenu(title string, items []string, controls bool) (int, menuOutcome, error) {
	final, err := tea.NewProgram(newMenuModel(title, items, controls)).Run()
	if err != nil {
		return 0, menuCancelled, fmt.Errorf("menu program failed: %w", err)
	}

	m := final.(menuModel)
	return m.cursor, m.outcome, nil
}

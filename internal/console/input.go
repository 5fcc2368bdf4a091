package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel collects one line of text and exits.
type inputModel struct {
	ti        textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func newInputModel(prompt string, placeholder string, secret bool) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 60
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}
	ti.Focus()
	return inputModel{ti: ti, prompt: prompt}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n", m.prompt, m.ti.View())
}

// readInput blocks until the player submits a line.
func readInput(prompt, placeholder string, secret bool) (string, error) {
	final, err := tea.NewProgram(newInputModel(prompt, placeholder, secret)).Run()
	if err != nil {
		return "", fmt.Errorf("input program failed: %w", err)
	}

	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return strings.TrimSpace(m.ti.Value()), nil
}

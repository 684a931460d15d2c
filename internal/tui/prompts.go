package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// textInputModel is a simple text input prompt model
type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	err       error
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = fmt.Errorf("canceled")
			m.done = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() string {
	if m.done {
		return ""
	}
	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(fmt.Sprintf("%s\n%s\n\n%s", m.prompt, m.textInput.View(),
		ColorDim("(Press Enter to submit, Ctrl+C to cancel)")))
}

// PromptTextInput prompts the user for text input
func PromptTextInput(prompt, defaultValue string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	ti := textinput.New()
	ti.Placeholder = ""
	ti.SetValue(defaultValue)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80

	m := textInputModel{
		textInput: ti,
		prompt:    prompt,
	}

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(textInputModel); ok {
		if finalModel.err != nil {
			return "", finalModel.err
		}
		return finalModel.textInput.Value(), nil
	}

	return "", fmt.Errorf("unexpected model type")
}

// BranchChoice represents a branch option in a selection prompt
type BranchChoice struct {
	Display string // What to show (may include the owner prefix)
	Value   string // Key identifying the branch
}

// BranchSelectModel is a branch selection prompt model with filtering
type BranchSelectModel struct {
	Choices  []BranchChoice
	Filtered []BranchChoice
	Filter   string
	Cursor   int
	Selected string
	Done     bool
	Err      error
	Message  string
}

// Init initializes the bubbletea model
func (m BranchSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles message updates for the bubbletea model
func (m BranchSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if len(m.Filtered) > 0 && m.Cursor >= 0 && m.Cursor < len(m.Filtered) {
				m.Selected = m.Filtered[m.Cursor].Value
				m.Done = true
				return m, tea.Quit
			}
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Err = fmt.Errorf("canceled")
			m.Done = true
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
			} else {
				m.Cursor = len(m.Filtered) - 1
			}
			return m, nil
		case tea.KeyDown:
			if m.Cursor < len(m.Filtered)-1 {
				m.Cursor++
			} else {
				m.Cursor = 0
			}
			return m, nil
		case tea.KeyBackspace:
			if len(m.Filter) > 0 {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.updateFiltered()
				if m.Cursor >= len(m.Filtered) {
					m.Cursor = len(m.Filtered) - 1
				}
				if m.Cursor < 0 {
					m.Cursor = 0
				}
			}
			return m, nil
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.updateFiltered()
			if m.Cursor >= len(m.Filtered) {
				m.Cursor = len(m.Filtered) - 1
			}
			if m.Cursor < 0 {
				m.Cursor = 0
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *BranchSelectModel) updateFiltered() {
	if m.Filter == "" {
		m.Filtered = m.Choices
		return
	}

	filterLower := strings.ToLower(m.Filter)
	m.Filtered = []BranchChoice{}
	for _, choice := range m.Choices {
		if strings.Contains(strings.ToLower(choice.Display), filterLower) ||
			strings.Contains(strings.ToLower(choice.Value), filterLower) {
			m.Filtered = append(m.Filtered, choice)
		}
	}
}

// View renders the TUI
func (m BranchSelectModel) View() string {
	if m.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Message))
	b.WriteString("\n")

	if m.Filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s\n\n", ColorBranchName(m.Filter, true)))
	} else {
		b.WriteString("\n")
	}

	if len(m.Filtered) == 0 {
		b.WriteString("No branches match the filter.\n")
	} else {
		for i, choice := range m.Filtered {
			cursor := " "
			display := choice.Display
			if i == m.Cursor {
				cursor = ColorBranchName(">", true)
				display = ColorBranchName(choice.Display, true)
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, display))
		}
	}

	b.WriteString(ColorDim("\n(Press Enter to select, Ctrl+C to cancel, type to filter)"))

	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(b.String())
}

// PromptBranchSelection prompts the user to select a branch
func PromptBranchSelection(message string, choices []BranchChoice, initialIndex int) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	if len(choices) == 0 {
		return "", fmt.Errorf("no branches available")
	}

	m := BranchSelectModel{
		Choices: choices,
		Filter:  "",
		Cursor:  initialIndex,
		Message: message,
	}
	m.updateFiltered()

	if m.Cursor < 0 || m.Cursor >= len(m.Filtered) {
		m.Cursor = 0
	}

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(BranchSelectModel); ok {
		if finalModel.Err != nil {
			return "", finalModel.Err
		}
		return finalModel.Selected, nil
	}

	return "", fmt.Errorf("unexpected model type")
}

package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInteractiveDisabled is returned when prompts cannot be shown, either because
// GHUP_NON_INTERACTIVE is set or because no terminal is attached
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled (GHUP_NON_INTERACTIVE is set or no terminal is attached)")

// ErrCanceled is returned when the user aborts a prompt
var ErrCanceled = errors.New("canceled")

// CheckInteractiveAllowed returns ErrInteractiveDisabled if prompts cannot be shown
func CheckInteractiveAllowed() error {
	if os.Getenv("GHUP_NON_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	if !IsTTY() {
		return ErrInteractiveDisabled
	}
	return nil
}

// textInputModel is a simple text input prompt model
type textInputModel struct {
	textInput textinput.Model
	prompt    string
	hint      string
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
			m.err = ErrCanceled
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
	var b strings.Builder
	b.WriteString(m.prompt)
	if m.hint != "" {
		b.WriteString(" " + ColorDim(m.hint))
	}
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n(Press Enter to submit, Ctrl+C to cancel)")

	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(b.String())
}

func newTextInputModel(prompt, hint, defaultValue string) textInputModel {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.SetValue(defaultValue)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 80

	return textInputModel{
		textInput: ti,
		prompt:    prompt,
		hint:      hint,
	}
}

// PromptTextInput prompts the user for text input.
// The hint is shown dimmed next to the prompt.
func PromptTextInput(prompt, hint, defaultValue string) (string, error) {
	if err := CheckInteractiveAllowed(); err != nil {
		return "", err
	}

	m := newTextInputModel(prompt, hint, defaultValue)

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(textInputModel); ok {
		if finalModel.err != nil {
			return "", finalModel.err
		}
		return strings.TrimSpace(finalModel.textInput.Value()), nil
	}

	return "", fmt.Errorf("unexpected model type")
}

// PromptConfirm prompts the user for yes/no confirmation
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := CheckInteractiveAllowed(); err != nil {
		return false, err
	}

	confirmed := defaultValue
	err := survey.AskOne(&survey.Confirm{
		Message: prompt,
		Default: defaultValue,
	}, &confirmed)
	if errors.Is(err, terminal.InterruptErr) {
		return false, ErrCanceled
	}
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// SelectOption represents an option in a selection prompt
type SelectOption struct {
	Label string // What to show
	Value string // Value to return
}

// SelectModel is a selection prompt model with arrow key navigation
type SelectModel struct {
	Options  []SelectOption
	Cursor   int
	Selected string
	Done     bool
	Err      error
	Title    string
}

// Init initializes the bubbletea model
func (m SelectModel) Init() tea.Cmd {
	return nil
}

// Update handles message updates for the bubbletea model
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if len(m.Options) > 0 && m.Cursor >= 0 && m.Cursor < len(m.Options) {
				m.Selected = m.Options[m.Cursor].Value
				m.Done = true
				return m, tea.Quit
			}
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Err = ErrCanceled
			m.Done = true
			return m, tea.Quit
		case tea.KeyUp, tea.KeyShiftTab:
			if m.Cursor > 0 {
				m.Cursor--
			} else {
				m.Cursor = len(m.Options) - 1
			}
			return m, nil
		case tea.KeyDown, tea.KeyTab:
			if m.Cursor < len(m.Options)-1 {
				m.Cursor++
			} else {
				m.Cursor = 0
			}
			return m, nil
		case tea.KeyRunes:
			// Number keys pick an option directly
			if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
				idx := int(msg.Runes[0] - '1')
				if idx < len(m.Options) {
					m.Cursor = idx
					m.Selected = m.Options[idx].Value
					m.Done = true
					return m, tea.Quit
				}
			}
		}
	}
	return m, nil
}

// View renders the TUI
func (m SelectModel) View() string {
	if m.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Title))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprintf("%d. %s", i+1, opt.Label)
		if i == m.Cursor {
			b.WriteString(fmt.Sprintf("  → %s\n", accentStyle.Render(label)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", label))
		}
	}

	b.WriteString(ColorDim("\n(↑/↓ or number to select, Enter to confirm, Ctrl+C to cancel)"))

	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(b.String())
}

// PromptSelect prompts the user to select from a list of options
func PromptSelect(title string, options []SelectOption, defaultIndex int) (string, error) {
	if err := CheckInteractiveAllowed(); err != nil {
		return "", err
	}

	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	cursor := defaultIndex
	if cursor < 0 || cursor >= len(options) {
		cursor = 0
	}

	m := SelectModel{
		Options: options,
		Cursor:  cursor,
		Title:   title,
	}

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(SelectModel); ok {
		if finalModel.Err != nil {
			return "", finalModel.Err
		}
		return finalModel.Selected, nil
	}

	return "", fmt.Errorf("unexpected model type")
}

// Prompter asks the user questions. TerminalPrompter is the real implementation;
// tests substitute scripted answers.
type Prompter interface {
	Select(title string, options []SelectOption, defaultIndex int) (string, error)
	TextInput(prompt, hint, defaultValue string) (string, error)
	Confirm(prompt string, defaultValue bool) (bool, error)
}

// TerminalPrompter shows prompts on the controlling terminal
type TerminalPrompter struct{}

// Ensure interface compliance.
var _ Prompter = TerminalPrompter{}

func (TerminalPrompter) Select(title string, options []SelectOption, defaultIndex int) (string, error) {
	return PromptSelect(title, options, defaultIndex)
}

func (TerminalPrompter) TextInput(prompt, hint, defaultValue string) (string, error) {
	return PromptTextInput(prompt, hint, defaultValue)
}

func (TerminalPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	return PromptConfirm(prompt, defaultValue)
}

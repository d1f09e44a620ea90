package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel is a confirmation dialog that renders as a centered
// bordered box. When active it intercepts all key input.
//
// Navigation: left/right/tab/shift+tab move focus between Yes and No buttons.
// Enter activates the focused button. y/n/esc are shortcut accelerators.
type confirmModel struct {
	active   bool
	message  string
	warning  string // shown in red under the message, e.g. auto-accept notice
	focusYes bool

	// Layout dimensions, so the dialog can center itself.
	width  int
	height int
}

// confirmResultMsg is sent after the user responds to a confirmation dialog.
type confirmResultMsg struct {
	confirmed bool
}

func newConfirmModel() confirmModel {
	return confirmModel{}
}

// show activates the dialog. Focus starts on Yes unless there is a
// warning, in which case it starts on No.
func (m confirmModel) show(message, warning string) confirmModel {
	m.active = true
	m.message = message
	m.warning = warning
	m.focusYes = warning == ""
	return m
}

// setSize updates the available area for centering the dialog.
func (m confirmModel) setSize(width, height int) confirmModel {
	m.width = width
	m.height = height
	return m
}

// dismiss hides the dialog.
func (m confirmModel) dismiss() confirmModel {
	m.active = false
	m.message = ""
	m.warning = ""
	m.focusYes = false
	return m
}

func (m confirmModel) respond(confirmed bool) (confirmModel, tea.Cmd) {
	m = m.dismiss()
	return m, func() tea.Msg {
		return confirmResultMsg{confirmed: confirmed}
	}
}

// update handles key input while the dialog is active.
// Returns the updated model, any commands to run, and whether the message was consumed.
func (m confirmModel) update(msg tea.Msg) (confirmModel, tea.Cmd, bool) {
	if !m.active {
		return m, nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	switch {
	case key.Matches(keyMsg, confirmYesKey):
		m, cmd := m.respond(true)
		return m, cmd, true

	case key.Matches(keyMsg, confirmNoKey), key.Matches(keyMsg, keys.Back):
		m, cmd := m.respond(false)
		return m, cmd, true

	case key.Matches(keyMsg, keys.Enter):
		m, cmd := m.respond(m.focusYes)
		return m, cmd, true

	case key.Matches(keyMsg, confirmLeft), key.Matches(keyMsg, confirmRight),
		key.Matches(keyMsg, confirmTab), key.Matches(keyMsg, confirmShiftTab):
		m.focusYes = !m.focusYes
		return m, nil, true
	}

	// Swallow everything else while the dialog is up.
	return m, nil, true
}

// view renders the dialog with the message and Yes / No buttons, centered
// in the available area.
func (m confirmModel) view() string {
	if !m.active {
		return ""
	}

	parts := []string{
		lipgloss.NewStyle().Width(48).Align(lipgloss.Center).Render(m.message),
	}
	if m.warning != "" {
		parts = append(parts, dialogWarningStyle.Width(48).Align(lipgloss.Center).Render(m.warning))
	}

	var yesBtn, noBtn string
	if m.focusYes {
		yesBtn = dialogActiveButtonStyle.Render("Yes")
		noBtn = dialogButtonStyle.Render("No")
	} else {
		yesBtn = dialogButtonStyle.Render("Yes")
		noBtn = dialogActiveButtonStyle.Render("No")
	}
	parts = append(parts, "", lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn))

	dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))

	if m.width <= 0 || m.height <= 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

// confirmProgram runs a confirmModel as a standalone program.
type confirmProgram struct {
	dialog    confirmModel
	done      bool
	confirmed bool
}

func (p confirmProgram) Init() tea.Cmd { return nil }

func (p confirmProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.dialog = p.dialog.setSize(msg.Width, msg.Height)
		return p, nil
	case confirmResultMsg:
		p.done = true
		p.confirmed = msg.confirmed
		return p, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			p.done = true
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.dialog, cmd, _ = p.dialog.update(msg)
	return p, cmd
}

func (p confirmProgram) View() string {
	if p.done {
		return ""
	}
	return p.dialog.view()
}

// Confirm asks a yes/no question on in/out.
func Confirm(message, warning string, in io.Reader, out io.Writer) (bool, error) {
	model := confirmProgram{dialog: newConfirmModel().show(message, warning)}
	final, err := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return false, fmt.Errorf("running confirmation: %w", err)
	}
	p, ok := final.(confirmProgram)
	return ok && p.confirmed, nil
}

// Key bindings for the confirm dialog (not part of the global keyMap).
var (
	confirmYesKey = key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	)
	confirmNoKey = key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "cancel"),
	)
	confirmLeft = key.NewBinding(
		key.WithKeys("left", "h"),
	)
	confirmRight = key.NewBinding(
		key.WithKeys("right", "l"),
	)
	confirmTab = key.NewBinding(
		key.WithKeys("tab"),
	)
	confirmShiftTab = key.NewBinding(
		key.WithKeys("shift+tab"),
	)
)

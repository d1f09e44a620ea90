package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/collabintel/ci/internal/core/kb"
)

// ErrCancelled is returned when the user leaves a prompt without choosing.
var ErrCancelled = errors.New("cancelled")

// pickerModel lets the user choose an agent from the registry.
type pickerModel struct {
	width  int
	height int

	list list.Model
	help help.Model

	chosen    string
	cancelled bool
}

func newPickerModel(profiles []kb.Profile, isActive func(string) bool) pickerModel {
	l := list.New(agentsToItems(profiles, isActive), newAgentDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.SetShowPagination(false)

	// Start the cursor on the first active agent.
	if isActive != nil {
		for i, p := range profiles {
			if isActive(p.Name) {
				l.Select(i)
				break
			}
		}
	}

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle

	return pickerModel{list: l, help: h}
}

func (m pickerModel) setSize(width, height int) pickerModel {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(1, height))
	return m
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.setSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		// Don't intercept keys while filtering.
		if m.list.SettingFilter() {
			break
		}

		switch {
		case key.Matches(msg, keys.Enter):
			if fi, ok := m.list.SelectedItem().(agentItem); ok {
				m.chosen = fi.profile.Name
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.chosen != "" || m.cancelled {
		return ""
	}

	// --- Render-then-measure ---
	header := renderSectionHeader("SELECT AGENT") + "\n"
	footer := "\n" + m.help.View(pickerHelpKeyMap{})

	if len(m.list.Items()) == 0 {
		return header + mutedStyle.Render("  The knowledge base lists no agents.") + footer
	}

	listH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if listH < 1 {
		listH = 1
	}
	m.list.SetSize(m.width, listH)

	return header + m.list.View() + footer
}

// PickAgent runs the picker on in/out and returns the chosen agent name.
func PickAgent(reg *kb.Registry, isActive func(string) bool, in io.Reader, out io.Writer) (string, error) {
	if reg.Len() == 0 {
		return "", fmt.Errorf("no agents to choose from")
	}

	p := tea.NewProgram(newPickerModel(reg.Profiles(), isActive),
		tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running agent picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || m.cancelled || m.chosen == "" {
		return "", ErrCancelled
	}
	return m.chosen, nil
}

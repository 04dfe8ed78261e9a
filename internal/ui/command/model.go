package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/genius-board/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// verbs lists the palette's commands, in the order they are hinted.
var verbs = []string{
	"board", "stages", "geniuses", "completed", "sort",
	"drafts", "archive", "refresh", "token", "quit",
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "board <name> · stages · sort due · refresh"
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil

		case "tab":
			if matches := m.matches(); len(matches) == 1 {
				m.input.SetValue(matches[0])
				m.input.CursorEnd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// matches returns the verbs the typed first word is a prefix of.
func (m Model) matches() []string {
	typed := strings.TrimSpace(m.input.Value())
	if typed == "" {
		return verbs
	}
	first := strings.Fields(typed)[0]

	var out []string
	for _, v := range verbs {
		if strings.HasPrefix(v, first) {
			out = append(out, v)
		}
	}
	return out
}

// View renders the command palette with the matching verbs as hints.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command")
	input := m.input.View()

	hints := theme.HelpStyle.Render(strings.Join(m.matches(), " · "))

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, "", hints)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

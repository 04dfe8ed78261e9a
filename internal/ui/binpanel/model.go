package binpanel

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/genius-board/internal/board"
	"github.com/nhle/genius-board/internal/keys"
	"github.com/nhle/genius-board/internal/model"
	"github.com/nhle/genius-board/internal/theme"
)

// BackMsg signals the parent to return to the board.
type BackMsg struct{}

// RestoreMsg asks the parent to move a binned card back to the board.
type RestoreMsg struct {
	CardID int
}

// OpenCardMsg asks the parent to open a binned card in the editor.
type OpenCardMsg struct {
	CardID int
}

// Model lists the cards in one edge bin.
type Model struct {
	engine *board.Engine
	edge   board.Edge
	keys   *keys.KeyMap
	cursor int
	width  int
	height int
}

// New creates a bin panel over the given engine.
func New(e *board.Engine, edge board.Edge, k *keys.KeyMap, width, height int) Model {
	return Model{
		engine: e,
		edge:   edge,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) cards() []model.Card {
	if m.edge == board.EdgeLeft {
		return m.engine.DraftCards()
	}
	return m.engine.ArchiveCards()
}

// Update handles messages for the bin panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cards := m.cards()

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(cards)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Restore):
		if m.cursor < len(cards) {
			id := cards[m.cursor].ID
			if m.cursor > 0 {
				m.cursor--
			}
			return m, func() tea.Msg { return RestoreMsg{CardID: id} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor < len(cards) {
			id := cards[m.cursor].ID
			return m, func() tea.Msg { return OpenCardMsg{CardID: id} }
		}
		return m, nil
	}

	return m, nil
}

// View renders the bin listing.
func (m Model) View() string {
	title := "Drafts"
	if m.edge == board.EdgeRight {
		title = "Archive"
	}

	cards := m.cards()
	lines := []string{theme.HeaderStyle.Render(title), ""}

	if len(cards) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(fmt.Sprintf("Nothing in %s.", title))
		lines = append(lines, empty)
	}

	for i, c := range cards {
		line := fmt.Sprintf("%s  %s", c.Title, theme.HelpStyle.Render(c.DueDate))
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Render("› ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	lines = append(lines, "",
		theme.HelpStyle.Render("u restore · enter open · esc back"))

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.NewStyle().Padding(1, 2).Height(m.height - 2).Render(body)
}

package boardview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/genius-board/internal/board"
	"github.com/nhle/genius-board/internal/keys"
	"github.com/nhle/genius-board/internal/model"
	"github.com/nhle/genius-board/internal/theme"
)

// SelectedCardMsg is sent when a user opens a card's detail view.
type SelectedCardMsg struct {
	CardID int
}

// DropCardMsg is sent when a carried card is released over a column.
type DropCardMsg struct {
	CardID   int
	Target   string
	Index    int
	HasIndex bool
}

// BinCardMsg is sent when a card is released over an edge bin.
type BinCardMsg struct {
	CardID int
	Edge   board.Edge
}

// NewCardMsg is sent when the user creates a card in a column.
type NewCardMsg struct {
	Target string
}

// DuplicateCardMsg is sent when the user duplicates the selected card.
type DuplicateCardMsg struct {
	CardID int
}

// binZoneWidth is the width of each edge bin panel while a card is
// being carried. Mouse releases inside these zones bin the card.
const binZoneWidth = 14

// Model is the Kanban board view component.
type Model struct {
	engine    *board.Engine
	employees []model.Employee
	keys      *keys.KeyMap

	colIndex int
	rowIndex int

	// carriedID is the card picked up in keyboard move mode; zero when
	// nothing is carried.
	carriedID int

	// dragID is the card held by a mouse press; zero when no drag is
	// active. Keyboard carry and mouse drag share the drop path.
	dragID int

	width  int
	height int
}

// New creates a board view over the given engine.
func New(e *board.Engine, k *keys.KeyMap, width, height int) Model {
	return Model{
		engine: e,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetEmployees updates the team roster used for column count badges.
func (m *Model) SetEmployees(employees []model.Employee) {
	m.employees = employees
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Carrying reports whether a card is currently picked up or dragged.
func (m Model) Carrying() bool {
	return m.carriedID != 0 || m.dragID != 0
}

// SelectedCard returns the card under the cursor, if any.
func (m Model) SelectedCard() (model.Card, bool) {
	cards := m.visibleAt(m.colIndex)
	if m.rowIndex < 0 || m.rowIndex >= len(cards) {
		return model.Card{}, false
	}
	return cards[m.rowIndex], true
}

// Update handles messages for the board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeys(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	targets := m.engine.ColumnKeys()

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.colIndex > 0 {
			m.colIndex--
			m.clampRow()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.colIndex < len(targets)-1 {
			m.colIndex++
			m.clampRow()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		max := len(m.visibleAt(m.colIndex))
		if m.carriedID != 0 {
			// While carrying, the cursor is an insertion point and may
			// sit one past the last card.
			if m.rowIndex < max {
				m.rowIndex++
			}
		} else if m.rowIndex < max-1 {
			m.rowIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.rowIndex > 0 {
			m.rowIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Move):
		if m.carriedID == 0 {
			card, ok := m.SelectedCard()
			if !ok {
				return m, nil
			}
			m.carriedID = card.ID
			return m, nil
		}
		// Drop at the insertion point under the cursor.
		id := m.carriedID
		m.carriedID = 0
		target := targets[m.colIndex]
		index := m.rowIndex
		return m, func() tea.Msg {
			return DropCardMsg{CardID: id, Target: target, Index: index, HasIndex: true}
		}

	case key.Matches(msg, m.keys.Back):
		if m.carriedID != 0 {
			m.carriedID = 0
			m.clampRow()
			return m, nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		card, ok := m.SelectedCard()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedCardMsg{CardID: card.ID}
		}

	case key.Matches(msg, m.keys.NewCard):
		target := targets[m.colIndex]
		return m, func() tea.Msg {
			return NewCardMsg{Target: target}
		}

	case key.Matches(msg, m.keys.Duplicate):
		card, ok := m.SelectedCard()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return DuplicateCardMsg{CardID: card.ID}
		}

	case key.Matches(msg, m.keys.Draft):
		return m.binSelected(board.EdgeLeft)

	case key.Matches(msg, m.keys.Archive):
		return m.binSelected(board.EdgeRight)
	}

	return m, nil
}

func (m Model) binSelected(edge board.Edge) (Model, tea.Cmd) {
	id := m.carriedID
	if id == 0 {
		card, ok := m.SelectedCard()
		if !ok {
			return m, nil
		}
		id = card.ID
	}
	m.carriedID = 0
	return m, func() tea.Msg {
		return BinCardMsg{CardID: id, Edge: edge}
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		col, row, ok := m.hitTest(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.colIndex = col
		m.rowIndex = row
		if card, found := m.SelectedCard(); found {
			m.dragID = card.ID
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.dragID == 0 {
			return m, nil
		}
		if col, row, ok := m.hitTest(msg.X, msg.Y); ok {
			m.colIndex = col
			m.rowIndex = row
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.dragID == 0 {
			return m, nil
		}
		// Hit-test with the carrying geometry (bins visible) before
		// clearing the drag, so coordinates match what was rendered.
		edge, inBin := m.binZoneAt(msg.X)
		id := m.dragID
		next := m
		next.dragID = 0

		if inBin {
			return next, func() tea.Msg {
				return BinCardMsg{CardID: id, Edge: edge}
			}
		}

		return m.dropAt(next, id, msg.X, msg.Y)
	}

	return m, nil
}

// dropAt converts a release position into a drop request. A release on
// the upper 80% of a card inserts before it; the bottom 20% and any
// space below the last card insert after. The receiver still holds the
// in-flight drag so column bounds match the rendered frame; next is the
// post-drop state to return.
func (m Model) dropAt(next Model, id int, x, y int) (Model, tea.Cmd) {
	col, ok := m.columnAt(x)
	if !ok {
		return next, nil
	}
	target := m.engine.ColumnKeys()[col]
	cards := m.visibleAt(col)

	cardsTop := columnHeaderRows
	row := (y - cardsTop) / cardHeight

	var index int
	var hasIndex bool
	switch {
	case len(cards) == 0:
		index, hasIndex = 0, true
	case row < 0:
		index, hasIndex = 0, true
	case row >= len(cards):
		index, hasIndex = len(cards), true
	default:
		top := cardsTop + row*cardHeight
		index = board.DropIndex(row, float64(y), float64(top), float64(cardHeight))
		hasIndex = true
	}

	return next, func() tea.Msg {
		return DropCardMsg{CardID: id, Target: target, Index: index, HasIndex: hasIndex}
	}
}

// hitTest maps terminal coordinates to a column and card row.
func (m Model) hitTest(x, y int) (col, row int, ok bool) {
	col, ok = m.columnAt(x)
	if !ok {
		return 0, 0, false
	}
	cards := m.visibleAt(col)
	if len(cards) == 0 {
		return col, 0, true
	}
	row = (y - columnHeaderRows) / cardHeight
	if row < 0 {
		row = 0
	}
	if row >= len(cards) {
		row = len(cards) - 1
	}
	return col, row, true
}

// columnAt maps an x coordinate to a column index, accounting for the
// edge bin zones shown while carrying.
func (m Model) columnAt(x int) (int, bool) {
	left, right := m.contentBounds()
	if x < left || x >= right {
		return 0, false
	}
	n := len(m.engine.ColumnKeys())
	colWidth := (right - left) / n
	if colWidth <= 0 {
		return 0, false
	}
	col := (x - left) / colWidth
	if col >= n {
		col = n - 1
	}
	return col, true
}

// binZoneAt maps an x coordinate to an edge bin while carrying.
func (m Model) binZoneAt(x int) (board.Edge, bool) {
	if !m.Carrying() {
		return "", false
	}
	left, right := m.contentBounds()
	if x < left {
		return board.EdgeLeft, true
	}
	if x >= right {
		return board.EdgeRight, true
	}
	return "", false
}

// contentBounds returns the x range occupied by the columns. The edge
// bins claim a strip on each side while a card is in flight.
func (m Model) contentBounds() (left, right int) {
	if m.Carrying() {
		return binZoneWidth, m.width - binZoneWidth
	}
	return 0, m.width
}

func (m *Model) clampRow() {
	max := len(m.visibleAt(m.colIndex))
	if max == 0 {
		m.rowIndex = 0
		return
	}
	if m.rowIndex >= max {
		m.rowIndex = max - 1
	}
}

func (m Model) visibleAt(col int) []model.Card {
	targets := m.engine.ColumnKeys()
	if col < 0 || col >= len(targets) {
		return nil
	}
	return m.engine.VisibleCards(targets[col])
}

// View renders the column grid, with edge bins while a card is carried.
func (m Model) View() string {
	targets := m.engine.ColumnKeys()
	left, right := m.contentBounds()
	colWidth := (right - left) / len(targets)
	innerWidth := colWidth - 4 // column border and padding
	if innerWidth < 8 {
		innerWidth = 8
	}

	columns := make([]string, 0, len(targets))
	for i, target := range targets {
		columns = append(columns, m.renderColumn(i, target, innerWidth))
	}
	grid := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	if !m.Carrying() {
		return grid
	}

	leftBin := m.renderBin("Drafts", board.EdgeLeft)
	rightBin := m.renderBin("Archive", board.EdgeRight)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftBin, grid, rightBin)
}

func (m Model) renderColumn(i int, target string, innerWidth int) string {
	title, accent := m.columnLabel(target)
	counts := board.CountsForTarget(m.employees, m.engine.ViewMode(), target)
	header := renderColumnHeader(
		title, accent,
		formatCounts(counts.Genius, counts.Competency, counts.Frustration),
		innerWidth,
	)

	cards := m.engine.VisibleCards(target)
	lines := []string{header}
	for j, c := range cards {
		style := theme.CardStyle
		switch {
		case c.ID == m.carriedID || c.ID == m.dragID:
			style = theme.CarriedCardStyle
		case i == m.colIndex && j == m.rowIndex && !m.Carrying():
			style = theme.SelectedCardStyle
		}
		lines = append(lines, renderCard(c, innerWidth, style))
	}

	colStyle := theme.ColumnStyle
	if m.Carrying() && i == m.colIndex {
		colStyle = theme.DropTargetStyle
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return colStyle.Width(innerWidth + 2).Height(m.height - 2).Render(body)
}

func (m Model) renderBin(title string, edge board.Edge) string {
	var count int
	if edge == board.EdgeLeft {
		count = len(m.engine.DraftCards())
	} else {
		count = len(m.engine.ArchiveCards())
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render(title),
		theme.HelpStyle.Render(formatBinCount(count)),
	)
	return theme.BinStyle.Width(binZoneWidth - 2).Height(m.height - 2).Render(body)
}

func (m Model) columnLabel(target string) (string, lipgloss.AdaptiveColor) {
	if m.engine.ViewMode() == board.ViewStage {
		if s := model.StageByID(model.StageID(target)); s != nil {
			return s.Title, theme.ColumnColor(s.Geniuses[0])
		}
		return target, theme.ColorGray
	}
	for _, c := range model.GeniusColumns {
		if string(c.ID) == target {
			return c.Title, theme.ColumnColor(c.ID)
		}
	}
	return target, theme.ColorGray
}

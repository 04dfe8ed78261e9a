package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/genius-board/internal/editor"
	"github.com/nhle/genius-board/internal/model"
	"github.com/nhle/genius-board/internal/theme"
)

// CloseMsg signals the parent to close the editor. FinalSave carries the
// last unsaved working copy when a save was still pending at close.
type CloseMsg struct {
	FinalSave *model.Card
}

// CommitMsg asks the parent to persist the working copy. It fires when
// the auto-save delay elapses with no further edits.
type CommitMsg struct {
	Card model.Card
}

// CommentSubmitMsg asks the parent to post a comment to the backend.
type CommentSubmitMsg struct {
	CardID  int
	Content string
}

// DeleteSubtaskMsg asks the parent to delete a persisted subtask.
type DeleteSubtaskMsg struct {
	CardID    int
	SubtaskID int
}

// DeleteCardMsg asks the parent to delete the card, after confirmation.
type DeleteCardMsg struct {
	CardID int
}

// DuplicateMsg carries a duplicated card for the parent to append.
type DuplicateMsg struct {
	Card model.Card
}

// ErrorMsg surfaces a validation failure in the status line.
type ErrorMsg struct {
	Err error
}

// saveTickMsg is the internal debounce timer firing for a given edit
// sequence. Stale ticks are ignored in CommitDue.
type saveTickMsg struct {
	seq uint64
}

// inputMode identifies which overlay input, if any, owns the keyboard.
type inputMode int

const (
	inputNone inputMode = iota
	inputTitle
	inputDescription
	inputDueDate
	inputComment
	inputSubtaskForm
	inputOwnerSelect
	inputBoardSelect
	inputConfirmDelete
)

// Model is the card detail editor component.
type Model struct {
	session *editor.Session
	master  *model.MasterData

	viewport     viewport.Model
	titleInput   textinput.Model
	descArea     textarea.Model
	dateInput    textinput.Model
	commentInput textinput.Model

	form *huh.Form
	fb   *formBindings

	mode       inputMode
	subtaskIdx int
	statusLine string
	width      int
	height     int
}

// formBindings holds huh field values on the heap so Value() pointers
// survive Bubble Tea model copies.
type formBindings struct {
	subtaskTitle string
	subtaskOwner string
	subtaskDue   string
	owner        string
	board        string
	confirm      bool
}

// New creates a detail editor for the given card. A freshly created
// card opens directly in title editing.
func New(card model.Card, master *model.MasterData, width, height int) Model {
	vp := viewport.New(width, height-2)

	ti := textinput.New()
	ti.Prompt = "Title: "
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Description..."
	ta.SetHeight(6)

	di := textinput.New()
	di.Prompt = "Due date: "
	di.Placeholder = "YYYY-MM-DD"

	ci := textinput.New()
	ci.Prompt = "Comment: "

	m := Model{
		session:      editor.NewSession(card),
		master:       master,
		viewport:     vp,
		titleInput:   ti,
		descArea:     ta,
		dateInput:    di,
		commentInput: ci,
		fb:           &formBindings{},
		width:        width,
		height:       height,
	}

	if m.session.Mode() == editor.ModeEditingTitle {
		m.mode = inputTitle
		m.titleInput.SetValue(card.Title)
		m.titleInput.Focus()
	}

	m.refresh()
	return m
}

// Session exposes the underlying edit session so the parent can apply
// backend responses (comment threads, replaced ids).
func (m *Model) Session() *editor.Session { return m.session }

// Refresh re-renders the viewport after an external session change.
func (m *Model) Refresh() { m.refresh() }

// CardID returns the id of the card being edited.
func (m *Model) CardID() int { return m.session.Card().ID }

// ApplyComments installs the backend's canonical comment thread.
func (m *Model) ApplyComments(comments []model.Comment) {
	m.session.SetComments(comments)
	m.refresh()
}

// ApplyComment appends a freshly posted comment returned by the backend.
func (m *Model) ApplyComment(c model.Comment) {
	m.session.AppendComment(c)
	m.statusLine = ""
	m.refresh()
}

// ApplySubtaskDeleted removes a subtask after the backend confirmed the
// delete, and re-arms the save timer for the updated card.
func (m *Model) ApplySubtaskDeleted(subtaskID int) tea.Cmd {
	seq := m.session.RemoveSubtask(subtaskID)
	m.refresh()
	return scheduleSave(seq)
}

// ApplySaved clears the saving indicator after a successful persist.
func (m *Model) ApplySaved() {
	m.statusLine = ""
}

// ApplyError surfaces a backend failure in the status line.
func (m *Model) ApplyError(err error) {
	m.statusLine = err.Error()
}

// SetSize updates the editor dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.descArea.SetWidth(width - 8)
	m.refresh()
}

// Init returns the initial command for the editor.
func (m Model) Init() tea.Cmd {
	if m.mode == inputTitle {
		return textinput.Blink
	}
	return nil
}

// Update handles messages for the editor.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveTickMsg:
		if m.session.CommitDue(msg.seq) {
			card := m.session.TakeCommit()
			m.statusLine = "saving…"
			return m, func() tea.Msg { return CommitMsg{Card: card} }
		}
		return m, nil

	case ErrorMsg:
		m.statusLine = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case inputTitle:
			return m.handleTitleKeys(msg)
		case inputDescription:
			return m.handleDescriptionKeys(msg)
		case inputDueDate:
			return m.handleDateKeys(msg)
		case inputComment:
			return m.handleCommentKeys(msg)
		case inputSubtaskForm, inputOwnerSelect, inputBoardSelect, inputConfirmDelete:
			return m.handleFormKeys(msg)
		default:
			return m.handleViewKeys(msg)
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// scheduleSave arms the trailing-edge auto-save timer for an edit
// sequence. A newer edit bumps the sequence and the stale tick no-ops.
func scheduleSave(seq uint64) tea.Cmd {
	return tea.Tick(editor.AutoSaveDelay, func(time.Time) tea.Msg {
		return saveTickMsg{seq: seq}
	})
}

func (m Model) handleViewKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Close and duplicate work even on a locked card.
	switch msg.String() {
	case "esc", "q":
		return m.close()

	case "y":
		dup := m.session.Duplicate()
		return m, func() tea.Msg { return DuplicateMsg{Card: dup} }

	case "L":
		m.session.ToggleLock()
		m.refresh()
		return m, nil
	}

	if m.session.Locked() {
		m.statusLine = "card is locked; press L to unlock"
		return m, nil
	}

	switch msg.String() {
	case "t":
		m.mode = inputTitle
		m.session.SetMode(editor.ModeEditingTitle)
		m.titleInput.SetValue(m.session.Card().Title)
		m.titleInput.CursorEnd()
		return m, m.titleInput.Focus()

	case "e":
		m.mode = inputDescription
		m.session.SetMode(editor.ModeEditingDescription)
		m.descArea.SetValue(m.session.Card().Description)
		return m, m.descArea.Focus()

	case "s":
		seq := m.session.SetStatus(m.nextChoice(m.statusChoices(), m.session.Card().Status))
		m.refresh()
		return m, scheduleSave(seq)

	case "p":
		seq := m.session.SetPriority(m.nextChoice(m.priorityChoices(), m.session.Card().Priority))
		m.refresh()
		return m, scheduleSave(seq)

	case "+", "=":
		seq := m.session.SetProgress(m.session.Card().Progress + 10)
		m.refresh()
		return m, scheduleSave(seq)

	case "-":
		seq := m.session.SetProgress(m.session.Card().Progress - 10)
		m.refresh()
		return m, scheduleSave(seq)

	case "P":
		seq := m.session.ToggleProgressEnabled()
		m.refresh()
		return m, scheduleSave(seq)

	case "x":
		seq := m.session.ToggleCompleted()
		m.refresh()
		return m, scheduleSave(seq)

	case "d":
		m.mode = inputDueDate
		m.dateInput.SetValue(m.session.Card().DueDate)
		m.dateInput.CursorEnd()
		return m, m.dateInput.Focus()

	case "o":
		return m.openOwnerSelect()

	case "b":
		return m.openBoardSelect()

	case "a":
		return m.openSubtaskForm()

	case "j", "down":
		if m.subtaskIdx < len(m.session.Card().Subtasks)-1 {
			m.subtaskIdx++
			m.refresh()
		}
		return m, nil

	case "k", "up":
		if m.subtaskIdx > 0 {
			m.subtaskIdx--
			m.refresh()
		}
		return m, nil

	case " ":
		subs := m.session.Card().Subtasks
		if m.subtaskIdx < len(subs) {
			seq := m.session.ToggleSubtask(subs[m.subtaskIdx].ID)
			m.refresh()
			return m, scheduleSave(seq)
		}
		return m, nil

	case "X":
		subs := m.session.Card().Subtasks
		if m.subtaskIdx < len(subs) {
			st := subs[m.subtaskIdx]
			if st.ID == 0 {
				// Not persisted yet; drop it locally.
				seq := m.session.RemoveSubtask(st.ID)
				m.refresh()
				return m, scheduleSave(seq)
			}
			cardID := m.session.Card().ID
			return m, func() tea.Msg {
				return DeleteSubtaskMsg{CardID: cardID, SubtaskID: st.ID}
			}
		}
		return m, nil

	case "m":
		m.mode = inputComment
		m.commentInput.Reset()
		return m, m.commentInput.Focus()

	case "D":
		return m.openDeleteConfirm()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleTitleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = inputNone
		m.titleInput.Blur()
		m.session.SetMode(editor.ModeViewing)
		seq := m.session.SetTitle(strings.TrimSpace(m.titleInput.Value()))
		m.refresh()
		return m, scheduleSave(seq)
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m Model) handleDescriptionKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.descArea.Blur()
		m.session.SetMode(editor.ModeViewing)
		seq := m.session.SetDescription(m.descArea.Value())
		m.refresh()
		return m, scheduleSave(seq)
	}

	var cmd tea.Cmd
	m.descArea, cmd = m.descArea.Update(msg)
	return m, cmd
}

func (m Model) handleDateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.dateInput.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.dateInput.Value())
		date, err := time.Parse("2006-01-02", value)
		if err != nil {
			m.statusLine = "invalid date, use YYYY-MM-DD"
			return m, nil
		}
		seq, err := m.session.SetDueDate(date)
		if err != nil {
			m.statusLine = err.Error()
			return m, nil
		}
		m.mode = inputNone
		m.dateInput.Blur()
		m.statusLine = ""
		m.refresh()
		return m, scheduleSave(seq)
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m Model) handleCommentKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.commentInput.Blur()
		m.statusLine = ""
		return m, nil

	case "enter":
		content := m.commentInput.Value()
		if err := m.session.ValidateComment(content); err != nil {
			m.statusLine = err.Error()
			return m, nil
		}
		m.mode = inputNone
		m.commentInput.Blur()
		m.statusLine = "posting comment…"
		cardID := m.session.Card().ID
		return m, func() tea.Msg {
			return CommentSubmitMsg{CardID: cardID, Content: content}
		}
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.mode = inputNone
		m.form = nil
		return m, nil
	}
	return m.updateForm(msg)
}

// close finishes the session. A pending edit is flushed as a final save
// so nothing typed in the last second is lost.
func (m Model) close() (Model, tea.Cmd) {
	var final *model.Card
	if m.session.Pending() {
		card := m.session.TakeCommit()
		final = &card
	}
	m.session.Close()
	return m, func() tea.Msg { return CloseMsg{FinalSave: final} }
}

// nextChoice cycles to the choice after current, wrapping around.
func (m Model) nextChoice(choices []string, current string) string {
	if len(choices) == 0 {
		return current
	}
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

func (m Model) statusChoices() []string {
	if m.master == nil || len(m.master.Statuses) == 0 {
		return []string{model.StatusOnTrack, model.StatusAtRisk, model.StatusBlocked}
	}
	out := make([]string, len(m.master.Statuses))
	for i, s := range m.master.Statuses {
		out[i] = s.Name
	}
	return out
}

func (m Model) priorityChoices() []string {
	if m.master == nil || len(m.master.Priorities) == 0 {
		return []string{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}
	}
	out := make([]string, len(m.master.Priorities))
	for i, p := range m.master.Priorities {
		out[i] = p.Name
	}
	return out
}

// View renders the editor.
func (m Model) View() string {
	var overlay string
	switch m.mode {
	case inputTitle:
		overlay = m.titleInput.View()
	case inputDescription:
		overlay = m.descArea.View() + "\n" + theme.HelpStyle.Render("esc to finish")
	case inputDueDate:
		overlay = m.dateInput.View()
	case inputComment:
		overlay = m.commentInput.View()
	case inputSubtaskForm, inputOwnerSelect, inputBoardSelect, inputConfirmDelete:
		if m.form != nil {
			overlay = m.form.View()
		}
	}

	body := m.viewport.View()
	if overlay != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, overlay)
	}

	status := m.statusLine
	if status == "" && m.session.Locked() {
		status = "locked"
	}
	if status != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, theme.HelpStyle.Render(status))
	}

	return theme.DetailPanelStyle.Width(m.width - 2).Render(body)
}

// refresh rebuilds the viewport content from the working copy.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) renderContent() string {
	card := m.session.Card()
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := card.Title
	if m.session.Locked() {
		title = "🔒 " + title
	}
	sections = append(sections, titleStyle.Render(title))

	statusBadge := theme.StatusStyle(card.Status).Render(card.Status)
	priBadge := theme.PriorityStyle(card.Priority).Render(card.Priority)
	badgeLine := lipgloss.JoinHorizontal(lipgloss.Top, statusBadge, "  ", priBadge)
	if card.Completed {
		badgeLine = lipgloss.JoinHorizontal(lipgloss.Top, badgeLine, "  ",
			lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("✓ completed"))
	}
	sections = append(sections, badgeLine, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	sections = append(sections, fmt.Sprintf("%s  %s",
		metaStyle.Render("Due:"), valStyle.Render(card.DueDate)))

	if col := model.StageFor(card.Column); col != nil {
		sections = append(sections, fmt.Sprintf("%s  %s (%s)",
			metaStyle.Render("Column:"),
			valStyle.Render(string(card.Column)),
			col.Title))
	} else {
		sections = append(sections, fmt.Sprintf("%s  %s",
			metaStyle.Render("Column:"), valStyle.Render(string(card.Column))))
	}

	if len(card.Owners) > 0 {
		sections = append(sections, fmt.Sprintf("%s  %s",
			metaStyle.Render("Owners:"), valStyle.Render(strings.Join(card.Owners, ", "))))
	}
	if len(card.Boards) > 0 {
		sections = append(sections, fmt.Sprintf("%s  %s",
			metaStyle.Render("Boards:"), valStyle.Render(strings.Join(card.Boards, ", "))))
	}

	if card.ProgressEnabled {
		sections = append(sections, fmt.Sprintf("%s  %s",
			metaStyle.Render("Progress:"), renderProgressBar(card.Progress, 24)))
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", min(m.width-8, 72)))
	sections = append(sections, "", sep, "")

	desc := card.Description
	if desc == "" {
		desc = theme.HelpStyle.Render("No description")
	}
	sections = append(sections, desc)

	if len(card.Subtasks) > 0 {
		sections = append(sections, "", sep, "")
		sections = append(sections, titleStyle.Render(
			fmt.Sprintf("Subtasks (%d)", len(card.Subtasks))))
		for i, st := range card.Subtasks {
			sections = append(sections, renderSubtask(st, i == m.subtaskIdx))
		}
	}

	if len(card.Comments) > 0 {
		sections = append(sections, "", sep, "")
		sections = append(sections, titleStyle.Render(
			fmt.Sprintf("Comments (%d)", len(card.Comments))))
		sections = append(sections, "")
		authorStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
		timeStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
		for _, c := range card.Comments {
			header := fmt.Sprintf("%s  %s",
				authorStyle.Render(c.UserName), timeStyle.Render(c.CreatedAt))
			sections = append(sections, header, c.Content, "")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderSubtask(st model.SubTask, selected bool) string {
	box := "☐"
	if st.Completed {
		box = "☑"
	}
	line := fmt.Sprintf("%s %s", box, st.Title)
	if st.Assignee != "" {
		line += theme.HelpStyle.Render(fmt.Sprintf("  @%s", st.Assignee))
	}
	if st.DueDate != "" {
		line += theme.HelpStyle.Render(fmt.Sprintf("  %s", st.DueDate))
	}
	if selected {
		return lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Render("› ") + line
	}
	return "  " + line
}

func renderProgressBar(progress, width int) string {
	filled := progress * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d%%", bar, progress)
}

package detail

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/genius-board/internal/model"
)

func (m Model) openSubtaskForm() (Model, tea.Cmd) {
	m.fb.subtaskTitle = ""
	m.fb.subtaskOwner = ""
	m.fb.subtaskDue = ""

	opts := make([]huh.Option[string], 0, len(m.employees()))
	for _, e := range m.employees() {
		opts = append(opts, huh.NewOption(e.Name, e.Name))
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Subtask").
			Placeholder("What needs doing?").
			Value(&m.fb.subtaskTitle).
			Validate(validateRequired("Subtask title")),
		huh.NewSelect[string]().
			Title("Owner").
			Options(opts...).
			Value(&m.fb.subtaskOwner),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.subtaskDue).
			Validate(validateOptionalDate),
	)).WithWidth(m.formWidth())

	m.mode = inputSubtaskForm
	return m, m.form.Init()
}

func (m Model) openOwnerSelect() (Model, tea.Cmd) {
	employees := m.employees()
	if len(employees) == 0 {
		m.statusLine = "no team members loaded"
		return m, nil
	}

	m.fb.owner = ""
	opts := make([]huh.Option[string], 0, len(employees))
	for _, e := range employees {
		opts = append(opts, huh.NewOption(e.Name, e.Name))
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Add Owner").
			Options(opts...).
			Value(&m.fb.owner),
	)).WithWidth(m.formWidth())

	m.mode = inputOwnerSelect
	return m, m.form.Init()
}

func (m Model) openBoardSelect() (Model, tea.Cmd) {
	if m.master == nil || len(m.master.Boards) == 0 {
		m.statusLine = "no boards loaded"
		return m, nil
	}

	m.fb.board = ""
	card := m.session.Card()
	opts := make([]huh.Option[string], 0, len(m.master.Boards))
	for _, b := range m.master.Boards {
		label := b.Name
		if card.HasBoard(b.Name) {
			label = "✓ " + label
		}
		opts = append(opts, huh.NewOption(label, b.Name))
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Toggle Board").
			Options(opts...).
			Value(&m.fb.board),
	)).WithWidth(m.formWidth())

	m.mode = inputBoardSelect
	return m, m.form.Init()
}

func (m Model) openDeleteConfirm() (Model, tea.Cmd) {
	m.fb.confirm = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", m.session.Card().Title)).
			Description("This removes the project from the backend.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&m.fb.confirm),
	)).WithWidth(m.formWidth())

	m.mode = inputConfirmDelete
	return m, m.form.Init()
}

// updateForm drives the active huh form and applies its result.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateAborted {
		m.mode = inputNone
		m.form = nil
		return m, nil
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	mode := m.mode
	m.mode = inputNone
	m.form = nil

	switch mode {
	case inputSubtaskForm:
		due := time.Time{}
		if v := strings.TrimSpace(m.fb.subtaskDue); v != "" {
			due, _ = time.Parse("2006-01-02", v)
		}
		seq, err := m.session.AddSubtask(
			m.fb.subtaskTitle, m.fb.subtaskOwner, due, m.master,
		)
		if err != nil {
			m.statusLine = err.Error()
			return m, nil
		}
		m.refresh()
		return m, scheduleSave(seq)

	case inputOwnerSelect:
		if m.fb.owner == "" {
			return m, nil
		}
		seq := m.session.AddOwner(m.fb.owner)
		m.refresh()
		return m, scheduleSave(seq)

	case inputBoardSelect:
		if m.fb.board == "" {
			return m, nil
		}
		seq := m.session.ToggleBoard(m.fb.board)
		m.refresh()
		return m, scheduleSave(seq)

	case inputConfirmDelete:
		if !m.fb.confirm {
			return m, nil
		}
		cardID := m.session.Card().ID
		return m, func() tea.Msg { return DeleteCardMsg{CardID: cardID} }
	}

	return m, nil
}

func (m Model) employees() []model.Employee {
	if m.master == nil {
		return nil
	}
	return m.master.Employees
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

package editor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/genius-board/internal/model"
)

func testCard() model.Card {
	return model.Card{
		ID:       42,
		Title:    "Quarterly review",
		Status:   model.StatusOnTrack,
		Priority: model.PriorityMedium,
		DueDate:  "2026-09-15",
		Column:   model.ColumnWonder,
		Boards:   []string{"Alpha"},
		Owners:   []string{"Ann"},
		Subtasks: []model.SubTask{
			{ID: 7, Title: "Collect numbers", AssignedTo: 1, DueDate: "2026-09-10"},
		},
	}
}

// fixedNow pins the session clock for date validation tests.
func fixedNow(s *Session, t time.Time) {
	s.now = func() time.Time { return t }
}

func TestNewSession_FreshCardOpensInTitleEdit(t *testing.T) {
	fresh := model.Card{Title: model.NewCardTitle}
	s := NewSession(fresh)
	assert.Equal(t, ModeEditingTitle, s.Mode())

	existing := NewSession(testCard())
	assert.Equal(t, ModeViewing, existing.Mode())
}

func TestSession_WorkingCopyIsIndependent(t *testing.T) {
	orig := testCard()
	s := NewSession(orig)

	s.SetTitle("changed")
	s.ToggleSubtask(7)

	assert.Equal(t, "Quarterly review", orig.Title)
	assert.False(t, orig.Subtasks[0].Completed)
}

func TestDebounce_LaterEditSupersedesEarlierTimer(t *testing.T) {
	s := NewSession(testCard())

	seq1 := s.SetTitle("first")
	seq2 := s.SetTitle("second")
	seq3 := s.SetTitle("third")

	// Timers for superseded edits never commit.
	assert.False(t, s.CommitDue(seq1))
	assert.False(t, s.CommitDue(seq2))

	// Only the latest timer fires, and it saves the final value.
	require.True(t, s.CommitDue(seq3))
	saved := s.TakeCommit()
	assert.Equal(t, "third", saved.Title)

	// The commit is consumed; the same timer cannot fire twice.
	assert.False(t, s.CommitDue(seq3))
}

func TestDebounce_EditsAcrossFieldsCollapseIntoOneSave(t *testing.T) {
	s := NewSession(testCard())

	s.SetStatus(model.StatusBlocked)
	s.SetPriority(model.PriorityHigh)
	seq := s.SetProgress(40)

	require.True(t, s.CommitDue(seq))
	saved := s.TakeCommit()
	assert.Equal(t, model.StatusBlocked, saved.Status)
	assert.Equal(t, model.PriorityHigh, saved.Priority)
	assert.Equal(t, 40, saved.Progress)
}

func TestClose_InvalidatesPendingTimer(t *testing.T) {
	s := NewSession(testCard())
	seq := s.SetTitle("edited")

	s.Close()

	assert.False(t, s.CommitDue(seq))
	assert.True(t, s.Closed())
}

func TestSetDueDate_RejectsPastDates(t *testing.T) {
	s := NewSession(testCard())
	fixedNow(s, time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC))

	_, err := s.SetDueDate(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	// A rejected date leaves the working copy and pending state alone.
	assert.Equal(t, "2026-09-15", s.Card().DueDate)
	assert.False(t, s.Pending())
}

func TestSetDueDate_TodayIsAllowedRegardlessOfTimeOfDay(t *testing.T) {
	s := NewSession(testCard())
	// Late in the day; a midnight comparison must still accept today.
	fixedNow(s, time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC))

	seq, err := s.SetDueDate(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, s.CommitDue(seq))
	assert.Equal(t, "2026-08-31", s.Card().DueDate)
}

func TestSetProgress_Clamped(t *testing.T) {
	s := NewSession(testCard())

	s.SetProgress(150)
	assert.Equal(t, 100, s.Card().Progress)

	s.SetProgress(-10)
	assert.Equal(t, 0, s.Card().Progress)
}

func TestToggleBoard_AddAndRemove(t *testing.T) {
	s := NewSession(testCard())

	s.ToggleBoard("Beta")
	assert.Equal(t, []string{"Alpha", "Beta"}, s.Card().Boards)

	s.ToggleBoard("Alpha")
	assert.Equal(t, []string{"Beta"}, s.Card().Boards)
}

func TestToggleLock_ForcesViewingMode(t *testing.T) {
	s := NewSession(testCard())
	s.SetMode(ModeEditingDescription)

	s.ToggleLock()
	assert.True(t, s.Locked())
	assert.Equal(t, ModeViewing, s.Mode())

	// Mode changes are refused while locked.
	s.SetMode(ModeEditingTitle)
	assert.Equal(t, ModeViewing, s.Mode())
}

func TestAddSubtask_ResolvesOwnerByName(t *testing.T) {
	master := &model.MasterData{Employees: []model.Employee{
		{ID: 5, Name: "Ann"},
		{ID: 9, Name: "Ben"},
	}}
	s := NewSession(testCard())
	fixedNow(s, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	_, err := s.AddSubtask("Write summary", "Ben", time.Time{}, master)
	require.NoError(t, err)

	subs := s.Card().Subtasks
	require.Len(t, subs, 2)
	added := subs[1]
	assert.Equal(t, 0, added.ID, "backend has not assigned an id yet")
	assert.Equal(t, 9, added.AssignedTo)
	assert.Equal(t, "Ben", added.Assignee)
	assert.Equal(t, "2026-08-31", added.DueDate, "empty due date defaults to today")
}

func TestAddSubtask_UnknownOwnerFallsBackToFirstEmployee(t *testing.T) {
	master := &model.MasterData{Employees: []model.Employee{{ID: 5, Name: "Ann"}}}
	s := NewSession(testCard())

	_, err := s.AddSubtask("Task", "Nobody", time.Time{}, master)
	require.NoError(t, err)

	added := s.Card().Subtasks[1]
	assert.Equal(t, 5, added.AssignedTo)
	assert.Equal(t, "Nobody", added.Assignee)
}

func TestAddSubtask_Validation(t *testing.T) {
	s := NewSession(testCard())

	_, err := s.AddSubtask("   ", "Ann", time.Time{}, nil)
	assert.Error(t, err)

	_, err = s.AddSubtask("Task", "", time.Time{}, nil)
	assert.Error(t, err)

	fixedNow(s, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	_, err = s.AddSubtask("Task", "Ann", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), nil)
	assert.Error(t, err, "past subtask due dates are rejected")
}

func TestAddSubtask_NilMasterKeepsTypedOwner(t *testing.T) {
	s := NewSession(testCard())

	_, err := s.AddSubtask("Task", "Ann", time.Time{}, nil)
	require.NoError(t, err)

	added := s.Card().Subtasks[1]
	assert.Equal(t, 1, added.AssignedTo)
	assert.Equal(t, "Ann", added.Assignee)
}

func TestValidateComment(t *testing.T) {
	fresh := NewSession(model.Card{Title: model.NewCardTitle})
	err := fresh.ValidateComment("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save the project")

	s := NewSession(testCard())
	assert.Error(t, s.ValidateComment("   "))
	assert.NoError(t, s.ValidateComment("looks good"))
}

func TestAppendComment_DoesNotMarkEdited(t *testing.T) {
	s := NewSession(testCard())

	s.AppendComment(model.Comment{ID: 1, Content: "from server"})

	assert.False(t, s.Pending(), "comments never ride the card save path")
	require.Len(t, s.Card().Comments, 1)
}

func TestDuplicate(t *testing.T) {
	s := NewSession(testCard())

	dup := s.Duplicate()

	assert.True(t, strings.HasSuffix(dup.Title, " (Copy)"))
	assert.Greater(t, dup.ID, 0)
	assert.LessOrEqual(t, dup.ID, 1_000_000)

	// Deep copy: mutating the duplicate's subtasks leaves the original.
	dup.Subtasks[0].Completed = true
	assert.False(t, s.Card().Subtasks[0].Completed)

	// The original session is untouched.
	assert.False(t, s.Pending())
}

func TestRemoveSubtask(t *testing.T) {
	s := NewSession(testCard())

	seq := s.RemoveSubtask(7)
	assert.Empty(t, s.Card().Subtasks)
	assert.True(t, s.CommitDue(seq))
}

package editor

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/nhle/genius-board/internal/model"
)

// AutoSaveDelay is the debounce quiet period: a commit fires only after
// this long with no further edits.
const AutoSaveDelay = time.Second

// Mode enumerates the editor's input states. A single enum replaces the
// editing-title/editing-description boolean pair so the states cannot
// drift into impossible combinations.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditingTitle
	ModeEditingDescription
)

// ValidationError is a client-side rejection caught before any network
// call. The board state is unchanged when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Session holds the working copy of one open card. All edits land on the
// copy; the board sees them only through a debounced or explicit commit.
// The session itself is clock-free: the UI schedules the timer and calls
// CommitDue with the sequence the timer carries.
type Session struct {
	working model.Card
	mode    Mode
	locked  bool
	closed  bool

	// seq increments on every edit; a timer firing with a stale
	// sequence is ignored. This is the cancel-and-reschedule debounce.
	seq     uint64
	pending bool

	now func() time.Time
}

// NewSession opens an editor over a deep copy of the card. Fresh cards
// (unsaved, still carrying the placeholder title) open directly in
// title-edit mode.
func NewSession(card model.Card) *Session {
	s := &Session{
		working: card.Clone(),
		now:     time.Now,
	}
	if card.IsNew() && card.Title == model.NewCardTitle {
		s.mode = ModeEditingTitle
	}
	return s
}

// Card returns the current working copy.
func (s *Session) Card() model.Card { return s.working }

// Mode returns the current input mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode switches the input mode. Locked sessions stay in viewing mode.
func (s *Session) SetMode(mode Mode) {
	if s.locked {
		return
	}
	s.mode = mode
}

// Locked reports whether mutation controls are disabled.
func (s *Session) Locked() bool { return s.locked }

// ToggleLock flips the local lock. The lock is pure UI state and is
// never persisted.
func (s *Session) ToggleLock() {
	s.locked = !s.locked
	if s.locked {
		s.mode = ModeViewing
	}
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool { return s.closed }

// Close invalidates any pending debounce. An already-dispatched save
// request is not affected; only the not-yet-fired timer dies with the
// session.
func (s *Session) Close() {
	s.closed = true
	s.pending = false
}

// markEdited records an edit and returns the sequence the auto-save
// timer for this edit must carry.
func (s *Session) markEdited() uint64 {
	s.seq++
	s.pending = true
	return s.seq
}

// Seq returns the current edit sequence.
func (s *Session) Seq() uint64 { return s.seq }

// CommitDue reports whether a timer carrying seq should commit: it must
// be the latest edit, with a commit still pending, on a live session.
func (s *Session) CommitDue(seq uint64) bool {
	return !s.closed && s.pending && seq == s.seq
}

// TakeCommit consumes the pending commit and returns the card to save.
// Used by both the debounce path and the explicit save path.
func (s *Session) TakeCommit() model.Card {
	s.pending = false
	return s.working
}

// Pending reports whether an uncommitted edit exists.
func (s *Session) Pending() bool { return s.pending }

// SetTitle updates the title. Returns the new edit sequence.
func (s *Session) SetTitle(title string) uint64 {
	s.working.Title = title
	return s.markEdited()
}

// SetDescription updates the description.
func (s *Session) SetDescription(desc string) uint64 {
	s.working.Description = desc
	return s.markEdited()
}

// SetStatus updates the status label.
func (s *Session) SetStatus(status string) uint64 {
	s.working.Status = status
	return s.markEdited()
}

// SetPriority updates the priority label.
func (s *Session) SetPriority(priority string) uint64 {
	s.working.Priority = priority
	return s.markEdited()
}

// SetProgress updates the clamped progress percentage.
func (s *Session) SetProgress(p int) uint64 {
	s.working.SetProgress(p)
	return s.markEdited()
}

// ToggleProgressEnabled flips the progress-bar gate.
func (s *Session) ToggleProgressEnabled() uint64 {
	s.working.ProgressEnabled = !s.working.ProgressEnabled
	return s.markEdited()
}

// ToggleCompleted flips the completed flag.
func (s *Session) ToggleCompleted() uint64 {
	s.working.Completed = !s.working.Completed
	return s.markEdited()
}

// AddOwner appends an owner display name.
func (s *Session) AddOwner(name string) uint64 {
	s.working.Owners = append(s.working.Owners, name)
	return s.markEdited()
}

// SetDueDate validates and stores the card's due date. Dates strictly
// before today are rejected and the previous value is kept.
func (s *Session) SetDueDate(date time.Time) (uint64, error) {
	if err := s.validateNotPast(date, "due date"); err != nil {
		return 0, err
	}
	s.working.DueDate = date.Format("2006-01-02")
	return s.markEdited(), nil
}

// ToggleBoard adds or removes a board tag symmetrically.
func (s *Session) ToggleBoard(name string) uint64 {
	for i, b := range s.working.Boards {
		if b == name {
			s.working.Boards = append(s.working.Boards[:i], s.working.Boards[i+1:]...)
			return s.markEdited()
		}
	}
	s.working.Boards = append(s.working.Boards, name)
	return s.markEdited()
}

// AddSubtask appends a new subtask with a placeholder id. The owner is
// resolved by name against the master data, falling back to the first
// employee when the name doesn't match. The subtask rides the normal
// auto-save path; there is no dedicated create endpoint.
func (s *Session) AddSubtask(
	title, owner string,
	due time.Time,
	master *model.MasterData,
) (uint64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, &ValidationError{Message: "subtask title cannot be empty"}
	}
	if owner == "" {
		return 0, &ValidationError{Message: "subtask owner is required"}
	}
	if !due.IsZero() {
		if err := s.validateNotPast(due, "subtask due date"); err != nil {
			return 0, err
		}
	} else {
		due = s.today()
	}

	assignedTo := 1
	assignee := owner
	if master != nil {
		if emp, ok := master.EmployeeByName(owner); ok {
			assignedTo = emp.ID
			assignee = emp.Name
		} else if len(master.Employees) > 0 {
			assignedTo = master.Employees[0].ID
		}
	}

	s.working.Subtasks = append(s.working.Subtasks, model.SubTask{
		ID:         0,
		Title:      title,
		AssignedTo: assignedTo,
		Assignee:   assignee,
		DueDate:    due.Format("2006-01-02"),
		Completed:  false,
	})
	return s.markEdited(), nil
}

// ToggleSubtask flips a subtask's completed flag in place.
func (s *Session) ToggleSubtask(subtaskID int) uint64 {
	for i := range s.working.Subtasks {
		if s.working.Subtasks[i].ID == subtaskID {
			s.working.Subtasks[i].Completed = !s.working.Subtasks[i].Completed
			break
		}
	}
	return s.markEdited()
}

// RemoveSubtask drops a subtask from the working copy. Called only after
// the backend confirmed the delete; a failed delete leaves it in place.
func (s *Session) RemoveSubtask(subtaskID int) uint64 {
	for i := range s.working.Subtasks {
		if s.working.Subtasks[i].ID == subtaskID {
			s.working.Subtasks = append(
				s.working.Subtasks[:i], s.working.Subtasks[i+1:]...,
			)
			break
		}
	}
	return s.markEdited()
}

// AdoptID installs the backend-assigned id after the create round-trip
// completes. Not an edit; the pending state is untouched.
func (s *Session) AdoptID(id int) {
	s.working.ID = id
}

// ValidateComment checks a comment before any network call: the card
// must be persisted and the content non-empty.
func (s *Session) ValidateComment(content string) error {
	if s.working.IsNew() {
		return &ValidationError{
			Message: "save the project before adding comments",
		}
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Message: "comment cannot be empty"}
	}
	return nil
}

// SetComments replaces the comment thread with the backend's canonical
// list, e.g. after the initial fetch.
func (s *Session) SetComments(comments []model.Comment) {
	s.working.Comments = append([]model.Comment(nil), comments...)
}

// AppendComment appends the server-returned canonical comment. Comments
// never ride the card save path, so this does not mark an edit.
func (s *Session) AppendComment(c model.Comment) {
	s.working.Comments = append(s.working.Comments, c)
}

// Duplicate clones the working copy under a fresh random placeholder id
// with a " (Copy)" title suffix. The caller appends it to the board and
// owns its eventual persistence.
func (s *Session) Duplicate() model.Card {
	clone := s.working.Clone()
	clone.ID = rand.IntN(1_000_000) + 1
	clone.Title = fmt.Sprintf("%s (Copy)", s.working.Title)
	return clone
}

// validateNotPast rejects dates strictly before today, comparing at
// midnight so time of day never matters.
func (s *Session) validateNotPast(date time.Time, what string) error {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(s.today()) {
		return &ValidationError{
			Message: fmt.Sprintf("%s cannot be in the past", what),
		}
	}
	return nil
}

// today returns the current date at midnight UTC.
func (s *Session) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

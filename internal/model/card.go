package model

// Status labels understood by the sort order. The backend master data is
// the real source of truth; these are the values shipped by default.
const (
	StatusOnTrack = "on-track"
	StatusAtRisk  = "at-risk"
	StatusBlocked = "blocked"
)

// Priority labels understood by the sort order.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// NewCardTitle is the sentinel title given to freshly created cards. The
// editor opens such cards directly in title-edit mode.
const NewCardTitle = "New Task"

// SubTask is a checklist entry on a card. A zero ID marks a subtask the
// backend has not assigned an identity to yet.
type SubTask struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	AssignedTo int    `json:"assignedTo"`
	Assignee   string `json:"assignee,omitempty"`
	DueDate    string `json:"dueDate"`
	Completed  bool   `json:"completed"`
}

// Comment is a single comment on a card. Comments are append-only from
// the client's perspective and are owned by the comment endpoints, never
// by the card save path.
type Comment struct {
	ID        int    `json:"id"`
	ProjectID int    `json:"projectId"`
	Content   string `json:"content"`
	UserName  string `json:"userName"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Card is the client-side representation of a project. A zero ID means
// the card exists only locally and has not been persisted.
type Card struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	DueDate         string    `json:"dueDate"`
	Column          ColumnID  `json:"column"`
	Completed       bool      `json:"completed"`
	Progress        int       `json:"progress"`
	ProgressEnabled bool      `json:"progressEnabled"`
	Boards          []string  `json:"boards"`
	Owners          []string  `json:"owners"`
	Subtasks        []SubTask `json:"subtasks"`
	Comments        []Comment `json:"commentsArray,omitempty"`
}

// IsNew reports whether the card has not been persisted yet.
func (c *Card) IsNew() bool { return c.ID == 0 }

// HasBoard reports whether the card is tagged with the given board name.
func (c *Card) HasBoard(name string) bool {
	for _, b := range c.Boards {
		if b == name {
			return true
		}
	}
	return false
}

// SetProgress clamps and stores a progress percentage.
func (c *Card) SetProgress(p int) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	c.Progress = p
}

// Clone returns a deep copy of the card. The editor works on clones so
// half-finished edits never leak into the board list.
func (c *Card) Clone() Card {
	clone := *c
	clone.Boards = append([]string(nil), c.Boards...)
	clone.Owners = append([]string(nil), c.Owners...)
	clone.Subtasks = append([]SubTask(nil), c.Subtasks...)
	clone.Comments = append([]Comment(nil), c.Comments...)
	return clone
}

// PriorityRank maps a priority label to its sort severity. Unknown labels
// rank below low.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// StatusRank maps a status label to its sort severity. Unknown labels
// rank below on-track.
func StatusRank(status string) int {
	switch status {
	case StatusBlocked:
		return 3
	case StatusAtRisk:
		return 2
	case StatusOnTrack:
		return 1
	}
	return 0
}

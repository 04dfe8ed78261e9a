package board

import (
	"fmt"
	"sort"
	"time"

	"github.com/nhle/genius-board/internal/model"
)

// ViewMode selects between the six fine-grained genius columns and the
// three coarse stage groups.
type ViewMode string

const (
	ViewGenius ViewMode = "genius"
	ViewStage  ViewMode = "stage"
)

// SortKey selects the display ordering within a column.
type SortKey string

const (
	SortByTitle    SortKey = "title"
	SortByDueDate  SortKey = "dueDate"
	SortByPriority SortKey = "priority"
	SortByStatus   SortKey = "status"
)

// Engine owns the board's ordered card collection and projects it into
// columns under the active view mode, filters, and sort. The flat list
// order is the single source of truth for in-column ordering; display
// sorting never touches it.
type Engine struct {
	cards []model.Card

	viewMode      ViewMode
	sortBy        SortKey
	showCompleted bool
	boardFilter   string
}

// New creates an empty engine with the default projection settings.
func New() *Engine {
	return &Engine{
		viewMode:    ViewGenius,
		sortBy:      SortByDueDate,
		boardFilter: model.AllProjectsBoard,
	}
}

// SetCards replaces the whole collection, e.g. after a refetch.
func (e *Engine) SetCards(cards []model.Card) {
	e.cards = append([]model.Card(nil), cards...)
}

// Cards returns the collection in storage order.
func (e *Engine) Cards() []model.Card {
	return e.cards
}

// CardByID finds a card by id. The second return is false when absent.
func (e *Engine) CardByID(id int) (model.Card, bool) {
	for _, c := range e.cards {
		if c.ID == id {
			return c, true
		}
	}
	return model.Card{}, false
}

// UpsertCard merges a saved working copy back into the collection,
// preserving its position. Unknown ids are appended.
func (e *Engine) UpsertCard(card model.Card) {
	for i := range e.cards {
		if e.cards[i].ID == card.ID {
			e.cards[i] = card
			return
		}
	}
	e.cards = append(e.cards, card)
}

// ReplaceCardID rewrites a card's id after the backend assigns a real
// one to a locally created card.
func (e *Engine) ReplaceCardID(oldID, newID int) {
	for i := range e.cards {
		if e.cards[i].ID == oldID {
			e.cards[i].ID = newID
			return
		}
	}
}

// RemoveCard deletes a card from the collection.
func (e *Engine) RemoveCard(id int) {
	for i := range e.cards {
		if e.cards[i].ID == id {
			e.cards = append(e.cards[:i], e.cards[i+1:]...)
			return
		}
	}
}

// AppendCard adds a card to the end of the collection.
func (e *Engine) AppendCard(card model.Card) {
	e.cards = append(e.cards, card)
}

// CreateCard appends a placeholder card to the given drop target (stage
// targets land in the first genius of the pair) and returns it. The
// active board filter seeds the new card's board tags unless it is the
// All-Projects sentinel.
func (e *Engine) CreateCard(target string) model.Card {
	boards := []string{}
	if e.boardFilter != model.AllProjectsBoard {
		boards = append(boards, e.boardFilter)
	}

	card := model.Card{
		Title:       model.NewCardTitle,
		Description: "",
		Status:      model.StatusOnTrack,
		Priority:    model.PriorityMedium,
		DueDate:     time.Now().Format("2006-01-02"),
		Column:      model.ResolveDropColumn(target),
		Boards:      boards,
		Owners:      []string{},
		Subtasks:    []model.SubTask{},
	}
	e.cards = append(e.cards, card)
	return card
}

// SetViewMode switches between genius and stage projection.
func (e *Engine) SetViewMode(mode ViewMode) { e.viewMode = mode }

// ViewMode returns the active projection mode.
func (e *Engine) ViewMode() ViewMode { return e.viewMode }

// SetSortKey changes the display sort.
func (e *Engine) SetSortKey(key SortKey) { e.sortBy = key }

// SortKey returns the active display sort.
func (e *Engine) SortKey() SortKey { return e.sortBy }

// SetShowCompleted toggles visibility of completed cards.
func (e *Engine) SetShowCompleted(show bool) { e.showCompleted = show }

// ShowCompleted reports whether completed cards are visible.
func (e *Engine) ShowCompleted() bool { return e.showCompleted }

// SetBoardFilter selects the active board tag filter.
// model.AllProjectsBoard means no filter.
func (e *Engine) SetBoardFilter(board string) { e.boardFilter = board }

// BoardFilter returns the active board tag filter.
func (e *Engine) BoardFilter() string { return e.boardFilter }

// ColumnKeys returns the drop-target keys for the active view mode, in
// board order.
func (e *Engine) ColumnKeys() []string {
	if e.viewMode == ViewStage {
		keys := make([]string, len(model.Stages))
		for i, s := range model.Stages {
			keys[i] = string(s.ID)
		}
		return keys
	}
	keys := make([]string, len(model.GeniusColumns))
	for i, c := range model.GeniusColumns {
		keys[i] = string(c.ID)
	}
	return keys
}

// CardsFor returns the members of a display column in storage order.
// Under genius view, membership is exact column equality; under stage
// view it is membership in the stage's disjoint genius pair. Bin cards
// never appear in either projection.
func (e *Engine) CardsFor(target string) []model.Card {
	var members []model.Card
	for _, c := range e.cards {
		if e.belongsTo(c, target) {
			members = append(members, c)
		}
	}
	return members
}

// VisibleCards returns a display column after filtering and sorting:
// board filter first, then the completed filter, then a stable sort.
// The returned slice is a copy; the stored order is never mutated.
func (e *Engine) VisibleCards(target string) []model.Card {
	cards := FilterCards(e.CardsFor(target), e.boardFilter, e.showCompleted)
	SortCards(cards, e.sortBy)
	return cards
}

// belongsTo reports display-column membership for the active view mode.
func (e *Engine) belongsTo(c model.Card, target string) bool {
	if c.Column.IsBin() {
		return false
	}
	if e.viewMode == ViewStage {
		if s := model.StageByID(model.StageID(target)); s != nil {
			return c.Column == s.Geniuses[0] || c.Column == s.Geniuses[1]
		}
		return false
	}
	return c.Column == model.ColumnID(target)
}

// FilterCards applies the board filter and then the completed filter,
// returning a new slice.
func FilterCards(cards []model.Card, boardFilter string, showCompleted bool) []model.Card {
	filtered := make([]model.Card, 0, len(cards))
	for _, c := range cards {
		if boardFilter != model.AllProjectsBoard && !c.HasBoard(boardFilter) {
			continue
		}
		if !showCompleted && c.Completed {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// SortCards stably sorts cards in place for display. Priority and status
// sort by descending severity; title and due date ascending.
func SortCards(cards []model.Card, key SortKey) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		switch key {
		case SortByTitle:
			return a.Title < b.Title
		case SortByDueDate:
			return parseDueDate(a.DueDate).Before(parseDueDate(b.DueDate))
		case SortByPriority:
			return model.PriorityRank(a.Priority) > model.PriorityRank(b.Priority)
		case SortByStatus:
			return model.StatusRank(a.Status) > model.StatusRank(b.Status)
		}
		return false
	})
}

// parseDueDate parses a stored due date. The canonical format is
// YYYY-MM-DD; legacy "Dec 15" values are read in the current year.
// Unparseable dates sort last.
func parseDueDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse("Jan 2", s); err == nil {
		return t.AddDate(time.Now().Year(), 0, 0)
	}
	return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
}

// DropIndex computes the insertion index while dragging over the card at
// hoverIndex. Pointers within the top 80% of the hovered card's box mean
// "insert before"; the bottom 20% means "insert after".
func DropIndex(hoverIndex int, pointerY, cardTop, cardHeight float64) int {
	threshold := cardTop + cardHeight*0.8
	if pointerY < threshold {
		return hoverIndex
	}
	return hoverIndex + 1
}

// Drop completes a drag: the card is removed from the collection,
// re-tagged with the resolved destination column, and re-spliced. With
// an explicit index the card becomes the index-th member of the
// destination column (clamped to the column size); without one it is
// appended to the end of the collection. A same-column drop with no
// index is a no-op.
func (e *Engine) Drop(cardID int, target string, index int, hasIndex bool) error {
	dragged, ok := e.CardByID(cardID)
	if !ok {
		return fmt.Errorf("dropping card %d: not found", cardID)
	}

	newColumn := model.ResolveDropColumn(target)
	if dragged.Column == newColumn && !hasIndex {
		return nil
	}

	e.RemoveCard(cardID)
	dragged.Column = newColumn

	if !hasIndex {
		e.cards = append(e.cards, dragged)
		return nil
	}

	at := e.spliceIndex(newColumn, index)
	e.cards = append(e.cards, model.Card{})
	copy(e.cards[at+1:], e.cards[at:])
	e.cards[at] = dragged
	return nil
}

// spliceIndex resolves a column-relative insertion index to a position
// in the flat collection: the position at which exactly columnIndex
// members of the column have been passed.
func (e *Engine) spliceIndex(column model.ColumnID, columnIndex int) int {
	count := 0
	for _, c := range e.cards {
		if c.Column == column {
			count++
		}
	}
	if columnIndex > count {
		columnIndex = count
	}

	seen := 0
	for i, c := range e.cards {
		if c.Column != column {
			continue
		}
		if seen == columnIndex {
			return i
		}
		seen++
	}
	return len(e.cards)
}

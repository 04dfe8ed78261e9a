package board

import "github.com/nhle/genius-board/internal/model"

// Edge identifies the screen edge a card was dragged to. The left edge
// hosts the draft bin, the right edge the archive bin.
type Edge string

const (
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// BinFor maps a drop edge to its bin column.
func BinFor(edge Edge) model.ColumnID {
	if edge == EdgeRight {
		return model.ColumnArchive
	}
	return model.ColumnDraft
}

// MoveToBin re-tags a card into the draft or archive bin, removing it
// from the normal column flow. The card keeps its place in the flat
// collection; bins are unordered so position there is irrelevant.
func (e *Engine) MoveToBin(cardID int, bin model.ColumnID) {
	if !bin.IsBin() {
		return
	}
	for i := range e.cards {
		if e.cards[i].ID == cardID {
			e.cards[i].Column = bin
			return
		}
	}
}

// Restore moves a binned card back into the default column. This is only
// ever triggered by an explicit user action.
func (e *Engine) Restore(cardID int) {
	for i := range e.cards {
		if e.cards[i].ID == cardID && e.cards[i].Column.IsBin() {
			e.cards[i].Column = model.DefaultColumn
			return
		}
	}
}

// DraftCards returns the cards currently parked in the draft bin.
func (e *Engine) DraftCards() []model.Card {
	return e.binCards(model.ColumnDraft)
}

// ArchiveCards returns the cards currently parked in the archive bin.
func (e *Engine) ArchiveCards() []model.Card {
	return e.binCards(model.ColumnArchive)
}

func (e *Engine) binCards(bin model.ColumnID) []model.Card {
	var cards []model.Card
	for _, c := range e.cards {
		if c.Column == bin {
			cards = append(cards, c)
		}
	}
	return cards
}

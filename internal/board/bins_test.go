package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/genius-board/internal/model"
)

func TestMoveToBin_RetagsInPlace(t *testing.T) {
	e := newTestEngine(
		card(1, "a", model.ColumnWonder),
		card(2, "b", model.ColumnTenacity),
	)

	e.MoveToBin(2, model.ColumnDraft)

	got, ok := e.CardByID(2)
	require.True(t, ok)
	assert.Equal(t, model.ColumnDraft, got.Column)
	// Position in the flat collection is untouched.
	assert.Equal(t, []int{1, 2}, ids(e.Cards()))
}

func TestMoveToBin_RejectsNonBinColumn(t *testing.T) {
	e := newTestEngine(card(1, "a", model.ColumnWonder))

	e.MoveToBin(1, model.ColumnTenacity)

	got, _ := e.CardByID(1)
	assert.Equal(t, model.ColumnWonder, got.Column)
}

func TestBinFor(t *testing.T) {
	assert.Equal(t, model.ColumnDraft, BinFor(EdgeLeft))
	assert.Equal(t, model.ColumnArchive, BinFor(EdgeRight))
}

func TestRestore_ReturnsToDefaultColumn(t *testing.T) {
	e := newTestEngine(card(1, "a", model.ColumnArchive))

	e.Restore(1)

	got, _ := e.CardByID(1)
	assert.Equal(t, model.DefaultColumn, got.Column)
}

func TestRestore_IgnoresUnbinnedCards(t *testing.T) {
	e := newTestEngine(card(1, "a", model.ColumnTenacity))

	e.Restore(1)

	got, _ := e.CardByID(1)
	assert.Equal(t, model.ColumnTenacity, got.Column, "restore never moves a card already on the board")
}

func TestDraftAndArchiveCards(t *testing.T) {
	e := newTestEngine(
		card(1, "a", model.ColumnDraft),
		card(2, "b", model.ColumnWonder),
		card(3, "c", model.ColumnArchive),
		card(4, "d", model.ColumnDraft),
	)

	assert.Equal(t, []int{1, 4}, ids(e.DraftCards()))
	assert.Equal(t, []int{3}, ids(e.ArchiveCards()))
}

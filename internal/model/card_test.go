package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard_Clone_IsDeep(t *testing.T) {
	orig := Card{
		ID:       1,
		Title:    "Original",
		Boards:   []string{"Alpha"},
		Owners:   []string{"Ann"},
		Subtasks: []SubTask{{ID: 1, Title: "Sub"}},
		Comments: []Comment{{ID: 1, Content: "c"}},
	}

	clone := orig.Clone()
	clone.Boards[0] = "changed"
	clone.Subtasks[0].Completed = true
	clone.Comments[0].Content = "changed"

	assert.Equal(t, "Alpha", orig.Boards[0])
	assert.False(t, orig.Subtasks[0].Completed)
	assert.Equal(t, "c", orig.Comments[0].Content)
}

func TestCard_SetProgressClamps(t *testing.T) {
	var c Card

	c.SetProgress(130)
	assert.Equal(t, 100, c.Progress)

	c.SetProgress(-5)
	assert.Equal(t, 0, c.Progress)

	c.SetProgress(60)
	assert.Equal(t, 60, c.Progress)
}

func TestCard_IsNew(t *testing.T) {
	fresh := Card{Title: NewCardTitle}
	assert.True(t, fresh.IsNew())

	saved := Card{ID: 9}
	assert.False(t, saved.IsNew())
}

func TestCard_HasBoard(t *testing.T) {
	c := Card{Boards: []string{"Alpha", "Beta"}}
	assert.True(t, c.HasBoard("Beta"))
	assert.False(t, c.HasBoard("Gamma"))
}

func TestPriorityRank_OrdersSeverity(t *testing.T) {
	require.Greater(t, PriorityRank(PriorityHigh), PriorityRank(PriorityMedium))
	require.Greater(t, PriorityRank(PriorityMedium), PriorityRank(PriorityLow))
	assert.Equal(t, 0, PriorityRank("bogus"))
}

func TestStatusRank_OrdersSeverity(t *testing.T) {
	require.Greater(t, StatusRank(StatusBlocked), StatusRank(StatusAtRisk))
	require.Greater(t, StatusRank(StatusAtRisk), StatusRank(StatusOnTrack))
	assert.Equal(t, 0, StatusRank("bogus"))
}

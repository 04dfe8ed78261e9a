package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagePairsCoverEveryGeniusOnce(t *testing.T) {
	seen := map[ColumnID]int{}
	for _, s := range Stages {
		seen[s.Geniuses[0]]++
		seen[s.Geniuses[1]]++
	}

	require.Len(t, seen, len(GeniusColumns))
	for _, col := range GeniusColumns {
		assert.Equal(t, 1, seen[col.ID], "column %s", col.ID)
	}
}

func TestColumnID_IsGenius(t *testing.T) {
	for _, col := range GeniusColumns {
		assert.True(t, col.ID.IsGenius())
	}
	assert.False(t, ColumnDraft.IsGenius())
	assert.False(t, ColumnArchive.IsGenius())
	assert.False(t, ColumnID("ideation").IsGenius())
}

func TestColumnID_IsBin(t *testing.T) {
	assert.True(t, ColumnDraft.IsBin())
	assert.True(t, ColumnArchive.IsBin())
	assert.False(t, ColumnWonder.IsBin())
}

func TestStageFor(t *testing.T) {
	s := StageFor(ColumnGalvanizing)
	require.NotNil(t, s)
	assert.Equal(t, StageActivation, s.ID)

	assert.Nil(t, StageFor(ColumnDraft))
	assert.Nil(t, StageFor(ColumnID("nope")))
}

func TestResolveDropColumn(t *testing.T) {
	// Stage drops land in the first genius of the pair.
	assert.Equal(t, ColumnWonder, ResolveDropColumn("ideation"))
	assert.Equal(t, ColumnDiscernment, ResolveDropColumn("activation"))
	assert.Equal(t, ColumnEnablement, ResolveDropColumn("implementation"))

	// Genius and bin targets resolve to themselves.
	assert.Equal(t, ColumnTenacity, ResolveDropColumn("tenacity"))
	assert.Equal(t, ColumnDraft, ResolveDropColumn("draft"))
}

func TestMasterData_BoardNamesExcludesSentinel(t *testing.T) {
	m := MasterData{Boards: []BoardTag{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: AllProjectsBoard},
		{ID: 3, Name: "Beta"},
	}}

	assert.Equal(t, []string{"Alpha", "Beta"}, m.BoardNames())
}

func TestMasterData_EmployeeByName(t *testing.T) {
	m := MasterData{Employees: []Employee{{ID: 4, Name: "Ann"}}}

	emp, ok := m.EmployeeByName("Ann")
	require.True(t, ok)
	assert.Equal(t, 4, emp.ID)

	_, ok = m.EmployeeByName("missing")
	assert.False(t, ok)
}

package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/genius-board/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.PutMasterData(ctx, &model.MasterData{
		Boards: []model.BoardTag{{ID: 1, Name: "Alpha"}},
	}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	data, err := s.GetMasterData(ctx)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "Alpha", data.Boards[0].Name)
}

func TestGetMasterData_EmptyCacheIsNotAnError(t *testing.T) {
	s := openTestStore(t)

	data, err := s.GetMasterData(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestPutMasterData_ReplacesPreviousCopy(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutMasterData(ctx, &model.MasterData{
		Boards: []model.BoardTag{{ID: 1, Name: "Old"}},
	}))
	require.NoError(t, s.PutMasterData(ctx, &model.MasterData{
		Boards: []model.BoardTag{{ID: 2, Name: "New"}},
	}))

	data, err := s.GetMasterData(ctx)
	require.NoError(t, err)
	require.Len(t, data.Boards, 1)
	assert.Equal(t, "New", data.Boards[0].Name)
}

func TestSnapshots_KeyedByBoard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	all := []model.Card{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}
	alpha := []model.Card{{ID: 1, Title: "One"}}
	require.NoError(t, s.PutSnapshot(ctx, model.AllProjectsBoard, all))
	require.NoError(t, s.PutSnapshot(ctx, "Alpha", alpha))

	got, err := s.GetSnapshot(ctx, "Alpha")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "One", got[0].Title)

	got, err = s.GetSnapshot(ctx, model.AllProjectsBoard)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPutSnapshot_KeepsOnlyNewestPerBoard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutSnapshot(ctx, "Alpha", []model.Card{{ID: 1}}))
	require.NoError(t, s.PutSnapshot(ctx, "Alpha", []model.Card{{ID: 2}, {ID: 3}}))

	got, err := s.GetSnapshot(ctx, "Alpha")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
}

func TestGetSnapshot_MissingBoardReturnsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetSnapshot(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

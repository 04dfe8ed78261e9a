package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/genius-board/internal/api"
	"github.com/nhle/genius-board/internal/cache"
	"github.com/nhle/genius-board/internal/model"
	"github.com/nhle/genius-board/internal/ui/command"
	"github.com/nhle/genius-board/internal/ui/detail"
)

func newTestModel(t *testing.T, handler http.Handler) Model {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	client := api.NewClient(srv.URL, "", time.Second)
	return New(client, store, &model.AppConfig{})
}

func writeEnvelope(w http.ResponseWriter, data interface{}) {
	raw, _ := json.Marshal(data)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    json.RawMessage(raw),
	})
}

func testMaster() *model.MasterData {
	return &model.MasterData{Boards: []model.BoardTag{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
	}}
}

func TestSelectBoard_MatchesMasterDataCaseInsensitively(t *testing.T) {
	m := newTestModel(t, http.NotFoundHandler())
	m.master = testMaster()

	next, _ := m.Update(command.CommandMsg("board beta"))
	m = next.(Model)

	assert.Equal(t, "Beta", m.engine.BoardFilter())
}

func TestSelectBoard_UnknownNameLeavesFilterAlone(t *testing.T) {
	m := newTestModel(t, http.NotFoundHandler())
	m.master = testMaster()

	next, _ := m.Update(command.CommandMsg("board gamma"))
	m = next.(Model)

	assert.Equal(t, model.AllProjectsBoard, m.engine.BoardFilter())
	assert.Contains(t, m.errMessage, "gamma")
}

func TestCycleBoardFilter_WalksMasterBoards(t *testing.T) {
	m := newTestModel(t, http.NotFoundHandler())
	m.master = testMaster()

	m.cycleBoardFilter()
	assert.Equal(t, "Alpha", m.engine.BoardFilter())
	m.cycleBoardFilter()
	assert.Equal(t, "Beta", m.engine.BoardFilter())
	m.cycleBoardFilter()
	assert.Equal(t, model.AllProjectsBoard, m.engine.BoardFilter())
}

func TestDuplicateFromEditor_CreatesNewProject(t *testing.T) {
	var gotMethod, gotPath string
	var gotID int
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path

		var sent model.Card
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		gotID = sent.ID

		sent.ID = 321
		writeEnvelope(w, sent)
	}))

	// The editor hands over a clone under a random placeholder id.
	dup := model.Card{ID: 555001, Title: "Original (Copy)", Column: model.ColumnWonder}
	next, cmd := m.Update(detail.DuplicateMsg{Card: dup})
	m = next.(Model)
	require.NotNil(t, cmd)

	// Rendered immediately under the placeholder id.
	_, ok := m.engine.CardByID(555001)
	assert.True(t, ok)

	msg := cmd()
	saved, isSaved := msg.(cardSavedMsg)
	require.True(t, isSaved)
	require.NoError(t, saved.err)

	// The backend sees a create, never an update against the placeholder.
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/projects", gotPath)
	assert.Equal(t, 0, gotID)

	// The placeholder rebinds to the backend id.
	assert.Equal(t, 555001, saved.oldID)
	assert.Equal(t, 321, saved.card.ID)
	next, _ = m.Update(saved)
	m = next.(Model)
	_, ok = m.engine.CardByID(555001)
	assert.False(t, ok)
	card, ok := m.engine.CardByID(321)
	require.True(t, ok)
	assert.Equal(t, "Original (Copy)", card.Title)
}

func TestDuplicateFromEditor_SaveFailureKeepsPlaceholder(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "backend down",
		})
	}))

	dup := model.Card{ID: 555002, Title: "Copy", Column: model.ColumnWonder}
	next, cmd := m.Update(detail.DuplicateMsg{Card: dup})
	m = next.(Model)
	require.NotNil(t, cmd)

	saved, isSaved := cmd().(cardSavedMsg)
	require.True(t, isSaved)
	require.Error(t, saved.err)
	assert.Equal(t, 555002, saved.oldID)
	assert.Equal(t, 555002, saved.card.ID)

	next, _ = m.Update(saved)
	m = next.(Model)
	_, ok := m.engine.CardByID(555002)
	assert.True(t, ok, "failed creates stay local for retry")
}

func TestExecuteCommand_TokenReturnsCommand(t *testing.T) {
	m := newTestModel(t, http.NotFoundHandler())

	_, cmd := m.Update(command.CommandMsg("token abc123"))
	assert.NotNil(t, cmd)
}

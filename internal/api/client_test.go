package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/genius-board/internal/model"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-token", time.Second), srv
}

func writeEnvelope(w http.ResponseWriter, data interface{}) {
	raw, _ := json.Marshal(data)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    json.RawMessage(raw),
	})
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, model.Card{ID: 1})
	})
	defer srv.Close()

	_, err := client.GetProject(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClient_BackendFailureSurfacesVerbatimMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "token expired, sign in again",
		})
	})
	defer srv.Close()

	_, err := client.GetProject(context.Background(), 1)
	require.Error(t, err)

	reqErr, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "token expired, sign in again", err.Error())
}

func TestClient_TransportErrorIsNotRequestError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", 100*time.Millisecond)

	_, err := client.GetProject(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, IsRequestError(err))
}

func TestListProjects_PaginatedShape(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects", r.URL.Path)
		json.NewEncoder(w).Encode(ProjectPage{
			Success: true,
			Page:    1,
			Limit:   50,
			Total:   2,
			Projects: []model.Card{
				{ID: 1, Title: "One", Column: model.ColumnWonder},
				{ID: 2, Title: "Two"},
			},
		})
	})
	defer srv.Close()

	cards, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "One", cards[0].Title)
	// A missing column falls back to the default.
	assert.Equal(t, model.DefaultColumn, cards[1].Column)
}

func TestListProjects_LegacyFlatArray(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Card{
			{ID: 3, Title: "Legacy", Column: model.ColumnGalvanizing},
		})
	})
	defer srv.Close()

	cards, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 3, cards[0].ID)
}

func TestListProjects_FailureEnvelope(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ProjectPage{
			Success: false,
			Message: "listing unavailable",
		})
	})
	defer srv.Close()

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, "listing unavailable", err.Error())
}

func TestCreateProject_StripsCommentsAndReturnsCanonical(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects", r.URL.Path)

		var sent model.Card
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Empty(t, sent.Comments)

		sent.ID = 77
		writeEnvelope(w, sent)
	})
	defer srv.Close()

	created, err := client.CreateProject(context.Background(), model.Card{
		Title:    "Fresh",
		Comments: []model.Comment{{ID: 1, Content: "stale"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 77, created.ID)
	assert.Equal(t, "Fresh", created.Title)
}

func TestCreateProject_KeepsLocalCardWhenBackendOmitsID(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, struct{}{})
	})
	defer srv.Close()

	created, err := client.CreateProject(context.Background(), model.Card{Title: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, "Fresh", created.Title)
}

func TestUpdateProject(t *testing.T) {
	var gotPath, gotMethod string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		var sent model.Card
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Empty(t, sent.Comments)
		writeEnvelope(w, nil)
	})
	defer srv.Close()

	err := client.UpdateProject(context.Background(), model.Card{
		ID:       12,
		Title:    "Edited",
		Comments: []model.Comment{{ID: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/projects/12", gotPath)
}

func TestUpdateProject_RejectsUnsavedCard(t *testing.T) {
	client := NewClient("http://unused", "", time.Second)

	err := client.UpdateProject(context.Background(), model.Card{Title: "No id"})
	assert.Error(t, err)
}

func TestDeleteSubtask_UsesTaskEndpoint(t *testing.T) {
	var gotPath, gotMethod string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		writeEnvelope(w, nil)
	})
	defer srv.Close()

	require.NoError(t, client.DeleteSubtask(context.Background(), 31))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/tasks/31", gotPath)
}

func TestAddComment_ReturnsServerCanonicalComment(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/project", r.URL.Path)

		var payload CommentPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		writeEnvelope(w, model.Comment{
			ID:        901,
			ProjectID: payload.ProjectID,
			Content:   payload.Content,
			UserName:  payload.UserName,
			CreatedAt: "2026-08-31T12:00:00Z",
		})
	})
	defer srv.Close()

	comment, err := client.AddComment(context.Background(), CommentPayload{
		ProjectID: 12,
		Content:   "ship it",
		UserName:  "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, 901, comment.ID)
	assert.Equal(t, "2026-08-31T12:00:00Z", comment.CreatedAt)
}

func TestGetComments(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/project/12", r.URL.Path)
		writeEnvelope(w, []model.Comment{{ID: 1}, {ID: 2}})
	})
	defer srv.Close()

	comments, err := client.GetComments(context.Background(), 12)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestGetMasterData(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/master/all", r.URL.Path)
		writeEnvelope(w, model.MasterData{
			Boards:   []model.BoardTag{{ID: 1, Name: "Alpha"}},
			Statuses: []model.ProjectStatus{{ID: 1, Name: "On Track"}},
		})
	})
	defer srv.Close()

	master, err := client.GetMasterData(context.Background())
	require.NoError(t, err)
	require.Len(t, master.Boards, 1)
	assert.Equal(t, "Alpha", master.Boards[0].Name)
}

func TestNormalizeCard_RepairsNilSlicesAndProgress(t *testing.T) {
	card := model.Card{Progress: 250}
	normalizeCard(&card)

	assert.Equal(t, model.DefaultColumn, card.Column)
	assert.Equal(t, 100, card.Progress)
	assert.NotNil(t, card.Boards)
	assert.NotNil(t, card.Owners)
	assert.NotNil(t, card.Subtasks)
}

package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/genius-board/internal/api"
	"github.com/nhle/genius-board/internal/credential"
	"github.com/nhle/genius-board/internal/model"
)

// cachedDataMsg carries data read from the local cache at startup.
type cachedDataMsg struct {
	master *model.MasterData
	cards  []model.Card
}

// cardSavedMsg reports the outcome of a create or update. oldID differs
// from card.ID when a create round-trip assigned the backend id.
type cardSavedMsg struct {
	oldID int
	card  model.Card
	err   error
}

// commentAddedMsg carries the backend's canonical new comment.
type commentAddedMsg struct {
	cardID  int
	comment *model.Comment
	err     error
}

// commentsLoadedMsg carries a card's full comment thread.
type commentsLoadedMsg struct {
	cardID   int
	comments []model.Comment
	err      error
}

// subtaskDeletedMsg reports the outcome of a subtask delete.
type subtaskDeletedMsg struct {
	cardID    int
	subtaskID int
	err       error
}

// cardDeletedMsg reports the outcome of a card delete.
type cardDeletedMsg struct {
	cardID int
	err    error
}

// tokenStoredMsg reports the outcome of a :token command.
type tokenStoredMsg struct {
	cleared bool
	err     error
}

// loadCached reads the last-known master data and board snapshot from
// the local cache for an instant first paint.
func (m Model) loadCached() tea.Cmd {
	store := m.cache
	boardFilter := m.engine.BoardFilter()
	return func() tea.Msg {
		ctx := context.Background()
		master, _ := store.GetMasterData(ctx)
		cards, _ := store.GetSnapshot(ctx, boardFilter)
		return cachedDataMsg{master: master, cards: cards}
	}
}

// persistCache writes freshly fetched data to the local cache.
func (m Model) persistCache(master *model.MasterData, cards []model.Card) tea.Cmd {
	store := m.cache
	boardFilter := m.engine.BoardFilter()
	return func() tea.Msg {
		ctx := context.Background()
		_ = store.PutMasterData(ctx, master)
		_ = store.PutSnapshot(ctx, boardFilter, cards)
		return nil
	}
}

// saveCard persists the card: POST for a card the backend has never
// seen, PUT otherwise. The create response carries the assigned id.
func (m Model) saveCard(card model.Card) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		if card.IsNew() {
			created, err := client.CreateProject(ctx, card)
			if err != nil {
				return cardSavedMsg{oldID: card.ID, card: card, err: err}
			}
			return cardSavedMsg{oldID: card.ID, card: *created}
		}
		if err := client.UpdateProject(ctx, card); err != nil {
			return cardSavedMsg{oldID: card.ID, card: card, err: err}
		}
		return cardSavedMsg{oldID: card.ID, card: card}
	}
}

// createCard POSTs a card the backend has never seen, regardless of its
// local placeholder id. The placeholder never reaches the wire; it is
// rebound to the backend id through the usual cardSavedMsg path.
func (m Model) createCard(card model.Card) tea.Cmd {
	client := m.client
	localID := card.ID
	return func() tea.Msg {
		ctx := context.Background()
		card.ID = 0
		created, err := client.CreateProject(ctx, card)
		if err != nil {
			card.ID = localID
			return cardSavedMsg{oldID: localID, card: card, err: err}
		}
		return cardSavedMsg{oldID: localID, card: *created}
	}
}

// persistCard saves a card already updated in the engine, e.g. after a
// drop or a bin move.
func (m Model) persistCard(cardID int) tea.Cmd {
	card, ok := m.engine.CardByID(cardID)
	if !ok {
		return nil
	}
	if card.IsNew() {
		// Placeholder cards persist via the editor's save path.
		return nil
	}
	return m.saveCard(card)
}

// addComment posts a comment and returns the backend's canonical copy.
func (m Model) addComment(cardID int, content string) tea.Cmd {
	client := m.client
	userName := m.config.User.Name
	return func() tea.Msg {
		ctx := context.Background()
		comment, err := client.AddComment(ctx, api.CommentPayload{
			ProjectID: cardID,
			Content:   content,
			UserName:  userName,
		})
		return commentAddedMsg{cardID: cardID, comment: comment, err: err}
	}
}

// loadComments fetches a card's comment thread.
func (m Model) loadComments(cardID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		comments, err := client.GetComments(ctx, cardID)
		return commentsLoadedMsg{cardID: cardID, comments: comments, err: err}
	}
}

// deleteSubtask deletes a persisted subtask through its own endpoint.
func (m Model) deleteSubtask(cardID, subtaskID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		err := client.DeleteSubtask(ctx, subtaskID)
		return subtaskDeletedMsg{cardID: cardID, subtaskID: subtaskID, err: err}
	}
}

// storeToken writes or clears the keyring token. The running client
// keeps the token it was built with; the change applies on next start.
func (m Model) storeToken(value string) tea.Cmd {
	return func() tea.Msg {
		if value == "" || value == "clear" {
			return tokenStoredMsg{cleared: true, err: credential.Delete(credential.APITokenKey)}
		}
		return tokenStoredMsg{err: credential.Set(credential.APITokenKey, value)}
	}
}

// deleteCard deletes a project from the backend.
func (m Model) deleteCard(cardID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		err := client.DeleteProject(ctx, cardID)
		return cardDeletedMsg{cardID: cardID, err: err}
	}
}

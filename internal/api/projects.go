package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nhle/genius-board/internal/model"
)

// ProjectPage is the paginated listing shape. The backend has shipped two
// listing contracts over time; the paginated one is canonical and the
// flat array is decoded for compatibility.
type ProjectPage struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Page     int          `json:"page,omitempty"`
	Limit    int          `json:"limit,omitempty"`
	Total    int          `json:"total,omitempty"`
	Projects []model.Card `json:"projects"`
}

// ListProjects retrieves every project as a card list. Both the paginated
// object shape and the legacy flat-array shape are accepted.
func (c *Client) ListProjects(ctx context.Context) ([]model.Card, error) {
	raw, err := c.doRaw(ctx, "GET", "/projects")
	if err != nil {
		return nil, err
	}

	// Legacy shape: a bare JSON array of projects.
	var flat []model.Card
	if err := json.Unmarshal(raw, &flat); err == nil {
		return normalizeCards(flat), nil
	}

	var page ProjectPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("unmarshaling project listing: %w", err)
	}
	if !page.Success {
		return nil, &RequestError{Message: page.Message}
	}

	return normalizeCards(page.Projects), nil
}

// GetProject retrieves a single project by id.
func (c *Client) GetProject(ctx context.Context, id int) (*model.Card, error) {
	var card model.Card
	if err := c.get(ctx, fmt.Sprintf("/projects/%d", id), &card); err != nil {
		return nil, err
	}
	normalizeCard(&card)
	return &card, nil
}

// CreateProject persists a new card and returns the backend's canonical
// copy, including the assigned id.
func (c *Client) CreateProject(ctx context.Context, card model.Card) (*model.Card, error) {
	// The comment thread is owned by the comment endpoints and never
	// travels on the card write path.
	card.Comments = nil

	var created model.Card
	if err := c.post(ctx, "/projects", card, &created); err != nil {
		return nil, err
	}
	if created.ID == 0 {
		created = card
	}
	normalizeCard(&created)
	return &created, nil
}

// UpdateProject overwrites a persisted card.
func (c *Client) UpdateProject(ctx context.Context, card model.Card) error {
	if card.ID == 0 {
		return fmt.Errorf("updating project: card has no id")
	}
	card.Comments = nil
	return c.put(ctx, fmt.Sprintf("/projects/%d", card.ID), card, nil)
}

// DeleteProject removes a project and all of its sub-resources.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/projects/%d", id))
}

// DeleteSubtask removes a single subtask via its dedicated endpoint.
func (c *Client) DeleteSubtask(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/tasks/%d", id))
}

// normalizeCards applies normalizeCard to every element in place.
func normalizeCards(cards []model.Card) []model.Card {
	for i := range cards {
		normalizeCard(&cards[i])
	}
	return cards
}

// normalizeCard repairs responses from older backend versions: cards with
// no column land in the default column, progress is clamped, and nil
// slices become empty so the UI never branches on nil.
func normalizeCard(card *model.Card) {
	if card.Column == "" {
		card.Column = model.DefaultColumn
	}
	card.SetProgress(card.Progress)
	if card.Boards == nil {
		card.Boards = []string{}
	}
	if card.Owners == nil {
		card.Owners = []string{}
	}
	if card.Subtasks == nil {
		card.Subtasks = []model.SubTask{}
	}
}

package api

import (
	"context"
	"fmt"

	"github.com/nhle/genius-board/internal/model"
)

// CommentPayload is the request body for adding a comment to a project.
type CommentPayload struct {
	ProjectID int    `json:"projectId"`
	Content   string `json:"content"`
	UserName  string `json:"userName,omitempty"`
}

// AddComment posts a comment and returns the backend's canonical comment
// object. Callers must append the returned object, never the payload,
// so server-assigned fields (id, createdAt) are preserved.
func (c *Client) AddComment(ctx context.Context, payload CommentPayload) (*model.Comment, error) {
	var comment model.Comment
	if err := c.post(ctx, "/comments/project", payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComments retrieves the full comment thread for a project.
func (c *Client) GetComments(ctx context.Context, projectID int) ([]model.Comment, error) {
	var comments []model.Comment
	path := fmt.Sprintf("/comments/project/%d", projectID)
	if err := c.get(ctx, path, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

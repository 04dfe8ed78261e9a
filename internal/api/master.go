package api

import (
	"context"

	"github.com/nhle/genius-board/internal/model"
)

// GetMasterData retrieves every reference collection in one call.
func (c *Client) GetMasterData(ctx context.Context) (*model.MasterData, error) {
	var data model.MasterData
	if err := c.get(ctx, "/master/all", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

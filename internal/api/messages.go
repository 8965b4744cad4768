package api

import (
	"context"
	"fmt"

	"github.com/bolt162/buzzlink-app/internal/model"
)

func (c *Client) DeleteMessage(ctx context.Context, messageID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/messages/%d", messageID))
}

// ToggleReaction flips the caller's reaction on a message and returns the new
// total, which the view applies as-is.
func (c *Client) ToggleReaction(ctx context.Context, messageID int64) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.post(ctx, fmt.Sprintf("/api/messages/%d/reactions", messageID), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// GetThreadReplies returns the ordered replies for a parent message.
func (c *Client) GetThreadReplies(ctx context.Context, messageID int64) ([]model.Message, error) {
	var replies []model.Message
	if err := c.get(ctx, fmt.Sprintf("/api/messages/%d/replies", messageID), nil, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bolt162/buzzlink-app/internal/model"
)

const defaultHistoryLimit = 50

func (c *Client) GetChannels(ctx context.Context, workspaceID int64) ([]model.Channel, error) {
	query := url.Values{}
	if workspaceID != 0 {
		query.Set("workspaceId", strconv.FormatInt(workspaceID, 10))
	}

	var channels []model.Channel
	if err := c.get(ctx, "/api/channels", query, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (c *Client) GetChannel(ctx context.Context, channelID int64) (model.Channel, error) {
	var ch model.Channel
	err := c.get(ctx, fmt.Sprintf("/api/channels/%d", channelID), nil, &ch)
	return ch, err
}

func (c *Client) CreateChannel(ctx context.Context, name, description string, workspaceID int64) (model.Channel, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"workspaceId": workspaceID,
	}

	var ch model.Channel
	err := c.post(ctx, "/api/channels", body, &ch)
	return ch, err
}

// GetMessages fetches channel history, most recent first. Callers reverse it
// into chronological order.
func (c *Client) GetMessages(ctx context.Context, channelID int64, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	var msgs []model.Message
	if err := c.get(ctx, fmt.Sprintf("/api/channels/%d/messages", channelID), query, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

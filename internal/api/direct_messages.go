package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bolt162/buzzlink-app/internal/model"
)

func (c *Client) GetConversations(ctx context.Context) ([]model.Conversation, error) {
	var convs []model.Conversation
	if err := c.get(ctx, "/api/direct-messages/conversations", c.withClerkID(), &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// GetConversation fetches the DM history with another user, most recent
// first. Callers reverse it into chronological order.
func (c *Client) GetConversation(ctx context.Context, otherUserID int64, limit int) ([]model.DirectMessage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := c.withClerkID()
	query.Set("limit", strconv.Itoa(limit))

	var msgs []model.DirectMessage
	err := c.get(ctx, fmt.Sprintf("/api/direct-messages/conversation/%d", otherUserID), query, &msgs)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendDirectMessage is the REST path the backend also exposes; the live path
// goes over the socket.
func (c *Client) SendDirectMessage(ctx context.Context, recipientID int64, content, msgType string) (model.DirectMessage, error) {
	body := map[string]any{
		"senderClerkId": c.clerkID,
		"recipientId":   recipientID,
		"content":       content,
		"type":          msgType,
	}

	var dm model.DirectMessage
	err := c.post(ctx, "/api/direct-messages", body, &dm)
	return dm, err
}

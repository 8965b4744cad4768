package api

import (
	"context"
	"fmt"

	"github.com/bolt162/buzzlink-app/internal/model"
)

func (c *Client) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	if err := c.get(ctx, "/api/notifications", c.withClerkID(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUnreadNotifications(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	if err := c.get(ctx, "/api/notifications/unread", c.withClerkID(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUnreadNotificationCount(ctx context.Context) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	if err := c.get(ctx, "/api/notifications/unread/count", c.withClerkID(), &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	return c.put(ctx, fmt.Sprintf("/api/notifications/%d/read", notificationID), c.withClerkID(), nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.put(ctx, "/api/notifications/read-all", c.withClerkID(), nil, nil)
}

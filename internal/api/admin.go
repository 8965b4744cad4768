package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bolt162/buzzlink-app/internal/model"
)

func (c *Client) GetAllUsers(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	if err := c.get(ctx, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetSystemStats(ctx context.Context) (model.SystemStats, error) {
	var stats model.SystemStats
	err := c.get(ctx, "/api/admin/stats", nil, &stats)
	return stats, err
}

func (c *Client) BanUser(ctx context.Context, userID int64) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/users/%d/ban", userID), nil, nil)
}

func (c *Client) UnbanUser(ctx context.Context, userID int64) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/users/%d/unban", userID), nil, nil)
}

func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/users/%d", userID))
}

func (c *Client) ToggleAdminStatus(ctx context.Context, userID int64) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/users/%d/toggle-admin", userID), nil, nil)
}

// LogPage is a slice of server logs at or above the requested level.
type LogPage struct {
	Logs  []model.LogEntry `json:"logs"`
	Count int              `json:"count"`
	Level string           `json:"level"`
}

func (c *Client) GetLogs(ctx context.Context, limit int, level string) (LogPage, error) {
	if limit <= 0 {
		limit = 100
	}
	if level == "" {
		level = "INFO"
	}
	query := url.Values{
		"limit": []string{strconv.Itoa(limit)},
		"level": []string{level},
	}

	var page LogPage
	err := c.get(ctx, "/api/admin/logs", query, &page)
	return page, err
}

package api

import (
	"context"
	"net/url"

	"github.com/bolt162/buzzlink-app/internal/model"
)

// SyncUser registers or refreshes the identity-provider profile with the
// backend and returns the synced record carrying the internal numeric id.
func (c *Client) SyncUser(ctx context.Context, displayName, email, avatarURL string) (model.User, error) {
	body := map[string]any{
		"clerkId":     c.clerkID,
		"displayName": displayName,
		"email":       email,
	}
	if avatarURL != "" {
		body["avatarUrl"] = avatarURL
	}

	var u model.User
	err := c.post(ctx, "/api/users/sync", body, &u)
	return u, err
}

func (c *Client) GetCurrentUser(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.get(ctx, "/api/users/me", nil, &u)
	return u, err
}

func (c *Client) UpdateProfile(ctx context.Context, displayName, avatarURL string) (model.User, error) {
	body := map[string]any{
		"displayName": displayName,
		"avatarUrl":   avatarURL,
	}

	var u model.User
	err := c.put(ctx, "/api/users/me", nil, body, &u)
	return u, err
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]model.User, error) {
	var users []model.User
	err := c.get(ctx, "/api/users/search", url.Values{"query": []string{query}}, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

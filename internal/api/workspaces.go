package api

import (
	"context"
	"fmt"

	"github.com/bolt162/buzzlink-app/internal/model"
)

func (c *Client) GetWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	var ws []model.Workspace
	if err := c.get(ctx, "/api/workspaces", c.withClerkID(), &ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (c *Client) GetWorkspaceBySlug(ctx context.Context, slug string) (model.Workspace, error) {
	var w model.Workspace
	err := c.get(ctx, "/api/workspaces/"+slug, c.withClerkID(), &w)
	return w, err
}

func (c *Client) CreateWorkspace(ctx context.Context, name, slug, description string) (model.Workspace, error) {
	body := map[string]any{
		"name":           name,
		"slug":           slug,
		"description":    description,
		"creatorClerkId": c.clerkID,
	}

	var w model.Workspace
	err := c.post(ctx, "/api/workspaces", body, &w)
	return w, err
}

func (c *Client) GetWorkspaceMembers(ctx context.Context, workspaceID int64) ([]model.User, error) {
	var members []model.User
	err := c.get(ctx, fmt.Sprintf("/api/workspaces/%d/members", workspaceID), c.withClerkID(), &members)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) AddWorkspaceMember(ctx context.Context, workspaceID int64, clerkID, role string) error {
	if role == "" {
		role = model.RoleMember
	}
	body := map[string]any{
		"clerkId": clerkID,
		"role":    role,
	}
	return c.post(ctx, fmt.Sprintf("/api/workspaces/%d/members", workspaceID), body, nil)
}

// InvitationResult is the backend's acknowledgement for a sent invitation.
type InvitationResult struct {
	Message      string `json:"message"`
	InvitationID int64  `json:"invitationId"`
	Status       string `json:"status"`
}

func (c *Client) SendWorkspaceInvitation(ctx context.Context, workspaceID int64, email, role string) (InvitationResult, error) {
	if role == "" {
		role = model.RoleMember
	}
	body := map[string]any{
		"workspaceId":    workspaceID,
		"email":          email,
		"inviterClerkId": c.clerkID,
		"role":           role,
	}

	var res InvitationResult
	err := c.post(ctx, "/api/invitations", body, &res)
	return res, err
}

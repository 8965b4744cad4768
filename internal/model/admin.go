package model

import "time"

// AdminUser is the platform-admin listing shape.
type AdminUser struct {
	ID           int64     `json:"id"`
	ClerkID      string    `json:"clerkId"`
	DisplayName  string    `json:"displayName"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	IsBanned     bool      `json:"isBanned"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int64     `json:"messageCount"`
}

type SystemStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalWorkspaces     int64 `json:"totalWorkspaces"`
	TotalChannels       int64 `json:"totalChannels"`
	TotalMessages       int64 `json:"totalMessages"`
	TotalDirectMessages int64 `json:"totalDirectMessages"`
	BannedUsers         int64 `json:"bannedUsers"`
	AdminUsers          int64 `json:"adminUsers"`
}

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

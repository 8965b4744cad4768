package model

import "time"

// Notification type tags as the backend names them.
const (
	NotificationChannelMessage  = "CHANNEL_MESSAGE"
	NotificationDirectMessage   = "DIRECT_MESSAGE"
	NotificationThreadReply     = "THREAD_REPLY"
	NotificationReaction        = "REACTION"
	NotificationMention         = "MENTION"
	NotificationWorkspaceInvite = "WORKSPACE_INVITE"
)

// NotificationActor is the trimmed user shape the backend embeds in
// notifications.
type NotificationActor struct {
	ID          int64  `json:"id"`
	ClerkID     string `json:"clerkId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// Notification is created server-side and pushed on the owning user's
// personal queue. Clients only ever mark it read; nothing deletes it.
type Notification struct {
	ID              int64              `json:"id"`
	Type            string             `json:"type"`
	Message         string             `json:"message"`
	Actor           *NotificationActor `json:"actor"`
	ChannelID       *int64             `json:"channelId,omitempty"`
	MessageID       *int64             `json:"messageId,omitempty"`
	DirectMessageID *int64             `json:"directMessageId,omitempty"`
	WorkspaceID     *int64             `json:"workspaceId,omitempty"`
	IsRead          bool               `json:"isRead"`
	CreatedAt       time.Time          `json:"createdAt"`
}

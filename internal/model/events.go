package model

// TypingEvent is broadcast on a channel's typing topic and, with a zero
// ChannelID, on a user's personal DM typing topic. Ephemeral: it only feeds
// the live typing set, nothing stores it.
type TypingEvent struct {
	ChannelID   int64  `json:"channelId"`
	ClerkID     string `json:"clerkId"`
	DisplayName string `json:"displayName"`
	IsTyping    bool   `json:"isTyping"`
}

// DMTypingEvent is broadcast on the recipient's personal typing topic. The
// backend echoes the sender's request shape.
type DMTypingEvent struct {
	SenderClerkID    string `json:"senderClerkId"`
	RecipientClerkID string `json:"recipientClerkId"`
	DisplayName      string `json:"displayName"`
	IsTyping         bool   `json:"isTyping"`
}

// PresenceEvent carries the full current presence for a channel. Each event
// replaces the previous state outright, it is never merged.
type PresenceEvent struct {
	ChannelID   int64    `json:"channelId"`
	OnlineUsers []string `json:"onlineUsers"`
	OnlineCount int      `json:"onlineCount"`
}

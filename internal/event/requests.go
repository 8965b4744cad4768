package event

// Outbound payloads, field-for-field what the backend's message handlers
// expect.

type JoinChannelRequest struct {
	ChannelID int64  `json:"channelId"`
	ClerkID   string `json:"clerkId"`
}

type LeaveChannelRequest struct {
	ChannelID int64  `json:"channelId"`
	ClerkID   string `json:"clerkId"`
}

type SendMessageRequest struct {
	ChannelID       int64  `json:"channelId"`
	ClerkID         string `json:"clerkId"`
	Content         string `json:"content"`
	Type            string `json:"type"`
	ParentMessageID *int64 `json:"parentMessageId"`
}

type ChannelTypingRequest struct {
	ChannelID   int64  `json:"channelId"`
	ClerkID     string `json:"clerkId"`
	DisplayName string `json:"displayName"`
	IsTyping    bool   `json:"isTyping"`
}

type SendDirectMessageRequest struct {
	SenderClerkID string `json:"senderClerkId"`
	RecipientID   int64  `json:"recipientId"`
	Content       string `json:"content"`
	Type          string `json:"type"`
}

type DMTypingRequest struct {
	SenderClerkID    string `json:"senderClerkId"`
	RecipientClerkID string `json:"recipientClerkId"`
	DisplayName      string `json:"displayName"`
	IsTyping         bool   `json:"isTyping"`
}

package model

// Conversation is keyed by the other participant, not by a server-assigned
// id. A conversation may come from fetched history or from selecting a
// workspace member with no prior messages; both forms with the same other
// user are the same conversation.
type Conversation struct {
	OtherUser   User           `json:"otherUser"`
	LastMessage *DirectMessage `json:"lastMessage"`
	UnreadCount int            `json:"unreadCount"`
}

// NewConversationWith builds the empty conversation used when a workspace
// member without history is selected.
func NewConversationWith(other User) Conversation {
	return Conversation{OtherUser: other}
}

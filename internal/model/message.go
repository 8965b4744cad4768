package model

import "time"

const (
	MessageTypeText = "TEXT"
	MessageTypeFile = "FILE"
)

// Message is a channel-scoped message. A non-nil ParentMessageID marks a
// thread reply; replies are never shown in the top-level channel list, only
// inside their parent's thread. ReplyCount is meaningful on top-level
// messages only and, from the client's point of view, only ever grows.
type Message struct {
	ID              int64     `json:"id"`
	ChannelID       int64     `json:"channelId"`
	Sender          User      `json:"sender"`
	Content         string    `json:"content"`
	Type            string    `json:"type"`
	CreatedAt       time.Time `json:"createdAt"`
	ReactionCount   int       `json:"reactionCount"`
	ParentMessageID *int64    `json:"parentMessageId,omitempty"`
	ReplyCount      int       `json:"replyCount"`
}

// IsReply reports whether the message belongs to a thread.
func (m Message) IsReply() bool {
	return m.ParentMessageID != nil
}

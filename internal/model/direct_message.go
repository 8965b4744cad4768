package model

import "time"

// DirectMessage is a one-to-one message. Unlike channel messages it has no
// reactions and no threading; the backend delivers it on both participants'
// personal topics.
type DirectMessage struct {
	ID        int64     `json:"id"`
	Sender    User      `json:"sender"`
	Recipient User      `json:"recipient"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Involves reports whether the given backend user id is either side of the
// message.
func (d DirectMessage) Involves(userID int64) bool {
	return d.Sender.ID == userID || d.Recipient.ID == userID
}

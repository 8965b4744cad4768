// Package view holds the per-view reconcilers: each active view (an open
// channel, thread, or direct-message conversation) merges REST-fetched
// history with push-delivered events into one chronological, de-duplicated
// collection. Collections are exclusively owned by one view instance and are
// discarded on deactivation; nothing leaks across view switches.
package view

import (
	"context"

	"github.com/bolt162/buzzlink-app/internal/model"
)

// State is the view lifecycle: Inactive -> Loading -> Live -> Inactive.
// There is no error state; a failed history fetch still lands in Live with an
// empty history so live events keep flowing.
type State int

const (
	StateInactive State = iota
	StateLoading
	StateLive
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLive:
		return "live"
	default:
		return "inactive"
	}
}

// ChannelHistory is the REST slice a channel view needs.
type ChannelHistory interface {
	GetMessages(ctx context.Context, channelID int64, limit int) ([]model.Message, error)
	GetThreadReplies(ctx context.Context, messageID int64) ([]model.Message, error)
}

// ConversationHistory is the REST slice a conversation view needs.
type ConversationHistory interface {
	GetConversation(ctx context.Context, otherUserID int64, limit int) ([]model.DirectMessage, error)
}

// NotificationStore is the REST slice the notification feed needs.
type NotificationStore interface {
	GetUnreadNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID int64) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// reverse flips a backend most-recent-first page into chronological order.
func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

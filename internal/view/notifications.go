package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/model"
)

// NotificationFeed holds the user's notification list and unread badge.
// Pushed notifications are prepended (newest first, deduplicated by id); the
// count queue fully replaces the badge value. Notifications are only ever
// marked read, never deleted.
type NotificationFeed struct {
	store  NotificationStore
	logger *zap.Logger

	mu     sync.Mutex
	items  []model.Notification
	seen   map[int64]struct{}
	unread int64
}

func NewNotificationFeed(store NotificationStore, logger *zap.Logger) *NotificationFeed {
	return &NotificationFeed{
		store:  store,
		logger: logger,
		seen:   make(map[int64]struct{}),
	}
}

// Load seeds the feed with the unread notifications from the backend.
func (f *NotificationFeed) Load(ctx context.Context) error {
	items, err := f.store.GetUnreadNotifications(ctx)
	if err != nil {
		f.logger.Warn("notification fetch failed", zap.Error(err))
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = items
	f.seen = make(map[int64]struct{}, len(items))
	for _, n := range items {
		f.seen[n.ID] = struct{}{}
	}
	f.unread = int64(len(items))
	return nil
}

// Apply prepends one pushed notification.
func (f *NotificationFeed) Apply(n model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, dup := f.seen[n.ID]; dup {
		return
	}
	f.seen[n.ID] = struct{}{}
	f.items = append([]model.Notification{n}, f.items...)
	if !n.IsRead {
		f.unread++
	}
}

// ApplyCount replaces the unread badge with the server's authoritative value.
func (f *NotificationFeed) ApplyCount(count int64) {
	f.mu.Lock()
	f.unread = count
	f.mu.Unlock()
}

// MarkRead marks one notification read on the backend, then locally. The
// local state is untouched when the call fails so the caller can retry.
func (f *NotificationFeed) MarkRead(ctx context.Context, notificationID int64) error {
	if err := f.store.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		if f.items[i].ID == notificationID && !f.items[i].IsRead {
			f.items[i].IsRead = true
			if f.unread > 0 {
				f.unread--
			}
			break
		}
	}
	return nil
}

func (f *NotificationFeed) MarkAllRead(ctx context.Context) error {
	if err := f.store.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		f.items[i].IsRead = true
	}
	f.unread = 0
	return nil
}

func (f *NotificationFeed) Items() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Notification, len(f.items))
	copy(out, f.items)
	return out
}

func (f *NotificationFeed) UnreadCount() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// Package session owns one user's live chat session: the single shared
// connection, the personal topic subscriptions, and the currently active
// view. Views never touch the connection lifecycle; only the session may tear
// it down.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/api"
	"github.com/bolt162/buzzlink-app/internal/model"
	"github.com/bolt162/buzzlink-app/internal/view"
	"github.com/bolt162/buzzlink-app/internal/ws"
)

type Session struct {
	self   model.User
	api    *api.Client
	conn   *ws.Conn
	client *ws.Client
	logger *zap.Logger

	notifications *view.NotificationFeed

	mu           sync.Mutex
	channel      *view.ChannelView
	conversation *view.ConversationView
}

func New(self model.User, apiClient *api.Client, conn *ws.Conn, logger *zap.Logger) *Session {
	client := ws.NewClient(conn, self.ClerkID, logger)
	conn.OnFrame(client.Registry().Dispatch)

	s := &Session{
		self:          self,
		api:           apiClient,
		conn:          conn,
		client:        client,
		logger:        logger,
		notifications: view.NewNotificationFeed(apiClient, logger),
	}

	conn.OnConnect(s.onConnect)
	return s
}

// onConnect runs on every successful dial, reconnects included. The transport
// forgets topic delivery across reconnects, so the registry's live set is
// replayed first; the user-topic subscribe after it then only swaps handlers.
func (s *Session) onConnect() {
	s.client.Registry().Resubscribe()
	s.subscribeUserTopics()
}

// Start dials the backend and seeds the notification feed. The connection
// retries on its own until Close.
func (s *Session) Start(ctx context.Context) {
	s.conn.Start()
	if err := s.notifications.Load(ctx); err != nil {
		s.logger.Warn("starting with empty notification feed", zap.Error(err))
	}
}

func (s *Session) subscribeUserTopics() {
	s.client.SubscribeToUserTopics(ws.UserHandlers{
		OnDirectMessage:     s.routeDirectMessage,
		OnDMTyping:          s.routeDMTyping,
		OnNotification:      s.notifications.Apply,
		OnNotificationCount: s.notifications.ApplyCount,
	})
}

// routeDirectMessage hands a pushed DM to the active conversation, which
// filters by its other party. With no conversation open the DM only surfaces
// through the notification flow.
func (s *Session) routeDirectMessage(dm model.DirectMessage) {
	s.mu.Lock()
	conv := s.conversation
	s.mu.Unlock()

	if conv != nil {
		conv.ApplyDirectMessage(dm)
	}
}

func (s *Session) routeDMTyping(ev model.DMTypingEvent) {
	s.mu.Lock()
	conv := s.conversation
	s.mu.Unlock()

	if conv != nil {
		conv.ApplyTyping(model.TypingEvent{
			ClerkID:     ev.SenderClerkID,
			DisplayName: ev.DisplayName,
			IsTyping:    ev.IsTyping,
		})
	}
}

// OpenChannel deactivates whatever view is current, then activates the
// channel: topic subscription and history fetch run concurrently. The
// previous view is fully torn down before the new one exists, so its stale
// events cannot land anywhere.
func (s *Session) OpenChannel(ctx context.Context, channel model.Channel) *view.ChannelView {
	s.mu.Lock()
	s.deactivateLocked()
	v := view.NewChannelView(channel.ID, s.self, s.api, s.logger)
	s.channel = v
	s.mu.Unlock()

	v.Activate()
	s.client.SubscribeToChannel(channel.ID, ws.ChannelHandlers{
		OnMessage:  v.ApplyMessage,
		OnTyping:   v.ApplyTyping,
		OnPresence: v.ApplyPresence,
	})
	go v.Load(ctx)
	return v
}

// OpenConversation switches to a direct-message conversation. The personal DM
// topics stay subscribed for the whole session; only the view changes.
func (s *Session) OpenConversation(ctx context.Context, other model.User) *view.ConversationView {
	s.mu.Lock()
	s.deactivateLocked()
	v := view.NewConversationView(s.self, other, s.api, s.logger)
	s.conversation = v
	s.mu.Unlock()

	v.Activate()
	go v.Load(ctx)
	return v
}

// OpenThread opens a thread inside the active channel view.
func (s *Session) OpenThread(ctx context.Context, parent model.Message) *view.ThreadView {
	s.mu.Lock()
	ch := s.channel
	s.mu.Unlock()

	if ch == nil {
		return nil
	}
	t := ch.OpenThread(parent)
	go t.Load(ctx)
	return t
}

// CloseView deactivates the current view without ending the session.
func (s *Session) CloseView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deactivateLocked()
}

func (s *Session) deactivateLocked() {
	if s.channel != nil {
		s.client.LeaveChannel(s.channel.ChannelID())
		s.channel.Deactivate()
		s.channel = nil
	}
	if s.conversation != nil {
		s.conversation.Deactivate()
		s.conversation = nil
	}
}

// DeleteMessage removes a message via REST and, on success, from the active
// channel view. Failures propagate with the server's message; local state is
// untouched.
func (s *Session) DeleteMessage(ctx context.Context, messageID int64) error {
	if err := s.api.DeleteMessage(ctx, messageID); err != nil {
		return err
	}

	s.mu.Lock()
	ch := s.channel
	s.mu.Unlock()
	if ch != nil {
		ch.RemoveMessage(messageID)
	}
	return nil
}

// ToggleReaction flips the viewer's reaction and applies the server's new
// total to the active channel view.
func (s *Session) ToggleReaction(ctx context.Context, messageID int64) error {
	count, err := s.api.ToggleReaction(ctx, messageID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	ch := s.channel
	s.mu.Unlock()
	if ch != nil {
		ch.SetReactionCount(messageID, count)
	}
	return nil
}

func (s *Session) Self() model.User { return s.self }

func (s *Session) Connected() bool { return s.conn.Connected() }

func (s *Session) Client() *ws.Client { return s.client }

func (s *Session) API() *api.Client { return s.api }

func (s *Session) Notifications() *view.NotificationFeed { return s.notifications }

func (s *Session) ActiveChannel() *view.ChannelView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channel
}

func (s *Session) ActiveConversation() *view.ConversationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation
}

// Close ends the session: active view first, then the shared connection.
func (s *Session) Close() {
	s.CloseView()
	s.conn.Close()
}

package ws

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bolt162/buzzlink-app/internal/event"
)

// typing events fire per keystroke upstream; cap what actually hits the wire
const typingSendInterval = time.Second

// Client is the operation surface over the shared connection: channel
// subscriptions, user-topic subscriptions, and the outbound chat actions.
// Every operation degrades to a logged no-op while disconnected, because view
// activation legitimately races connection establishment.
type Client struct {
	tr      Transport
	reg     *Registry
	router  *Router
	clerkID string
	logger  *zap.Logger

	mu           sync.Mutex
	typingLimits map[string]*rate.Limiter
}

func NewClient(tr Transport, clerkID string, logger *zap.Logger) *Client {
	return &Client{
		tr:           tr,
		reg:          NewRegistry(tr, logger),
		router:       NewRouter(logger),
		clerkID:      clerkID,
		logger:       logger,
		typingLimits: make(map[string]*rate.Limiter),
	}
}

// Registry exposes the dispatch entrypoint so the connection's frame callback
// can be wired to it.
func (c *Client) Registry() *Registry {
	return c.reg
}

// SubscribeToChannel subscribes the message, typing, and presence topics for
// the channel and announces the join for presence accounting. Safe to call
// again for the same channel; handlers are swapped, delivery stays single.
func (c *Client) SubscribeToChannel(channelID int64, h ChannelHandlers) {
	if !c.tr.Connected() {
		c.logger.Warn("subscribe skipped: not connected", zap.Int64("channel", channelID))
		return
	}

	c.reg.Subscribe(event.ChannelTopic(channelID), decode(c.router, event.ChannelTopic(channelID), h.OnMessage))
	c.reg.Subscribe(event.ChannelTypingTopic(channelID), decode(c.router, event.ChannelTypingTopic(channelID), h.OnTyping))
	c.reg.Subscribe(event.ChannelPresenceTopic(channelID), decode(c.router, event.ChannelPresenceTopic(channelID), h.OnPresence))

	c.tr.Publish(event.DestChatJoin, event.JoinChannelRequest{
		ChannelID: channelID,
		ClerkID:   c.clerkID,
	})
}

// LeaveChannel tells the backend the user left (so presence counts drop) and
// tears down the local channel subscriptions.
func (c *Client) LeaveChannel(channelID int64) {
	c.tr.Publish(event.DestChatLeave, event.LeaveChannelRequest{
		ChannelID: channelID,
		ClerkID:   c.clerkID,
	})

	c.reg.Unsubscribe(event.ChannelTopic(channelID))
	c.reg.Unsubscribe(event.ChannelTypingTopic(channelID))
	c.reg.Unsubscribe(event.ChannelPresenceTopic(channelID))
}

// SubscribeToUserTopics subscribes the personal DM inbox, DM typing topic,
// and both notification queues.
func (c *Client) SubscribeToUserTopics(h UserHandlers) {
	if !c.tr.Connected() {
		c.logger.Warn("user topic subscribe skipped: not connected")
		return
	}

	dmTopic := event.DMTopic(c.clerkID)
	dmTyping := event.DMTypingTopic(c.clerkID)

	c.reg.Subscribe(dmTopic, decode(c.router, dmTopic, h.OnDirectMessage))
	c.reg.Subscribe(dmTyping, decode(c.router, dmTyping, h.OnDMTyping))
	c.reg.Subscribe(event.NotificationsQueue, decode(c.router, event.NotificationsQueue, h.OnNotification))
	c.reg.Subscribe(event.NotificationCountQueue, decode(c.router, event.NotificationCountQueue, h.OnNotificationCount))
}

// SendMessage publishes a channel message; a non-nil parentMessageID makes it
// a thread reply. Messages are only ever sent over the socket, never REST.
func (c *Client) SendMessage(channelID int64, content, msgType string, parentMessageID *int64) {
	c.tr.Publish(event.DestChatSendMessage, event.SendMessageRequest{
		ChannelID:       channelID,
		ClerkID:         c.clerkID,
		Content:         content,
		Type:            msgType,
		ParentMessageID: parentMessageID,
	})
}

// SendTyping publishes a channel typing indicator. Start events are throttled
// per channel; stop events always go out so peers clear promptly.
func (c *Client) SendTyping(channelID int64, displayName string, isTyping bool) {
	if isTyping && !c.allowTyping(fmt.Sprintf("channel.%d", channelID)) {
		return
	}

	c.tr.Publish(event.DestChatTyping, event.ChannelTypingRequest{
		ChannelID:   channelID,
		ClerkID:     c.clerkID,
		DisplayName: displayName,
		IsTyping:    isTyping,
	})
}

// SendDirectMessage publishes a DM; the backend echoes it back on both
// participants' personal topics.
func (c *Client) SendDirectMessage(recipientID int64, content, msgType string) {
	c.tr.Publish(event.DestDMSend, event.SendDirectMessageRequest{
		SenderClerkID: c.clerkID,
		RecipientID:   recipientID,
		Content:       content,
		Type:          msgType,
	})
}

// SendDMTyping publishes a typing indicator to the recipient's personal
// typing topic.
func (c *Client) SendDMTyping(recipientClerkID, displayName string, isTyping bool) {
	if isTyping && !c.allowTyping("dm."+recipientClerkID) {
		return
	}

	c.tr.Publish(event.DestDMTyping, event.DMTypingRequest{
		SenderClerkID:    c.clerkID,
		RecipientClerkID: recipientClerkID,
		DisplayName:      displayName,
		IsTyping:         isTyping,
	})
}

func (c *Client) allowTyping(scope string) bool {
	c.mu.Lock()
	lim, ok := c.typingLimits[scope]
	if !ok {
		lim = rate.NewLimiter(rate.Every(typingSendInterval), 1)
		c.typingLimits[scope] = lim
	}
	c.mu.Unlock()
	return lim.Allow()
}

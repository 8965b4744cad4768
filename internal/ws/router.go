package ws

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/model"
)

// ChannelHandlers receive the three channel-scoped event streams.
type ChannelHandlers struct {
	OnMessage  func(model.Message)
	OnTyping   func(model.TypingEvent)
	OnPresence func(model.PresenceEvent)
}

// UserHandlers receive the per-user streams: DM inbox, DM typing, and the
// two notification queues.
type UserHandlers struct {
	OnDirectMessage     func(model.DirectMessage)
	OnDMTyping          func(model.DMTypingEvent)
	OnNotification      func(model.Notification)
	OnNotificationCount func(count int64)
}

// Router turns raw topic bodies into typed payloads. It performs no business
// logic; a body that does not decode is logged and dropped without touching
// the handler or the subscription.
type Router struct {
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{logger: logger}
}

func decode[T any](r *Router, topic string, fn func(T)) Handler {
	return func(body json.RawMessage) {
		if fn == nil {
			return
		}
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			r.logger.Warn("malformed payload dropped",
				zap.String("topic", topic), zap.Error(err))
			return
		}
		fn(v)
	}
}

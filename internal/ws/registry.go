package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/event"
)

// Handler consumes the raw body of a frame delivered on a subscribed topic.
type Handler func(body json.RawMessage)

type subscription struct {
	id      string
	handler Handler
}

// Registry maps topics to at most one active subscription each over the
// shared connection. A second subscribe to a live topic swaps the handler in
// place instead of adding a delivery path, so events never reach handlers
// twice. After Unsubscribe, frames that were already in flight for the topic
// find no entry and are dropped at dispatch; a stale handler can never fire
// into a superseded view.
type Registry struct {
	tr     Transport
	logger *zap.Logger

	mu   sync.RWMutex
	subs map[string]*subscription
}

func NewRegistry(tr Transport, logger *zap.Logger) *Registry {
	return &Registry{
		tr:     tr,
		logger: logger,
		subs:   make(map[string]*subscription),
	}
}

func (r *Registry) Subscribe(topic string, h Handler) {
	r.mu.Lock()
	if s, ok := r.subs[topic]; ok {
		s.handler = h
		r.mu.Unlock()
		r.logger.Debug("already subscribed, handler replaced", zap.String("topic", topic))
		return
	}
	s := &subscription{id: uuid.NewString(), handler: h}
	r.subs[topic] = s
	r.mu.Unlock()

	r.tr.Subscribe(topic)
	r.logger.Debug("subscribed", zap.String("topic", topic), zap.String("subscription", s.id))
}

func (r *Registry) Unsubscribe(topic string) {
	r.mu.Lock()
	s, ok := r.subs[topic]
	if ok {
		delete(r.subs, topic)
	}
	r.mu.Unlock()

	if !ok {
		return
	}

	r.tr.Unsubscribe(topic)
	r.logger.Debug("unsubscribed", zap.String("topic", topic), zap.String("subscription", s.id))
}

// Resubscribe replays a subscribe control frame for every live topic. The
// connection does not remember topic delivery across reconnects, so this must
// run on every connect callback before anything new is subscribed; without it
// the idempotence path would swallow the frames the fresh connection needs.
func (r *Registry) Resubscribe() {
	r.mu.RLock()
	topics := make([]string, 0, len(r.subs))
	for topic := range r.subs {
		topics = append(topics, topic)
	}
	r.mu.RUnlock()

	for _, topic := range topics {
		r.tr.Subscribe(topic)
	}
	if len(topics) > 0 {
		r.logger.Debug("subscriptions replayed", zap.Int("topics", len(topics)))
	}
}

// Subscribed reports whether the topic currently has an active subscription.
func (r *Registry) Subscribed(topic string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.subs[topic]
	return ok
}

// Dispatch routes one inbound frame to the topic's handler, if any.
func (r *Registry) Dispatch(f event.Frame) {
	if f.Type != event.FrameMessage {
		return
	}

	r.mu.RLock()
	var h Handler
	if s := r.subs[f.Destination]; s != nil {
		h = s.handler
	}
	r.mu.RUnlock()

	if h == nil {
		r.logger.Debug("frame for inactive topic dropped", zap.String("topic", f.Destination))
		return
	}
	h(f.Body)
}

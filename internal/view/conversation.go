package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/model"
	"github.com/bolt162/buzzlink-app/internal/presence"
)

// ConversationView reconciles one direct-message conversation. The personal
// DM topic carries every DM for the user, so pushes are filtered down to the
// ones involving this conversation's other party; everything else is dropped
// here (the notification flow handles unread state separately).
type ConversationView struct {
	self    model.User
	other   model.User
	history ConversationHistory
	logger  *zap.Logger

	mu       sync.Mutex
	state    State
	messages []model.DirectMessage
	pending  []model.DirectMessage
	seen     map[int64]struct{}

	typing *presence.TypingTracker
}

func NewConversationView(self, other model.User, history ConversationHistory, logger *zap.Logger) *ConversationView {
	return &ConversationView{
		self:    self,
		other:   other,
		history: history,
		logger:  logger,
		seen:    make(map[int64]struct{}),
		typing:  presence.NewTypingTracker(self.ClerkID, logger),
	}
}

func (v *ConversationView) Other() model.User { return v.other }

func (v *ConversationView) Activate() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = StateLoading
	v.messages = nil
	v.pending = nil
	v.seen = make(map[int64]struct{})
}

// Load fetches the DM history (most-recent-first, reversed here) and merges
// buffered pushes. Failures proceed Live with empty history.
func (v *ConversationView) Load(ctx context.Context) {
	msgs, err := v.history.GetConversation(ctx, v.other.ID, historyPageSize)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateLoading {
		return
	}

	if err != nil {
		v.logger.Warn("conversation fetch failed, going live with empty history",
			zap.Int64("otherUser", v.other.ID), zap.Error(err))
		msgs = nil
	}

	reverse(msgs)
	v.messages = msgs
	for _, m := range msgs {
		v.seen[m.ID] = struct{}{}
	}

	v.state = StateLive
	pending := v.pending
	v.pending = nil
	for _, m := range pending {
		v.mergeLocked(m)
	}
}

// ApplyDirectMessage folds one pushed DM into the view if it belongs to this
// conversation.
func (v *ConversationView) ApplyDirectMessage(dm model.DirectMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.state {
	case StateInactive:
	case StateLoading:
		v.pending = append(v.pending, dm)
	case StateLive:
		v.mergeLocked(dm)
	}
}

func (v *ConversationView) mergeLocked(dm model.DirectMessage) {
	// the backend echoes DMs to both participants, so either side may match
	if !dm.Involves(v.other.ID) {
		v.logger.Debug("dm outside active conversation dropped", zap.Int64("dm", dm.ID))
		return
	}
	if _, dup := v.seen[dm.ID]; dup {
		return
	}
	v.seen[dm.ID] = struct{}{}
	v.messages = append(v.messages, dm)
}

func (v *ConversationView) ApplyTyping(ev model.TypingEvent) {
	v.mu.Lock()
	inactive := v.state == StateInactive
	v.mu.Unlock()
	if inactive {
		return
	}
	v.typing.Apply(ev.ClerkID, ev.DisplayName, ev.IsTyping)
}

func (v *ConversationView) Messages() []model.DirectMessage {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]model.DirectMessage, len(v.messages))
	copy(out, v.messages)
	return out
}

func (v *ConversationView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *ConversationView) TypingUsers() map[string]string {
	return v.typing.Typing()
}

func (v *ConversationView) Deactivate() {
	v.mu.Lock()
	v.state = StateInactive
	v.messages = nil
	v.pending = nil
	v.seen = make(map[int64]struct{})
	v.mu.Unlock()

	v.typing.Stop()
}

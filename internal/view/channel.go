package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/model"
	"github.com/bolt162/buzzlink-app/internal/presence"
)

const historyPageSize = 50

// ChannelView reconciles one channel's history and live events. Push events
// that arrive while history is still loading are buffered and merged once it
// lands, so nothing is lost to the fetch/subscribe race. Uniqueness is keyed
// strictly by message id.
type ChannelView struct {
	channelID int64
	self      model.User
	history   ChannelHistory
	logger    *zap.Logger

	mu       sync.Mutex
	state    State
	messages []model.Message
	pending  []model.Message
	seen     map[int64]struct{}
	thread   *ThreadView

	typing   *presence.TypingTracker
	presence *presence.PresenceState
}

func NewChannelView(channelID int64, self model.User, history ChannelHistory, logger *zap.Logger) *ChannelView {
	return &ChannelView{
		channelID: channelID,
		self:      self,
		history:   history,
		logger:    logger,
		seen:      make(map[int64]struct{}),
		typing:    presence.NewTypingTracker(self.ClerkID, logger),
		presence:  presence.NewPresenceState(),
	}
}

func (v *ChannelView) ChannelID() int64 { return v.channelID }

// Activate moves the view into Loading. The caller runs Load concurrently
// with topic subscription; the two deliberately race.
func (v *ChannelView) Activate() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = StateLoading
	v.messages = nil
	v.pending = nil
	v.seen = make(map[int64]struct{})
}

// Load fetches channel history and merges whatever pushes arrived in the
// meantime. A fetch failure is logged and the view proceeds Live with empty
// history; live events must not be blocked behind a dead fetch.
func (v *ChannelView) Load(ctx context.Context) {
	msgs, err := v.history.GetMessages(ctx, v.channelID, historyPageSize)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateLoading {
		// deactivated while the fetch was in flight
		return
	}

	if err != nil {
		v.logger.Warn("history fetch failed, going live with empty history",
			zap.Int64("channel", v.channelID), zap.Error(err))
		msgs = nil
	}

	// backend returns most-recent-first
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

	v.logger.Debug("channel view live",
		zap.Int64("channel", v.channelID),
		zap.Int("history", len(msgs)),
		zap.Int("buffered", len(pending)))
}

// ApplyMessage folds one pushed channel message into the view.
func (v *ChannelView) ApplyMessage(msg model.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.state {
	case StateInactive:
		// stale delivery for a deactivated view
	case StateLoading:
		v.pending = append(v.pending, msg)
	case StateLive:
		v.mergeLocked(msg)
	}
}

func (v *ChannelView) mergeLocked(msg model.Message) {
	if _, dup := v.seen[msg.ID]; dup {
		return
	}
	v.seen[msg.ID] = struct{}{}

	if msg.IsReply() {
		// Thread fan-out: the open thread gets the reply, the parent in the
		// top-level list gets exactly one increment. The server never resends
		// a full count, so this is always additive.
		if v.thread != nil {
			v.thread.ApplyReply(msg)
		}
		v.bumpReplyCountLocked(*msg.ParentMessageID)
		return
	}

	v.messages = append(v.messages, msg)
}

func (v *ChannelView) bumpReplyCountLocked(parentID int64) {
	for i := range v.messages {
		if v.messages[i].ID == parentID {
			v.messages[i].ReplyCount++
			return
		}
	}
	// parent fell off the loaded page; nothing to update
	v.logger.Debug("reply for unloaded parent", zap.Int64("parent", parentID))
}

// ApplyTyping feeds the typing tracker. The tracker drops the viewer's own
// echo and expires entries on its own clock.
func (v *ChannelView) ApplyTyping(ev model.TypingEvent) {
	v.mu.Lock()
	inactive := v.state == StateInactive
	v.mu.Unlock()
	if inactive {
		return
	}
	v.typing.Apply(ev.ClerkID, ev.DisplayName, ev.IsTyping)
}

// ApplyPresence replaces the channel's presence snapshot.
func (v *ChannelView) ApplyPresence(ev model.PresenceEvent) {
	v.mu.Lock()
	inactive := v.state == StateInactive
	v.mu.Unlock()
	if inactive {
		return
	}
	v.presence.Apply(ev)
}

// Messages returns the top-level list in chronological order. Replies never
// appear here; they are only visible in their parent's thread.
func (v *ChannelView) Messages() []model.Message {
	v.mu.Lock()
	defer v.mu.Unlock()

	return Filter(v.messages, func(m model.Message) bool { return !m.IsReply() })
}

func (v *ChannelView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *ChannelView) TypingUsers() map[string]string {
	return v.typing.Typing()
}

func (v *ChannelView) OnlineCount() int {
	return v.presence.OnlineCount(v.channelID)
}

func (v *ChannelView) OnlineUsers() []string {
	return v.presence.OnlineUsers(v.channelID)
}

// SetReactionCount applies the total returned by the reaction toggle call.
func (v *ChannelView) SetReactionCount(messageID int64, count int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := range v.messages {
		if v.messages[i].ID == messageID {
			v.messages[i].ReactionCount = count
			return
		}
	}
}

// RemoveMessage drops a deleted message from the list. The id stays in the
// seen set so a late redundant delivery cannot resurrect it.
func (v *ChannelView) RemoveMessage(messageID int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.messages = Filter(v.messages, func(m model.Message) bool { return m.ID != messageID })
}

// OpenThread replaces any open thread with one rooted at parent. The caller
// runs the returned view's Load.
func (v *ChannelView) OpenThread(parent model.Message) *ThreadView {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.thread != nil {
		v.thread.Deactivate()
	}
	v.thread = NewThreadView(parent, v.history, v.logger)
	return v.thread
}

func (v *ChannelView) CloseThread() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.thread != nil {
		v.thread.Deactivate()
		v.thread = nil
	}
}

func (v *ChannelView) Thread() *ThreadView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.thread
}

// Deactivate drops every collection and timer owned by the view, before the
// next view activates. The caller is responsible for unsubscribing the
// channel topics.
func (v *ChannelView) Deactivate() {
	v.mu.Lock()
	v.state = StateInactive
	v.messages = nil
	v.pending = nil
	v.seen = make(map[int64]struct{})
	thread := v.thread
	v.thread = nil
	v.mu.Unlock()

	if thread != nil {
		thread.Deactivate()
	}
	v.typing.Stop()
	v.presence.Forget(v.channelID)
}

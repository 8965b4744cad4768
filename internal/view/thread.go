package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/model"
)

// ThreadView reconciles one open thread: fetched replies plus live replies
// for the same parent, de-duplicated by id.
type ThreadView struct {
	parent  model.Message
	history ChannelHistory
	logger  *zap.Logger

	mu      sync.Mutex
	state   State
	replies []model.Message
	pending []model.Message
	seen    map[int64]struct{}
}

func NewThreadView(parent model.Message, history ChannelHistory, logger *zap.Logger) *ThreadView {
	return &ThreadView{
		parent:  parent,
		history: history,
		logger:  logger,
		state:   StateLoading,
		seen:    make(map[int64]struct{}),
	}
}

func (t *ThreadView) Parent() model.Message { return t.parent }

// Load fetches the reply list (already chronological from the backend) and
// merges any replies that were pushed while the fetch ran.
func (t *ThreadView) Load(ctx context.Context) {
	replies, err := t.history.GetThreadReplies(ctx, t.parent.ID)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateLoading {
		return
	}

	if err != nil {
		t.logger.Warn("thread fetch failed, going live with empty thread",
			zap.Int64("parent", t.parent.ID), zap.Error(err))
		replies = nil
	}

	t.replies = replies
	for _, r := range replies {
		t.seen[r.ID] = struct{}{}
	}

	t.state = StateLive
	pending := t.pending
	t.pending = nil
	for _, r := range pending {
		t.mergeLocked(r)
	}
}

// ApplyReply accepts a pushed reply if it belongs to this thread's parent.
func (t *ThreadView) ApplyReply(msg model.Message) {
	if msg.ParentMessageID == nil || *msg.ParentMessageID != t.parent.ID {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateInactive:
	case StateLoading:
		t.pending = append(t.pending, msg)
	case StateLive:
		t.mergeLocked(msg)
	}
}

func (t *ThreadView) mergeLocked(msg model.Message) {
	if _, dup := t.seen[msg.ID]; dup {
		return
	}
	t.seen[msg.ID] = struct{}{}
	t.replies = append(t.replies, msg)
}

func (t *ThreadView) Replies() []model.Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Message, len(t.replies))
	copy(out, t.replies)
	return out
}

func (t *ThreadView) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *ThreadView) Deactivate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = StateInactive
	t.replies = nil
	t.pending = nil
	t.seen = make(map[int64]struct{})
}

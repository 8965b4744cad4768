package presence

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// typingTimeout is how long a started-typing entry survives without a refresh
// before it is evicted.
const typingTimeout = 3 * time.Second

type typingEntry struct {
	displayName string
	timer       *clock.Timer
}

// TypingTracker keeps the live "who is typing" set for one view scope (a
// channel or a DM peer). Entries expire after typingTimeout unless refreshed;
// an explicit stop removes them immediately. The viewer's own events are
// discarded so a sender never sees their own indicator. The tracker is owned
// by exactly one view and must be stopped when that view goes away.
type TypingTracker struct {
	selfClerkID string
	clk         clock.Clock
	logger      *zap.Logger

	mu      sync.Mutex
	entries map[string]*typingEntry
	stopped bool
}

func NewTypingTracker(selfClerkID string, logger *zap.Logger) *TypingTracker {
	return newTypingTracker(selfClerkID, clock.New(), logger)
}

func newTypingTracker(selfClerkID string, clk clock.Clock, logger *zap.Logger) *TypingTracker {
	return &TypingTracker{
		selfClerkID: selfClerkID,
		clk:         clk,
		logger:      logger,
		entries:     make(map[string]*typingEntry),
	}
}

// Apply folds one typing event into the set. A start inserts or refreshes the
// actor and re-arms their expiry; a stop removes them and cancels the timer.
func (t *TypingTracker) Apply(clerkID, displayName string, isTyping bool) {
	if clerkID == t.selfClerkID {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	if e, ok := t.entries[clerkID]; ok {
		e.timer.Stop()
		delete(t.entries, clerkID)
	}

	if !isTyping {
		return
	}

	e := &typingEntry{displayName: displayName}
	e.timer = t.clk.AfterFunc(typingTimeout, func() {
		t.expire(clerkID, e)
	})
	t.entries[clerkID] = e
}

// expire removes the entry only if it is still the one the timer was armed
// for; a refresh that raced the expiry wins.
func (t *TypingTracker) expire(clerkID string, e *typingEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.entries[clerkID]; ok && cur == e {
		delete(t.entries, clerkID)
		t.logger.Debug("typing entry expired", zap.String("clerkId", clerkID))
	}
}

// Typing returns the current clerkId -> displayName snapshot.
func (t *TypingTracker) Typing() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]string, len(t.entries))
	for id, e := range t.entries {
		out[id] = e.displayName
	}
	return out
}

// Stop cancels all pending expiry timers and empties the set. The tracker
// accepts no further events afterwards.
func (t *TypingTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, e := range t.entries {
		e.timer.Stop()
		delete(t.entries, id)
	}
	t.stopped = true
}

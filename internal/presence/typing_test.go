package presence

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTracker(t *testing.T) (*TypingTracker, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	return newTypingTracker("clerk_self", mock, zap.NewNop()), mock
}

func TestOwnTypingEventSuppressed(t *testing.T) {
	tr, _ := newTracker(t)

	tr.Apply("clerk_self", "Me", true)

	assert.Empty(t, tr.Typing(), "own echo must never appear in the typing set")
}

func TestTypingExpiresAfterTimeout(t *testing.T) {
	tr, mock := newTracker(t)

	tr.Apply("clerk_peer", "Peer", true)
	require.Equal(t, map[string]string{"clerk_peer": "Peer"}, tr.Typing())

	mock.Add(typingTimeout - time.Millisecond)
	assert.Len(t, tr.Typing(), 1, "entry expired early")

	mock.Add(time.Millisecond)
	assert.Empty(t, tr.Typing(), "entry survived past the timeout")
}

func TestRefreshResetsTheWindow(t *testing.T) {
	tr, mock := newTracker(t)

	tr.Apply("clerk_peer", "Peer", true)
	mock.Add(2 * time.Second)

	// refresh re-arms, it must not stack a second expiry
	tr.Apply("clerk_peer", "Peer", true)
	mock.Add(2 * time.Second)
	assert.Len(t, tr.Typing(), 1, "refreshed entry expired on the old timer")

	mock.Add(time.Second)
	assert.Empty(t, tr.Typing())
}

func TestStopTypingRemovesImmediately(t *testing.T) {
	tr, mock := newTracker(t)

	tr.Apply("clerk_peer", "Peer", true)
	tr.Apply("clerk_peer", "Peer", false)
	assert.Empty(t, tr.Typing())

	// the cancelled timer must not fire into a later session
	tr.Apply("clerk_peer", "Peer", true)
	mock.Add(time.Second)
	assert.Len(t, tr.Typing(), 1)
}

func TestMultipleActors(t *testing.T) {
	tr, mock := newTracker(t)

	tr.Apply("clerk_a", "Alice", true)
	mock.Add(2 * time.Second)
	tr.Apply("clerk_b", "Bob", true)

	require.Len(t, tr.Typing(), 2)

	mock.Add(time.Second + time.Millisecond)
	assert.Equal(t, map[string]string{"clerk_b": "Bob"}, tr.Typing(), "only the older entry expires")
}

func TestStopCancelsEverything(t *testing.T) {
	tr, mock := newTracker(t)

	tr.Apply("clerk_a", "Alice", true)
	tr.Apply("clerk_b", "Bob", true)
	tr.Stop()

	assert.Empty(t, tr.Typing())

	// stopped trackers accept nothing further
	tr.Apply("clerk_c", "Cara", true)
	assert.Empty(t, tr.Typing())

	mock.Add(10 * time.Second) // no timer left to fire
}

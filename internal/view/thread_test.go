package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/model"
)

func newThreadView(h ChannelHistory) *ThreadView {
	return NewThreadView(msg(10), h, zap.NewNop())
}

func TestThreadMergesFetchAndBufferedPushes(t *testing.T) {
	h := &fakeHistory{replies: map[int64][]model.Message{
		10: {reply(11, 10), reply(12, 10)},
	}}
	th := newThreadView(h)
	require.Equal(t, StateLoading, th.State())

	// pushed while the fetch runs; 12 is also in the fetched list
	th.ApplyReply(reply(12, 10))
	th.ApplyReply(reply(13, 10))
	th.Load(context.Background())

	assert.Equal(t, StateLive, th.State())
	assert.Equal(t, []int64{11, 12, 13}, ids(th.Replies()))
}

func TestThreadIgnoresOtherParents(t *testing.T) {
	th := newThreadView(&fakeHistory{})
	th.Load(context.Background())

	th.ApplyReply(reply(20, 99))
	th.ApplyReply(msg(21)) // not a reply at all

	assert.Empty(t, th.Replies())
}

func TestThreadFetchFailureGoesLiveEmpty(t *testing.T) {
	th := newThreadView(&fakeHistory{replyErr: errors.New("backend down")})
	th.Load(context.Background())

	assert.Equal(t, StateLive, th.State())
	assert.Empty(t, th.Replies())

	th.ApplyReply(reply(11, 10))
	assert.Equal(t, []int64{11}, ids(th.Replies()))
}

func TestThreadDeactivateDropsReplies(t *testing.T) {
	h := &fakeHistory{replies: map[int64][]model.Message{10: {reply(11, 10)}}}
	th := newThreadView(h)
	th.Load(context.Background())

	th.Deactivate()

	assert.Equal(t, StateInactive, th.State())
	assert.Empty(t, th.Replies())

	th.ApplyReply(reply(12, 10))
	assert.Empty(t, th.Replies())
}

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

var (
	self  = model.User{ID: 1, ClerkID: "clerk_self", DisplayName: "Self"}
	other = model.User{ID: 2, ClerkID: "clerk_other", DisplayName: "Other"}
	third = model.User{ID: 3, ClerkID: "clerk_third", DisplayName: "Third"}
)

type fakeConversationHistory struct {
	page []model.DirectMessage // most recent first, as the backend returns it
	err  error
}

func (f *fakeConversationHistory) GetConversation(_ context.Context, _ int64, _ int) ([]model.DirectMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.DirectMessage, len(f.page))
	copy(out, f.page)
	return out, nil
}

func dm(id int64, from, to model.User) model.DirectMessage {
	return model.DirectMessage{ID: id, Sender: from, Recipient: to, Content: "hi", Type: "TEXT"}
}

func dmIDs(msgs []model.DirectMessage) []int64 {
	out := make([]int64, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}

func newConversationView(h ConversationHistory) *ConversationView {
	return NewConversationView(self, other, h, zap.NewNop())
}

func TestConversationLoadReversesHistory(t *testing.T) {
	h := &fakeConversationHistory{page: []model.DirectMessage{
		dm(2, other, self),
		dm(1, self, other),
	}}
	v := newConversationView(h)
	v.Activate()
	v.Load(context.Background())

	require.Equal(t, StateLive, v.State())
	assert.Equal(t, []int64{1, 2}, dmIDs(v.Messages()))
}

func TestConversationFiltersByOtherParty(t *testing.T) {
	v := newConversationView(&fakeConversationHistory{})
	v.Activate()
	v.Load(context.Background())

	v.ApplyDirectMessage(dm(1, other, self)) // inbound from other
	v.ApplyDirectMessage(dm(2, self, other)) // own echo back from the server
	v.ApplyDirectMessage(dm(3, third, self)) // different conversation, same topic

	assert.Equal(t, []int64{1, 2}, dmIDs(v.Messages()))
}

func TestConversationBuffersDuringLoading(t *testing.T) {
	h := &fakeConversationHistory{page: []model.DirectMessage{dm(1, self, other)}}
	v := newConversationView(h)
	v.Activate()

	v.ApplyDirectMessage(dm(1, self, other)) // also in the page
	v.ApplyDirectMessage(dm(2, other, self))
	v.ApplyDirectMessage(dm(9, third, self)) // filtered at merge time
	v.Load(context.Background())

	assert.Equal(t, []int64{1, 2}, dmIDs(v.Messages()))
}

func TestConversationFetchFailureGoesLiveEmpty(t *testing.T) {
	v := newConversationView(&fakeConversationHistory{err: errors.New("backend down")})
	v.Activate()
	v.Load(context.Background())

	assert.Equal(t, StateLive, v.State())
	assert.Empty(t, v.Messages())
}

func TestConversationDeactivateDropsEverything(t *testing.T) {
	h := &fakeConversationHistory{page: []model.DirectMessage{dm(1, other, self)}}
	v := newConversationView(h)
	v.Activate()
	v.Load(context.Background())
	v.ApplyTyping(model.TypingEvent{ClerkID: "clerk_other", DisplayName: "Other", IsTyping: true})

	v.Deactivate()

	assert.Equal(t, StateInactive, v.State())
	assert.Empty(t, v.Messages())
	assert.Empty(t, v.TypingUsers())

	v.ApplyDirectMessage(dm(2, other, self))
	assert.Empty(t, v.Messages())
}

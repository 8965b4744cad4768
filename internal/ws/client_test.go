package ws

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/event"
	"github.com/bolt162/buzzlink-app/internal/model"
)

func newTestClient(connected bool) (*Client, *stubTransport) {
	tr := &stubTransport{connected: connected}
	return NewClient(tr, "clerk_self", zap.NewNop()), tr
}

func publishesTo(tr *stubTransport, destination string) []event.Frame {
	var out []event.Frame
	for _, f := range tr.published {
		if f.Destination == destination {
			out = append(out, f)
		}
	}
	return out
}

func TestSubscribeToChannelSubscribesAndJoins(t *testing.T) {
	c, tr := newTestClient(true)

	c.SubscribeToChannel(7, ChannelHandlers{})

	wantTopics := []string{
		"/topic/channel.7",
		"/topic/channel.7.typing",
		"/topic/channel.7.presence",
	}
	if len(tr.subscribed) != len(wantTopics) {
		t.Fatalf("subscribed to %v, want %v", tr.subscribed, wantTopics)
	}
	for i, topic := range wantTopics {
		if tr.subscribed[i] != topic {
			t.Fatalf("subscribed[%d] = %q, want %q", i, tr.subscribed[i], topic)
		}
	}

	joins := publishesTo(tr, event.DestChatJoin)
	if len(joins) != 1 {
		t.Fatalf("expected one join publish, got %d", len(joins))
	}
	var join event.JoinChannelRequest
	if err := json.Unmarshal(joins[0].Body, &join); err != nil {
		t.Fatalf("decode join: %v", err)
	}
	if join.ChannelID != 7 || join.ClerkID != "clerk_self" {
		t.Fatalf("unexpected join payload: %+v", join)
	}
}

func TestSubscribeToChannelWhileDisconnectedIsNoop(t *testing.T) {
	c, tr := newTestClient(false)

	c.SubscribeToChannel(7, ChannelHandlers{})

	if len(tr.subscribed) != 0 || len(tr.published) != 0 {
		t.Fatalf("expected no wire traffic while disconnected")
	}
}

func TestLeaveChannelPublishesLeaveAndUnsubscribes(t *testing.T) {
	c, tr := newTestClient(true)
	c.SubscribeToChannel(7, ChannelHandlers{})

	c.LeaveChannel(7)

	if got := publishesTo(tr, event.DestChatLeave); len(got) != 1 {
		t.Fatalf("expected one leave publish, got %d", len(got))
	}
	if len(tr.unsubscribed) != 3 {
		t.Fatalf("expected three unsubscribes, got %v", tr.unsubscribed)
	}
}

func TestChannelMessageDecodesIntoHandler(t *testing.T) {
	c, _ := newTestClient(true)

	var got model.Message
	c.SubscribeToChannel(7, ChannelHandlers{
		OnMessage: func(m model.Message) { got = m },
	})

	c.Registry().Dispatch(messageFrame("/topic/channel.7",
		`{"id":101,"channelId":7,"sender":{"id":2,"clerkId":"clerk_peer","displayName":"Peer"},"content":"hi","type":"TEXT","reactionCount":0,"replyCount":0}`))

	if got.ID != 101 || got.Sender.ClerkID != "clerk_peer" || got.Content != "hi" {
		t.Fatalf("unexpected decoded message: %+v", got)
	}
}

func TestMalformedPayloadDroppedWithoutHandlerCall(t *testing.T) {
	c, _ := newTestClient(true)

	calls := 0
	c.SubscribeToChannel(7, ChannelHandlers{
		OnMessage: func(model.Message) { calls++ },
	})

	c.Registry().Dispatch(messageFrame("/topic/channel.7", `{not json`))

	if calls != 0 {
		t.Fatalf("malformed payload reached handler")
	}

	// next frame on the same subscription still flows
	c.Registry().Dispatch(messageFrame("/topic/channel.7", `{"id":1}`))
	if calls != 1 {
		t.Fatalf("subscription did not survive a malformed frame")
	}
}

func TestSendMessageCarriesParentID(t *testing.T) {
	c, tr := newTestClient(true)

	parent := int64(55)
	c.SendMessage(7, "reply text", model.MessageTypeText, &parent)

	sends := publishesTo(tr, event.DestChatSendMessage)
	if len(sends) != 1 {
		t.Fatalf("expected one send, got %d", len(sends))
	}
	var req event.SendMessageRequest
	if err := json.Unmarshal(sends[0].Body, &req); err != nil {
		t.Fatalf("decode send: %v", err)
	}
	if req.ParentMessageID == nil || *req.ParentMessageID != 55 {
		t.Fatalf("parent id not carried: %+v", req)
	}
}

func TestTypingStartsThrottledStopsAlwaysSent(t *testing.T) {
	c, tr := newTestClient(true)

	c.SendTyping(7, "Self", true)
	c.SendTyping(7, "Self", true) // within the throttle window
	c.SendTyping(7, "Self", false)

	frames := publishesTo(tr, event.DestChatTyping)
	if len(frames) != 2 {
		t.Fatalf("expected start+stop on the wire, got %d frames", len(frames))
	}

	var last event.ChannelTypingRequest
	if err := json.Unmarshal(frames[len(frames)-1].Body, &last); err != nil {
		t.Fatalf("decode typing: %v", err)
	}
	if last.IsTyping {
		t.Fatalf("stop event did not reach the wire")
	}
}

func TestUserTopicsSubscription(t *testing.T) {
	c, tr := newTestClient(true)

	var gotCount int64
	c.SubscribeToUserTopics(UserHandlers{
		OnNotificationCount: func(n int64) { gotCount = n },
	})

	wantTopics := []string{
		"/topic/dm.clerk_self",
		"/topic/dm.clerk_self.typing",
		"/user/queue/notifications",
		"/user/queue/notifications/count",
	}
	if len(tr.subscribed) != len(wantTopics) {
		t.Fatalf("subscribed to %v, want %v", tr.subscribed, wantTopics)
	}

	c.Registry().Dispatch(messageFrame("/user/queue/notifications/count", `12`))
	if gotCount != 12 {
		t.Fatalf("count = %d, want 12", gotCount)
	}
}

package event

import "encoding/json"

// Frame types exchanged over the socket. Send carries an application
// destination, Subscribe/Unsubscribe manage topic delivery, Message is an
// inbound broadcast from a subscribed topic.
const (
	FrameSend        = "send"
	FrameSubscribe   = "subscribe"
	FrameUnsubscribe = "unsubscribe"
	FrameMessage     = "message"
)

type Frame struct {
	Type        string          `json:"type"`
	Destination string          `json:"destination"`
	Body        json.RawMessage `json:"body,omitempty"`
}

// Application destinations the backend handles. These strings are the wire
// protocol surface and must match the backend exactly.
const (
	DestChatJoin        = "/app/chat.join"
	DestChatSendMessage = "/app/chat.sendMessage"
	DestChatTyping      = "/app/chat.typing"
	DestChatLeave       = "/app/chat.leave"
	DestDMSend          = "/app/dm.send"
	DestDMTyping        = "/app/dm.typing"
)

package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/event"
)

var (
	ErrEmptyIdentity = errors.New("invalid identity: clerk id cannot be empty")
	ErrEmptyURL      = errors.New("invalid socket url: cannot be empty")
)

var (
	// tuning parameters
	reconnectDelay    = 5 * time.Second  // fixed delay between dial attempts
	heartbeatInterval = 4 * time.Second  // bidirectional heartbeat period
	pongWait          = 10 * time.Second // time allowed to read the next pong
	writeWait         = 10 * time.Second // time allowed to write a frame to the peer
	maxMessageSize    = 64 * 1024        // max inbound frame size (64KB)
	sendBufSize       = 256              // outbound buffer size
)

// Transport is the surface the subscription layer sees: fire-and-forget
// publishes and topic control frames over one shared connection. Every
// operation is a silent no-op while disconnected; callers must never crash on
// a transient drop.
type Transport interface {
	Publish(destination string, body any)
	Subscribe(destination string)
	Unsubscribe(destination string)
	Connected() bool
}

// Conn owns the lifecycle of the single duplex connection for one identity:
// dial, automatic reconnect with a fixed delay until Close, heartbeats to
// detect half-open connections. It does not remember subscriptions across
// reconnects; re-subscription is the caller's job on the connect callback.
type Conn struct {
	url     string
	clerkID string
	logger  *zap.Logger
	dialer  *websocket.Dialer

	egress chan event.Frame

	mu        sync.RWMutex
	connected bool
	onFrame   func(event.Frame)
	onConnect func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewConn(socketURL, clerkID string, logger *zap.Logger) (*Conn, error) {
	if clerkID == "" {
		return nil, ErrEmptyIdentity
	}
	if socketURL == "" {
		return nil, ErrEmptyURL
	}

	u, err := url.Parse(socketURL)
	if err != nil {
		return nil, fmt.Errorf("invalid socket url: %w", err)
	}
	q := u.Query()
	q.Set("clerkId", clerkID)
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithCancel(context.Background())
	return &Conn{
		url:     u.String(),
		clerkID: clerkID,
		logger:  logger,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		egress:  make(chan event.Frame, sendBufSize),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// OnFrame registers the consumer for inbound broadcast frames. Must be set
// before Start.
func (c *Conn) OnFrame(fn func(event.Frame)) {
	c.mu.Lock()
	c.onFrame = fn
	c.mu.Unlock()
}

// OnConnect registers a callback invoked after every successful dial,
// including reconnects.
func (c *Conn) OnConnect(fn func()) {
	c.mu.Lock()
	c.onConnect = fn
	c.mu.Unlock()
}

// Start begins dialing in the background. Reconnection is not cancellable
// other than by Close.
func (c *Conn) Start() {
	c.wg.Add(1)
	go c.run()
}

// Close tears the connection down for good and waits for the pumps to exit.
func (c *Conn) Close() {
	c.once.Do(func() {
		c.cancel()
		c.wg.Wait()
		c.logger.Info("connection closed", zap.String("clerkId", c.clerkID))
	})
}

func (c *Conn) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Publish marshals body and enqueues a send frame. Dropped (logged, not
// raised) while disconnected or when the outbound buffer is full.
func (c *Conn) Publish(destination string, body any) {
	if !c.Connected() {
		c.logger.Debug("publish dropped: not connected", zap.String("destination", destination))
		return
	}

	raw, err := json.Marshal(body)
	if err != nil {
		c.logger.Error("publish dropped: marshal failed",
			zap.String("destination", destination), zap.Error(err))
		return
	}

	c.enqueue(event.Frame{Type: event.FrameSend, Destination: destination, Body: raw})
}

// Subscribe sends a subscribe control frame for the topic. No-op while
// disconnected.
func (c *Conn) Subscribe(destination string) {
	if !c.Connected() {
		c.logger.Debug("subscribe dropped: not connected", zap.String("topic", destination))
		return
	}
	c.enqueue(event.Frame{Type: event.FrameSubscribe, Destination: destination})
}

// Unsubscribe sends an unsubscribe control frame for the topic. No-op while
// disconnected.
func (c *Conn) Unsubscribe(destination string) {
	if !c.Connected() {
		return
	}
	c.enqueue(event.Frame{Type: event.FrameUnsubscribe, Destination: destination})
}

func (c *Conn) enqueue(f event.Frame) {
	select {
	case c.egress <- f:
	default:
		c.logger.Warn("egress full, dropping frame", zap.String("destination", f.Destination))
	}
}

func (c *Conn) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

func (c *Conn) run() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		conn, _, err := c.dialer.DialContext(c.ctx, c.url, nil)
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			c.logger.Warn("dial failed, retrying",
				zap.String("url", c.url), zap.Duration("delay", reconnectDelay), zap.Error(err))
			select {
			case <-c.ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
			continue
		}

		c.logger.Info("connected", zap.String("clerkId", c.clerkID))
		c.setConnected(true)

		c.mu.RLock()
		onConnect := c.onConnect
		c.mu.RUnlock()
		if onConnect != nil {
			onConnect()
		}

		c.serve(conn)
		c.setConnected(false)

		if c.ctx.Err() != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			_ = conn.Close()
			return
		}

		c.logger.Warn("disconnected, reconnecting", zap.Duration("delay", reconnectDelay))
		select {
		case <-c.ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// serve runs the write pump in the background and reads until the connection
// dies. Returns once the connection is unusable; the caller decides whether
// to redial.
func (c *Conn) serve(conn *websocket.Conn) {
	done := make(chan struct{})
	writerExited := make(chan struct{})

	go c.writePump(conn, done, writerExited)
	c.readPump(conn)

	close(done)
	_ = conn.Close()
	<-writerExited
}

func (c *Conn) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(int64(maxMessageSize))
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var f event.Frame
		if err := conn.ReadJSON(&f); err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				c.logger.Info("peer closed connection")
				return
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				c.logger.Warn("read timed out, connection half-open")
				return
			}
			c.logger.Warn("read failed", zap.Error(err))
			return
		}

		c.mu.RLock()
		onFrame := c.onFrame
		c.mu.RUnlock()
		if onFrame != nil {
			onFrame(f)
		}
	}
}

func (c *Conn) writePump(conn *websocket.Conn, done <-chan struct{}, exited chan<- struct{}) {
	ticker := time.NewTicker(heartbeatInterval)
	defer func() {
		ticker.Stop()
		close(exited)
	}()

	for {
		select {
		case <-done:
			return
		case <-c.ctx.Done():
			return
		case f := <-c.egress:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				c.logger.Warn("write failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.logger.Warn("heartbeat failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		}
	}
}

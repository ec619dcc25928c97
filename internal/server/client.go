// Package server manages individual WebSocket clients, handling read/write
// pumps, rate limiting, and lifecycle control for each connection.
package server

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GranFenrir/realtime-chat/internal/chat"
)

const (
	sendQueueSize = 128
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
)

// Client is a single WebSocket connection. It owns the transport socket,
// pumps inbound frames to the hub, and drains the hub's outbound enqueues
// from its buffered send channel. It implements chat.Conn.
type Client struct {
	id      string
	conn    *websocket.Conn
	hub     *chat.Hub
	send    chan []byte
	done    chan struct{}
	closed  atomic.Int32
	limiter *rateLimiter
	log     *zap.Logger
}

func newClient(conn *websocket.Conn, hub *chat.Hub, cfg *Config, log *zap.Logger) *Client {
	id := uuid.NewString()
	if conn != nil {
		conn.SetReadLimit(cfg.MaxMessageSize)
	}
	return &Client{
		id:      id,
		conn:    conn,
		hub:     hub,
		send:    make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
		limiter: newRateLimiter(cfg.RateLimit.Burst, cfg.RateLimit.RefillInterval),
		log:     log.With(zap.String("socket_id", id)),
	}
}

// SocketID returns the transport-level connection identifier. It is minted
// per connection and is not a stable user identity.
func (c *Client) SocketID() string {
	return c.id
}

// Enqueue hands a frame to the write pump without blocking. It reports
// false when the connection is closed or its buffer is full.
func (c *Client) Enqueue(frame []byte) bool {
	if c.closed.Load() == 1 {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Close tears the connection down exactly once: it signals both pumps,
// sends a close frame on a best-effort basis, and closes the socket.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(0, 1) {
		return nil
	}
	close(c.done)

	if c.conn == nil {
		return nil
	}
	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return c.conn.Close()
}

// start launches the pumps and announces the connection to the hub. The
// write pump runs first so the hub's history replay lands in the buffer.
func (c *Client) start() {
	go c.writePump()
	c.hub.OnConnect(c)
	go c.readPump()
}

func (c *Client) setupReadConnection() {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Warn("set initial read deadline", zap.Error(err))
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

func (c *Client) readPump() {
	defer func() {
		_ = c.Close()
		c.hub.OnDisconnect(c)
	}()

	c.setupReadConnection()

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			c.logReadError(err)
			return
		}

		if !c.limiter.allow() {
			c.log.Warn("rate limit exceeded, discarding frame")
			continue
		}

		c.dispatch(frame)
	}
}

// dispatch decodes an inbound frame into its event variant and routes it to
// the matching hub operation. Frames that fail to decode are discarded
// without reaching the hub.
func (c *Client) dispatch(frame []byte) {
	ev, err := chat.DecodeInbound(frame)
	if err != nil {
		c.log.Warn("discarding undecodable frame", zap.Error(err))
		return
	}

	switch ev := ev.(type) {
	case *chat.Message:
		c.hub.OnMessage(c, ev)
	case *chat.TypingEvent:
		c.hub.OnTyping(c, ev)
	case *chat.JoinEvent:
		c.hub.OnUserJoined(c, ev)
	}
}

func (c *Client) logReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		c.log.Warn("inbound frame exceeded maximum size", zap.Error(err))
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure):
		c.log.Info("client disconnected", zap.Error(err))
	case isExpectedCloseError(err):
		c.log.Info("connection closed", zap.Error(err))
	default:
		c.log.Error("websocket read error", zap.Error(err))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				if !isExpectedCloseError(err) {
					c.log.Warn("websocket write error", zap.Error(err))
				}
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// isExpectedCloseError checks if an error is expected during connection
// closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}

package chat

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GranFenrir/realtime-chat/internal/observability"
)

// Conn is the hub's handle on a live connection. The connection boundary
// implements it; the hub never touches transport sockets directly.
type Conn interface {
	// SocketID identifies the connection for the lifetime of the socket.
	SocketID() string
	// Enqueue hands a frame to the connection's outbound buffer without
	// blocking. It reports false when the buffer is full or the connection
	// is closed, in which case the hub drops the connection.
	Enqueue(frame []byte) bool
	// Close tears the transport connection down.
	Close() error
}

// Hub owns all chat state: the set of open connections, the session
// registry, and the message history. State mutations are serialized behind
// a single mutex; fan-out only enqueues to per-connection buffers, so a
// stalled client can never block delivery to the others.
type Hub struct {
	mu       sync.Mutex
	conns    map[string]Conn // keyed by socket id
	registry *Registry
	history  *History
	log      *zap.Logger
}

// NewHub returns a hub with empty state. historySize bounds the replay
// buffer; non-positive values fall back to DefaultHistorySize.
func NewHub(historySize int, log *zap.Logger) *Hub {
	return &Hub{
		conns:    make(map[string]Conn),
		registry: NewRegistry(),
		history:  NewHistory(historySize),
		log:      log,
	}
}

// OnConnect adds the connection to the active set, replays the message
// history to it when non-empty, and sends it the current online user list.
// Nothing is broadcast to other connections until the client joins.
func (h *Hub) OnConnect(c Conn) {
	h.mu.Lock()
	h.conns[c.SocketID()] = c
	snapshot := h.history.Snapshot()
	users := h.registry.List()
	h.mu.Unlock()

	observability.ActiveConnections.Inc()
	h.log.Info("connection opened", zap.String("socket_id", c.SocketID()))

	if len(snapshot) > 0 {
		h.unicast(c, EventMessageHistory, snapshot)
	}
	h.unicast(c, EventOnlineUsers, users)
}

// OnMessage validates the message, appends it to the history, and
// broadcasts it to every connection including the sender. Clients
// de-duplicate their own echo by message id. Invalid messages are logged
// and discarded without touching state.
func (h *Hub) OnMessage(c Conn, msg *Message) {
	if err := msg.Validate(); err != nil {
		h.reject(c, EventMessage, err)
		return
	}

	h.mu.Lock()
	h.history.Append(*msg)
	observability.HistoryLength.Set(float64(h.history.Len()))
	conns := h.connSnapshotLocked()
	h.mu.Unlock()

	h.broadcast(conns, EventMessage, msg)
}

// OnTyping validates the event and relays it to every connection. No state
// changes; the sender's own indicator is filtered client-side.
func (h *Hub) OnTyping(c Conn, ev *TypingEvent) {
	if err := ev.Validate(); err != nil {
		h.reject(c, EventTyping, err)
		return
	}

	h.mu.Lock()
	conns := h.connSnapshotLocked()
	h.mu.Unlock()

	h.broadcast(conns, EventUserTyping, ev)
}

// OnUserJoined registers (or re-registers) the user identity on this
// connection, retroactively relabels the user's stored messages, and
// broadcasts the updated user list. A usernameChanged notification is
// broadcast on every join, first joins included; clients treat the
// no-op case as harmless.
func (h *Hub) OnUserJoined(c Conn, ev *JoinEvent) {
	if err := ev.Validate(); err != nil {
		h.reject(c, EventUserJoined, err)
		return
	}

	h.mu.Lock()
	h.registry.Upsert(ev.UserID, ev.Username, c.SocketID())
	renamed := h.history.RenameAuthor(ev.UserID, ev.Username)
	users := h.registry.List()
	observability.RegisteredUsers.Set(float64(h.registry.Len()))
	conns := h.connSnapshotLocked()
	h.mu.Unlock()

	h.log.Info("user joined",
		zap.String("user_id", ev.UserID),
		zap.String("username", ev.Username),
		zap.String("socket_id", c.SocketID()),
		zap.Int("messages_relabeled", renamed))

	h.broadcast(conns, EventOnlineUsers, users)
	h.broadcast(conns, EventUsernameChanged, UsernameChange{
		UserID:      ev.UserID,
		NewUsername: ev.Username,
	})
}

// OnDisconnect removes the connection from the active set and drops its
// registry entry, matched by socket id. The updated user list is broadcast
// only when an entry was actually removed; a connection that never joined,
// or whose entry was superseded by a rejoin elsewhere, leaves silently.
func (h *Hub) OnDisconnect(c Conn) {
	h.mu.Lock()
	if _, open := h.conns[c.SocketID()]; !open {
		h.mu.Unlock()
		return
	}
	delete(h.conns, c.SocketID())
	removed, ok := h.registry.RemoveBySocket(c.SocketID())
	var users []User
	var conns []Conn
	if ok {
		users = h.registry.List()
		conns = h.connSnapshotLocked()
		observability.RegisteredUsers.Set(float64(h.registry.Len()))
	}
	h.mu.Unlock()

	observability.ActiveConnections.Dec()
	h.log.Info("connection closed", zap.String("socket_id", c.SocketID()))

	if ok {
		h.log.Info("user left",
			zap.String("user_id", removed.UserID),
			zap.String("username", removed.Username))
		h.broadcast(conns, EventOnlineUsers, users)
	}
}

// OnlineUsers returns the current user list snapshot.
func (h *Hub) OnlineUsers() []User {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registry.List()
}

// HistorySnapshot returns the current message history, oldest first.
func (h *Hub) HistorySnapshot() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.history.Snapshot()
}

// Shutdown closes every open connection. Each close unwinds through the
// boundary's read pump, which reports the disconnect back to the hub.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	conns := h.connSnapshotLocked()
	h.mu.Unlock()

	h.log.Info("closing all connections", zap.Int("count", len(conns)))
	for _, c := range conns {
		_ = c.Close()
	}
}

func (h *Hub) connSnapshotLocked() []Conn {
	conns := make([]Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	return conns
}

func (h *Hub) reject(c Conn, event string, err error) {
	observability.EventsRejected.WithLabelValues(event).Inc()
	h.log.Warn("discarding invalid event",
		zap.String("event", event),
		zap.String("socket_id", c.SocketID()),
		zap.Error(err))
}

// unicast delivers an event to a single connection. An enqueue failure
// means the client is stalled or gone; the connection is dropped.
func (h *Hub) unicast(c Conn, event string, payload any) {
	frame, err := Encode(event, payload)
	if err != nil {
		h.log.Error("encode outbound event", zap.String("event", event), zap.Error(err))
		return
	}
	if !c.Enqueue(frame) {
		h.drop(c)
	}
}

// broadcast delivers an event to the given connection snapshot. Delivery is
// fire-and-forget per recipient: a failed enqueue drops that connection and
// never aborts delivery to the rest.
func (h *Hub) broadcast(conns []Conn, event string, payload any) {
	frame, err := Encode(event, payload)
	if err != nil {
		h.log.Error("encode outbound event", zap.String("event", event), zap.Error(err))
		return
	}

	var failed []Conn
	for _, c := range conns {
		if !c.Enqueue(frame) {
			failed = append(failed, c)
		}
	}
	observability.BroadcastsTotal.WithLabelValues(event).Inc()

	for _, c := range failed {
		h.log.Warn("dropping slow connection", zap.String("socket_id", c.SocketID()))
		h.drop(c)
	}
}

func (h *Hub) drop(c Conn) {
	_ = c.Close()
	h.OnDisconnect(c)
}

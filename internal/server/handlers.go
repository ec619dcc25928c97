// Package server exposes HTTP handlers, including WebSocket upgrades and
// health checks.
package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GranFenrir/realtime-chat/internal/chat"
)

// Handler bundles the hub, configuration, and upgrader behind the relay's
// HTTP endpoints.
type Handler struct {
	hub      *chat.Hub
	cfg      *Config
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler builds the HTTP handler set. The upgrader enforces the
// configured origin allow-list on every upgrade request.
func NewHandler(hub *chat.Hub, cfg *Config, log *zap.Logger) *Handler {
	policy := newOriginPolicy(cfg.AllowedOrigins, log)
	return &Handler{
		hub: hub,
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     policy.check,
		},
	}
}

// ServeWS upgrades the HTTP connection to WebSocket, assigns the new
// connection a socket id, and hands it to the hub.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err))
		return
	}

	client := newClient(conn, h.hub, h.cfg, h.log)
	client.start()
}

// Health responds with a plain-text liveness message.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprint(w, "chat relay is running")
}

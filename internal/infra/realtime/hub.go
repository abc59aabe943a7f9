// Package realtime tracks open websocket connections and pushes events to
// their owners.
package realtime

import (
	"log/slog"
	"sync"

	"ladx/internal/domain/entity"
	"ladx/internal/domain/service"

	"github.com/google/uuid"
)

// Conn is the subset of a websocket connection the hub needs. It is
// satisfied by *websocket.Conn.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type client struct {
	conn Conn
	mu   sync.Mutex // serializes writes to the connection
}

// Hub owns the userID to connection map. A user has at most one open
// connection; registering again replaces and closes the previous one.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*client
	logger  *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*client),
		logger:  logger,
	}
}

// compile-time check
var _ service.Pusher = (*Hub)(nil)

// Register binds a connection to a user. Any previous connection for the
// same user is closed so stale sockets cannot pile up.
func (h *Hub) Register(userID uuid.UUID, conn Conn) {
	h.mu.Lock()
	prev := h.clients[userID]
	h.clients[userID] = &client{conn: conn}
	h.mu.Unlock()

	if prev != nil {
		_ = prev.conn.Close()
		h.logger.Debug("replaced existing connection", slog.String("user_id", userID.String()))
	}
}

// Unregister removes the binding if it still points at the given
// connection. A newer connection registered by the same user is left alone.
func (h *Hub) Unregister(userID uuid.UUID, conn Conn) {
	h.mu.Lock()
	if current, ok := h.clients[userID]; ok && current.conn == conn {
		delete(h.clients, userID)
	}
	h.mu.Unlock()
}

// Push sends an event to the user's connection. Users without an open
// connection are skipped silently. A failed write drops the connection.
func (h *Hub) Push(userID uuid.UUID, event entity.Event) {
	h.mu.RLock()
	c, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return
	}

	c.mu.Lock()
	err := c.conn.WriteJSON(event)
	c.mu.Unlock()

	if err != nil {
		h.logger.Warn("websocket push failed, dropping connection",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		h.Unregister(userID, c.conn)
		_ = c.conn.Close()
	}
}

// CloseAll closes every open connection and empties the map. Runs on
// server shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[uuid.UUID]*client)
	h.mu.Unlock()

	for userID, c := range clients {
		if err := c.conn.Close(); err != nil {
			h.logger.Debug("closing connection",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
		}
	}
}

// IsOnline reports whether the user currently has an open connection.
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.clients[userID]

	return ok
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

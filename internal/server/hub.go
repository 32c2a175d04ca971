// internal/server/hub.go
package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// local dev server only
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live-reload clients and broadcasts to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	log     *zap.Logger
}

func newHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		log:     log,
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
	h.log.Debug("Live-reload client connected", zap.String("remote", conn.RemoteAddr().String()))
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
		h.log.Debug("Live-reload client disconnected")
	}
}

// count returns the number of connected clients.
func (h *Hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcast sends message to every client, dropping the ones that fail.
func (h *Hub) broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.Warn("Dropping live-reload client", zap.Error(err))
			client.Close()
			delete(h.clients, client)
		}
	}
}

// serveWs upgrades the request and holds the connection until the peer goes
// away. Clients never send anything.
func (h *Hub) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	h.register(conn)
	defer h.unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

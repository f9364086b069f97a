package broadcaster

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Broadcaster keeps the browser pages subscribed to calendar updates and pushes
// a message to all of them whenever the calendar is regenerated.
type Broadcaster struct {
	clients map[*websocket.Conn]bool
	sync.RWMutex
	upgrader websocket.Upgrader
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// the page and the socket are served by the same host, anything else only gets notices
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnections upgrades the request, sends initialMessage (if any) and then holds the
// connection until the client goes away.
func (b *Broadcaster) HandleConnections(w http.ResponseWriter, r *http.Request, initialMessage []byte) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Failed to upgrade HTTP to WebSocket", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	if initialMessage != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, initialMessage); err != nil {
			slog.Warn("Error sending initial status to browser client", "remote", conn.RemoteAddr().String(), "error", err)
			return
		}
	}

	b.Lock()
	b.clients[conn] = true
	total := len(b.clients)
	b.Unlock()
	slog.Debug("Browser client connected", "remote", conn.RemoteAddr().String(), "clients", total)

	for {
		// nothing is expected from the page, ReadMessage only tells us when it left
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.Lock()
	delete(b.clients, conn)
	total = len(b.clients)
	b.Unlock()
	slog.Debug("Browser client removed", "remote", conn.RemoteAddr().String(), "clients", total)
}

// Broadcast sends message to every connected client. Clients whose write fails are
// dropped by their own read loop.
func (b *Broadcaster) Broadcast(message []byte) {
	b.Lock()
	defer b.Unlock()

	for client := range b.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Warn("Error sending update to browser client", "remote", client.RemoteAddr().String(), "error", err)
		}
	}
}

// Count returns the number of connected clients.
func (b *Broadcaster) Count() int {
	b.RLock()
	defer b.RUnlock()
	return len(b.clients)
}

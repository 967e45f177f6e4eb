package relay

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"retrocast/engine"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 500
)

// Hub tracks all connected members and routes them into rooms.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	rooms      *Manager
	log        zerolog.Logger

	// Connection limiting, touched from HTTP handlers
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
}

// NewHub creates a hub over the given room manager.
func NewHub(rooms *Manager, log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client, 64),
		unregister: make(chan *client, 64),
		rooms:      rooms,
		log:        log,
		ipConns:    make(map[string]int),
	}
}

// CanAccept reports whether another connection from ip fits the caps.
func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	return h.ipConns[ip] < maxConnsPerIP
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister events.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

			// Announce the departure, then tear down empty rooms
			if leave, err := msgpack.Marshal(engine.PeerMsg{T: engine.PeerLeave, ID: c.id}); err == nil {
				c.room.broadcast(c, leave)
			}
			if c.room.remove(c) == 0 {
				h.rooms.drop(c.room.ID)
			}
		}
	}
}

// ClientCount returns the number of connected members.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count.
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}

package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is the envelope pushed to connected dashboard clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub tracks connected clients per user and fans out messages. Clients
// register on websocket upgrade and unregister when their pumps exit.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool // userID -> clients
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]bool),
	}
}

// Register adds a client connection for its user.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]bool)
	}
	h.clients[c.UserID][c] = true
	log.Printf("[Realtime] Client connected for user %s (%d total)", c.UserID, len(h.clients[c.UserID]))
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[c.UserID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.clients, c.UserID)
			}
		}
	}
}

// SendToUser pushes a message to every connection of a single user.
// Slow clients are dropped rather than blocking the caller.
func (h *Hub) SendToUser(userID string, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Realtime] Failed to marshal message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
		default:
			log.Printf("[Realtime] Dropping slow client for user %s", userID)
		}
	}
}

// Broadcast pushes a message to every connected client.
func (h *Hub) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Realtime] Failed to marshal message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conns := range h.clients {
		for c := range conns {
			select {
			case c.send <- payload:
			default:
			}
		}
	}
}

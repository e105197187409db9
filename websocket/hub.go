package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks active sessions and the room membership used for chat
// broadcasts. Room state is process-local and rebuilt as clients reconnect
// and re-issue join_chat; it carries no durability.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Rooms mapping (chatID -> clients)
	rooms map[uint]map[*Client]bool

	mu sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[uint]map[*Client]bool),
	}
}

// Run processes session registration and disconnect cleanup. Intended to run
// as a goroutine for the life of the server.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				// Remove the session from every room it had joined
				for chatID, clients := range h.rooms {
					if _, ok := clients[client]; ok {
						delete(clients, client)
						if len(clients) == 0 {
							delete(h.rooms, chatID)
						}
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// JoinRoom adds a client to a room. Idempotent.
func (h *Hub) JoinRoom(client *Client, chatID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[chatID]; !ok {
		h.rooms[chatID] = make(map[*Client]bool)
	}
	h.rooms[chatID][client] = true
}

// LeaveRoom removes a client from a room.
func (h *Hub) LeaveRoom(client *Client, chatID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[chatID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, chatID)
		}
	}
}

// BroadcastToRoom sends an event to every client in a room, sender included.
func (h *Hub) BroadcastToRoom(chatID uint, eventType string, payload interface{}) {
	h.broadcastToRoom(chatID, nil, eventType, payload)
}

// BroadcastToOthers sends an event to every client in a room except the
// originating session. Used for the ephemeral join/leave/typing hints.
func (h *Hub) BroadcastToOthers(origin *Client, chatID uint, eventType string, payload interface{}) {
	h.broadcastToRoom(chatID, origin, eventType, payload)
}

func (h *Hub) broadcastToRoom(chatID uint, skip *Client, eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[chatID] {
		if client == skip {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow consumer: drop this delivery rather than blocking the
			// room. The session is cleaned up when its pumps exit.
			log.Printf("dropping %s event for session %s: send buffer full", eventType, client.ID)
		}
	}
}

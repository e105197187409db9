package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 10000
)

// Event is the frame exchanged over the socket in both directions.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// inboundEvent defers payload decoding until the event type is known.
type inboundEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client is one live session. A user may hold several sessions at once, each
// with its own id. Reconnecting creates a fresh session; clients re-issue
// join_chat after connecting.
type Client struct {
	// ID identifies this session, not the user.
	ID string

	hub     *Hub
	handler *Handler
	conn    *websocket.Conn
	send    chan []byte

	userID   uint
	rooms    map[uint]bool
	roomsMux sync.RWMutex
}

// readPump pumps events from the websocket connection into the handler.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("session %s read error: %v", c.ID, err)
			}
			break
		}

		c.handler.handleEvent(c, data)
	}
}

// writePump pumps queued events to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// joinRoom records the membership on the session and in the hub.
func (c *Client) joinRoom(chatID uint) {
	c.roomsMux.Lock()
	c.rooms[chatID] = true
	c.roomsMux.Unlock()
	c.hub.JoinRoom(c, chatID)
}

func (c *Client) leaveRoom(chatID uint) {
	c.roomsMux.Lock()
	delete(c.rooms, chatID)
	c.roomsMux.Unlock()
	c.hub.LeaveRoom(c, chatID)
}

func (c *Client) inRoom(chatID uint) bool {
	c.roomsMux.RLock()
	defer c.roomsMux.RUnlock()
	return c.rooms[chatID]
}

// sendEvent queues an event for this session only.
func (c *Client) sendEvent(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("dropping %s event for session %s: send buffer full", eventType, c.ID)
	}
}

package websocket

import (
	"log"
	"net/http"
	"strconv"

	"github.com/campusmind/wellness_backend/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Handler owns the realtime chat surface: it upgrades connections, manages
// session lifecycle through the hub, and runs the persist-then-broadcast
// pipeline for inbound events.
type Handler struct {
	hub   *Hub
	store store.ChatStore
}

func NewHandler(hub *Hub, chatStore store.ChatStore) *Handler {
	return &Handler{hub: hub, store: chatStore}
}

// HandleConnection upgrades the request and registers a new session.
func (h *Handler) HandleConnection(c *gin.Context) {
	userIDStr := c.Query("user_id")
	if userIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error upgrading connection: %v", err)
		return
	}

	client := &Client{
		ID:      uuid.NewString(),
		hub:     h.hub,
		handler: h,
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  uint(userID),
		rooms:   make(map[uint]bool),
	}

	h.hub.register <- client

	go client.readPump()
	go client.writePump()
}

package websocket

import (
	"encoding/json"
	"log"
	"time"
)

type RoomPayload struct {
	ChatID uint `json:"chat_id"`
	UserID uint `json:"user_id"`
}

type TypingPayload struct {
	ChatID   uint `json:"chat_id"`
	UserID   uint `json:"user_id"`
	IsTyping bool `json:"is_typing"`
}

type NewMessagePayload struct {
	ChatID      uint    `json:"chat_id"`
	UserID      uint    `json:"user_id"`
	Content     string  `json:"content"`
	MessageType string  `json:"message_type"`
	FileURL     *string `json:"file_url"`
	FileSize    *int64  `json:"file_size"`
}

type MarkReadPayload struct {
	MessageID uint `json:"message_id"`
	ChatID    uint `json:"chat_id"`
	UserID    uint `json:"user_id"`
}

// handleEvent dispatches one inbound frame. Validation and persistence
// failures are reported to the originating session only; nothing is ever
// broadcast for a message that was not persisted first.
func (h *Handler) handleEvent(c *Client, data []byte) {
	var event inboundEvent
	if err := json.Unmarshal(data, &event); err != nil {
		log.Printf("session %s sent malformed frame: %v", c.ID, err)
		c.sendEvent("error", map[string]string{"message": "Malformed event"})
		return
	}

	switch event.Type {
	case "join_chat":
		h.handleJoinChat(c, event.Payload)
	case "leave_chat":
		h.handleLeaveChat(c, event.Payload)
	case "typing":
		h.handleTyping(c, event.Payload)
	case "new_message":
		h.handleNewMessage(c, event.Payload)
	case "mark_as_read":
		h.handleMarkAsRead(c, event.Payload)
	default:
		c.sendEvent("error", map[string]string{"message": "Unknown event type"})
	}
}

func (h *Handler) handleJoinChat(c *Client, raw json.RawMessage) {
	var payload RoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ChatID == 0 {
		c.sendEvent("error", map[string]string{"message": "chat_id is required"})
		return
	}

	c.joinRoom(payload.ChatID)

	h.hub.BroadcastToOthers(c, payload.ChatID, "user_joined", map[string]interface{}{
		"user_id":   c.userID,
		"chat_id":   payload.ChatID,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleLeaveChat(c *Client, raw json.RawMessage) {
	var payload RoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ChatID == 0 {
		c.sendEvent("error", map[string]string{"message": "chat_id is required"})
		return
	}

	c.leaveRoom(payload.ChatID)

	h.hub.BroadcastToOthers(c, payload.ChatID, "user_left", map[string]interface{}{
		"user_id":   c.userID,
		"chat_id":   payload.ChatID,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleTyping(c *Client, raw json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ChatID == 0 {
		c.sendEvent("error", map[string]string{"message": "chat_id is required"})
		return
	}

	h.hub.BroadcastToOthers(c, payload.ChatID, "typing_indicator", map[string]interface{}{
		"chat_id":   payload.ChatID,
		"user_id":   c.userID,
		"is_typing": payload.IsTyping,
	})
}

// handleNewMessage persists first, then broadcasts the canonical record to
// the whole room, sender included, so every device converges on the stored
// id and timestamp.
func (h *Handler) handleNewMessage(c *Client, raw json.RawMessage) {
	var payload NewMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ChatID == 0 || payload.Content == "" {
		c.sendEvent("error", map[string]string{"message": "chat_id and content are required"})
		return
	}

	messageID, err := h.store.CreateMessage(payload.ChatID, c.userID, payload.Content,
		payload.MessageType, payload.FileURL, payload.FileSize)
	if err != nil {
		log.Printf("session %s: error saving message: %v", c.ID, err)
		c.sendEvent("error", map[string]string{"message": "Failed to save message"})
		return
	}

	message, err := h.store.GetMessage(messageID)
	if err != nil {
		log.Printf("session %s: error loading saved message %d: %v", c.ID, messageID, err)
		c.sendEvent("error", map[string]string{"message": "Failed to load message"})
		return
	}

	h.hub.BroadcastToRoom(payload.ChatID, "new_message", map[string]interface{}{
		"chat_id": payload.ChatID,
		"message": message,
	})
}

// handleMarkAsRead updates read state and re-broadcasts unconditionally; the
// store enforces the reader-is-not-sender and already-read invariants.
func (h *Handler) handleMarkAsRead(c *Client, raw json.RawMessage) {
	var payload MarkReadPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.MessageID == 0 || payload.ChatID == 0 {
		c.sendEvent("error", map[string]string{"message": "message_id and chat_id are required"})
		return
	}

	if err := h.store.MarkRead(payload.MessageID, c.userID); err != nil {
		log.Printf("session %s: error marking message %d read: %v", c.ID, payload.MessageID, err)
		c.sendEvent("error", map[string]string{"message": "Failed to mark message as read"})
		return
	}

	h.hub.BroadcastToRoom(payload.ChatID, "message_read", map[string]interface{}{
		"message_id": payload.MessageID,
		"chat_id":    payload.ChatID,
		"user_id":    c.userID,
	})
}

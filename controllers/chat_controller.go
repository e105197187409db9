package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campusmind/wellness_backend/store"
	"github.com/campusmind/wellness_backend/websocket"
	"github.com/gin-gonic/gin"
)

// ChatController serves the request-response chat surface. Every route maps
// onto one ChatStore operation; send and mark-read additionally fan out
// through the hub so socket clients see REST-originated activity.
type ChatController struct {
	store store.ChatStore
	hub   *websocket.Hub
}

func NewChatController(chatStore store.ChatStore, hub *websocket.Hub) *ChatController {
	return &ChatController{store: chatStore, hub: hub}
}

type CreatePrivateChatInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

type CreateGroupChatInput struct {
	Name         string `json:"name" binding:"required"`
	Participants []uint `json:"participants" binding:"required"`
	Theme        string `json:"theme"`
	PhotoURL     string `json:"photo_url"`
}

type SendMessageInput struct {
	ChatID      uint    `json:"chat_id" binding:"required"`
	Content     string  `json:"content" binding:"required"`
	MessageType string  `json:"message_type"`
	FileURL     *string `json:"file_url"`
	FileSize    *int64  `json:"file_size"`
}

type AddParticipantInput struct {
	ChatID  uint `json:"chat_id" binding:"required"`
	UserID  uint `json:"user_id" binding:"required"`
	IsAdmin bool `json:"is_admin"`
}

// GetChats returns the user's chat list with unread counts and previews
func (ctl *ChatController) GetChats(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	chats, err := ctl.store.ListChatsForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch chats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": chats, "count": len(chats)})
}

// GetChat returns chat details with the active participant list
func (ctl *ChatController) GetChat(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !ctl.requireMembership(c, chatID, userID) {
		return
	}

	chat, err := ctl.store.GetChat(chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch chat"})
		return
	}

	participants, err := ctl.store.ListParticipants(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch participants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"chat":         chat,
		"participants": participants,
	}})
}

// CreatePrivateChat returns the existing private chat with the given user or
// creates one
func (ctl *ChatController) CreatePrivateChat(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreatePrivateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if input.UserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot chat with yourself"})
		return
	}

	chatID, err := ctl.store.GetOrCreatePrivateChat(userID, input.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not create chat"})
		return
	}

	chat, _ := ctl.store.GetChat(chatID)
	participants, _ := ctl.store.ListParticipants(chatID)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"chat_id":      chatID,
		"chat":         chat,
		"participants": participants,
	})
}

// CreateGroupChat creates a group with the requester as admin
func (ctl *ChatController) CreateGroupChat(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateGroupChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	chatID, err := ctl.store.CreateChat(input.Name, true, userID, input.Participants, input.Theme, input.PhotoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not create chat"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "chat_id": chatID})
}

// LeaveChat marks the requester's membership as left
func (ctl *ChatController) LeaveChat(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.store.LeaveChat(chatID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You are not a member of this chat"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to leave chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMessages returns a page of chat messages, oldest first
func (ctl *ChatController) GetMessages(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !ctl.requireMembership(c, chatID, userID) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	before, _ := strconv.ParseUint(c.Query("before"), 10, 32)

	messages, err := ctl.store.ListMessages(chatID, limit, uint(before))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": messages, "count": len(messages)})
}

// SendMessage persists the message, then broadcasts the stored record to the
// chat's room
func (ctl *ChatController) SendMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	chatID := input.ChatID
	if !ctl.requireMembership(c, chatID, userID) {
		return
	}

	messageID, err := ctl.store.CreateMessage(chatID, userID, input.Content, input.MessageType, input.FileURL, input.FileSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send message"})
		return
	}

	message, err := ctl.store.GetMessage(messageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load message"})
		return
	}

	ctl.hub.BroadcastToRoom(chatID, "new_message", gin.H{
		"chat_id": chatID,
		"message": message,
	})

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": message})
}

// MarkMessageRead marks a message read and notifies the room
func (ctl *ChatController) MarkMessageRead(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	message, err := ctl.store.GetMessage(messageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch message"})
		return
	}

	if message.UserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot mark your own message as read"})
		return
	}

	if err := ctl.store.MarkRead(messageID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to mark message as read"})
		return
	}

	ctl.hub.BroadcastToRoom(message.ChatID, "message_read", gin.H{
		"message_id": messageID,
		"chat_id":    message.ChatID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteMessage soft-deletes the requester's own message
func (ctl *ChatController) DeleteMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.store.DeleteMessage(messageID, userID); err != nil {
		if errors.Is(err, store.ErrNotAllowed) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not delete message"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetParticipants returns the chat's active participants
func (ctl *ChatController) GetParticipants(c *gin.Context) {
	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	participants, err := ctl.store.ListParticipants(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch participants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "participants": participants})
}

// AddParticipant adds or reactivates a membership
func (ctl *ChatController) AddParticipant(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input AddParticipantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !ctl.requireMembership(c, input.ChatID, userID) {
		return
	}

	if err := ctl.store.AddParticipant(input.ChatID, input.UserID, input.IsAdmin); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not add participant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ctl *ChatController) requireMembership(c *gin.Context, chatID, userID uint) bool {
	member, err := ctl.store.IsParticipant(chatID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to check membership"})
		return false
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You don't have access to this chat"})
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

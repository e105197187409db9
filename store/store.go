package store

import (
	"errors"
	"time"

	"github.com/campusmind/wellness_backend/models"
)

var (
	// ErrNotFound is returned when the chat, message or membership does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotAllowed is returned when a conditional update matched no rows
	// because the requester lacks rights over the record.
	ErrNotAllowed = errors.New("not allowed")
)

// ChatSummary is one row of a user's chat list.
type ChatSummary struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	IsGroup           bool      `json:"is_group"`
	Theme             string    `json:"theme,omitempty"`
	PhotoURL          string    `json:"photo_url,omitempty"`
	LastMessageAt     time.Time `json:"last_message_at"`
	UnreadCount       int64     `json:"unread_count"`
	LastMessage       string    `json:"last_message,omitempty"`
	LastMessageSender string    `json:"last_message_sender,omitempty"`
}

// ChatStore is the persistence boundary of the chat core. GormStore backs it
// with Postgres; MemoryStore is a drop-in fake for tests.
type ChatStore interface {
	CreateChat(name string, isGroup bool, creatorID uint, participantIDs []uint, theme, photoURL string) (uint, error)
	GetOrCreatePrivateChat(userA, userB uint) (uint, error)
	ListChatsForUser(userID uint) ([]ChatSummary, error)
	GetChat(chatID uint) (*models.Chat, error)
	AddParticipant(chatID, userID uint, isAdmin bool) error
	LeaveChat(chatID, userID uint) error
	ListParticipants(chatID uint) ([]models.ChatParticipant, error)
	IsParticipant(chatID, userID uint) (bool, error)
	CreateMessage(chatID, userID uint, content, messageType string, fileURL *string, fileSize *int64) (uint, error)
	GetMessage(messageID uint) (*models.Message, error)
	ListMessages(chatID uint, limit int, beforeID uint) ([]models.Message, error)
	MarkRead(messageID, readerID uint) error
	DeleteMessage(messageID, requesterID uint) error
}

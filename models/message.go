package models

import (
	"time"
)

const (
	MessageStatusSent = "sent"
	MessageStatusRead = "read"
)

// Message is immutable once sent except for ReadAt, Status and DeletedAt.
// Deleted messages stay in the table and are filtered out of read paths.
type Message struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ChatID      uint       `gorm:"index;not null" json:"chat_id"`
	UserID      uint       `gorm:"not null" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	MessageType string     `gorm:"size:20;default:'text'" json:"message_type"`
	FileURL     *string    `gorm:"size:512" json:"file_url,omitempty"`
	FileSize    *int64     `json:"file_size,omitempty"`
	SentAt      time.Time  `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	Status      string     `gorm:"size:20;default:'sent'" json:"status"`
}

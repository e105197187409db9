package models

import (
	"time"
)

type Chat struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	IsGroup       bool              `gorm:"not null;default:false" json:"is_group"`
	Theme         string            `gorm:"size:100" json:"theme,omitempty"`
	PhotoURL      string            `gorm:"size:512" json:"photo_url,omitempty"`
	CreatedBy     uint              `json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`
	LastMessageAt time.Time         `json:"last_message_at"`
	Participants  []ChatParticipant `json:"participants,omitempty"`
	Messages      []Message         `json:"messages,omitempty"`
}

// ChatParticipant links a user to a chat. A row with a null LeftAt is an
// active membership; re-joining clears LeftAt instead of inserting a
// duplicate row.
type ChatParticipant struct {
	ChatID   uint       `gorm:"primaryKey" json:"chat_id"`
	UserID   uint       `gorm:"primaryKey" json:"user_id"`
	User     User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IsAdmin  bool       `gorm:"not null;default:false" json:"is_admin"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
	Status   string     `gorm:"size:20;default:'active'" json:"status"`
}

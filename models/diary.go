package models

import (
	"time"
)

// DiaryEntry is a single emotion log in the user's emotion diary.
type DiaryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Emotion   string    `gorm:"size:50;not null" json:"emotion"`
	Intensity int       `gorm:"not null" json:"intensity"`
	Content   string    `gorm:"type:text" json:"content"`
	Tags      string    `gorm:"size:255" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

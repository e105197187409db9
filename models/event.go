package models

import (
	"time"
)

type Event struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	StartDatetime time.Time  `gorm:"not null" json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	Location      string     `gorm:"size:255" json:"location"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

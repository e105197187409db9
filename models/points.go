package models

import (
	"time"
)

// UserPoints is the per-user reward ledger. LastRewardDate guards the
// once-per-day coin grant.
type UserPoints struct {
	UserID         uint       `gorm:"primaryKey" json:"user_id"`
	Balance        int        `gorm:"not null;default:0" json:"balance"`
	LastRewardDate *time.Time `gorm:"type:date" json:"last_reward_date,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

package model

import (
	"time"
)

// User is a chat identity that has registered with the bot.
type User struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the placeholder title a conversation carries until the
// first user message produces a real one.
const DefaultTitle = "New Chat"

// Conversation represents a conversation
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

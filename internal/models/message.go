package models

import "time"

// Message roles within a chat transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents one entry in a session's transcript.
type ChatMessage struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	Language  string    `db:"language" json:"language"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

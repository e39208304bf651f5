package messaging

import (
	"errors"
	"strings"
	"time"
)

// Message is an immutable log entry in a conversation.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Body           string    `db:"body"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes a message before persistence.
func NewMessage(m Message) (*Message, error) {
	if m.SenderID == "" {
		return nil, errors.New("sender_id is required")
	}

	m.Body = strings.TrimSpace(m.Body)
	if m.Body == "" {
		return nil, ErrEmptyMessage
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	return &m, nil
}

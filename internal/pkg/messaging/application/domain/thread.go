package messaging

import (
	"errors"
	"time"
)

// Domain-level errors for messaging behaviors
var (
	ErrConversationNotFound = errors.New("messaging: conversation not found")
	ErrNotParticipant       = errors.New("messaging: user is not a participant in the conversation")
	ErrSelfMessage          = errors.New("messaging: sender and resolved recipient are the same user")
	ErrEmptyMessage         = errors.New("messaging: empty message body")

	// ErrConflict marks a concurrent-writer collision. Retryable with the
	// same arguments.
	ErrConflict = errors.New("messaging: transaction conflict")
)

// Thread is the in-memory aggregate of a conversation and its two
// participants. The application layer hydrates it before invoking behaviors;
// persistence stays in repositories.
type Thread struct {
	Conversation Conversation
	Buyer        Participant
	Seller       Participant
}

// HasParticipant tells whether userID is the buyer or the current seller.
func (t *Thread) HasParticipant(userID string) bool {
	if t == nil || userID == "" {
		return false
	}
	return t.Buyer.UserID == userID || t.Seller.UserID == userID
}

// PostMessage applies domain rules and returns a validated message ready to
// persist. The sender must be a participant; the message body must be present;
// a zero timestamp is set to now.
func (t *Thread) PostMessage(m Message, now time.Time) (Message, error) {
	if m.ConversationID == "" || t.Conversation.ID == "" || m.ConversationID != t.Conversation.ID {
		return Message{}, ErrConversationNotFound
	}
	if !t.HasParticipant(m.SenderID) {
		return Message{}, ErrNotParticipant
	}
	if m.CreatedAt.IsZero() {
		if now.IsZero() {
			now = time.Now().UTC()
		}
		m.CreatedAt = now.UTC()
	}
	validated, err := NewMessage(m)
	if err != nil {
		return Message{}, err
	}
	return *validated, nil
}

package usecase

import (
	"encoding/json"
	"time"
)

// Notifier fans a payload out to the live subscribers of a conversation.
// Delivery is best effort; the messaging flow never depends on it.
type Notifier interface {
	Broadcast(conversationID string, payload []byte, excludeUserID string) int
}

type messageCreatedEvent struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversation_id"`
	MessageID      string    `json:"message_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func notifyMessageCreated(n Notifier, conversationID, messageID, senderID, body string, createdAt time.Time) {
	if n == nil {
		return
	}
	payload, err := json.Marshal(messageCreatedEvent{
		Type:           "message.created",
		ConversationID: conversationID,
		MessageID:      messageID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      createdAt,
	})
	if err != nil {
		return
	}
	n.Broadcast(conversationID, payload, senderID)
}

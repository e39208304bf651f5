package messaging_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
)

func thread() *messaging.Thread {
	return &messaging.Thread{
		Conversation: messaging.Conversation{ID: "conv-1", ListingID: "lst-1", BuyerID: "buyer-1"},
		Buyer:        messaging.Participant{ConversationID: "conv-1", UserID: "buyer-1", Role: messaging.RoleBuyer},
		Seller:       messaging.Participant{ConversationID: "conv-1", UserID: "seller-1", Role: messaging.RoleSeller},
	}
}

func Test_NewMessage_trims_and_validates_body(t *testing.T) {
	msg, err := messaging.NewMessage(messaging.Message{SenderID: "u-1", Body: "  hello  "})
	assert.NoError(t, err)
	assert.Equal(t, "hello", msg.Body)
	assert.False(t, msg.CreatedAt.IsZero())

	_, err = messaging.NewMessage(messaging.Message{SenderID: "u-1", Body: "   "})
	assert.ErrorIs(t, err, messaging.ErrEmptyMessage)

	_, err = messaging.NewMessage(messaging.Message{Body: "hello"})
	assert.Error(t, err)
}

func Test_Thread_accepts_messages_from_both_participants(t *testing.T) {
	th := thread()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for _, sender := range []string{"buyer-1", "seller-1"} {
		msg, err := th.PostMessage(messaging.Message{
			ConversationID: "conv-1",
			SenderID:       sender,
			Body:           "hi there",
		}, now)

		assert.NoError(t, err)
		assert.Equal(t, sender, msg.SenderID)
		assert.Equal(t, now, msg.CreatedAt)
	}
}

func Test_Thread_rejects_non_participants(t *testing.T) {
	_, err := thread().PostMessage(messaging.Message{
		ConversationID: "conv-1",
		SenderID:       "stranger",
		Body:           "let me in",
	}, time.Now())

	assert.ErrorIs(t, err, messaging.ErrNotParticipant)
}

func Test_Thread_rejects_mismatched_conversation(t *testing.T) {
	_, err := thread().PostMessage(messaging.Message{
		ConversationID: "conv-other",
		SenderID:       "buyer-1",
		Body:           "hi",
	}, time.Now())

	assert.ErrorIs(t, err, messaging.ErrConversationNotFound)
}

func Test_Thread_participant_check(t *testing.T) {
	th := thread()

	assert.True(t, th.HasParticipant("buyer-1"))
	assert.True(t, th.HasParticipant("seller-1"))
	assert.False(t, th.HasParticipant("stranger"))
	assert.False(t, th.HasParticipant(""))

	var nilThread *messaging.Thread
	assert.False(t, nilThread.HasParticipant("buyer-1"))
}

package messaging

// ParticipantRole is a participant's side of the conversation.
type ParticipantRole string

const (
	RoleBuyer  ParticipantRole = "buyer"
	RoleSeller ParticipantRole = "seller"
)

// Participant is one side of a conversation. Every conversation has exactly one
// buyer row and one seller row; the seller row's UserID is the only field an
// ownership transfer ever rewrites.
type Participant struct {
	ConversationID string          `db:"conversation_id"`
	UserID         string          `db:"user_id"`
	Role           ParticipantRole `db:"participant_role"`
}

package ownership

import "time"

// OwnershipChange is one immutable audit row recording a conversation's
// seller-side reassignment. Rows are append-only.
type OwnershipChange struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	OldOwnerID     *string   `db:"old_owner_id"`
	NewOwnerID     string    `db:"new_owner_id"`
	OwnerType      OwnerType `db:"owner_type"`
	Reason         string    `db:"reason"`
	ChangedBy      string    `db:"changed_by"`
	CreatedAt      time.Time `db:"created_at"`
}

package messaging

import "time"

// Conversation is a thread tied to exactly one listing and one buyer. The
// (ListingID, BuyerID) pair is unique: a buyer re-messaging the same listing
// always lands in the same thread regardless of who currently answers for the
// seller side.
type Conversation struct {
	ID        string    `db:"id"`
	ListingID string    `db:"listing_id"`
	BuyerID   string    `db:"buyer_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

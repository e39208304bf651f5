package repository

import (
	"context"
	"time"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
)

// AppendToListingInput carries one buyer message aimed at a listing, with the
// seller side already resolved by the caller.
type AppendToListingInput struct {
	ListingID string
	BuyerID   string
	SellerID  string
	Body      string
	CreatedAt time.Time
}

// AppendToListingResult reports where the message landed. Created is true when
// a new conversation row was inserted rather than reused.
type AppendToListingResult struct {
	ConversationID string
	MessageID      string
	Created        bool
}

// MessageRepository defines persistence operations for the messaging domain.
//
// AppendToListing runs as one transaction: conversation find-or-create,
// participant rows and the message insert commit together. Concurrent first
// messages for the same (listing, buyer) are serialized by the conversation
// table's unique key, so exactly one conversation ever exists per pair.
type MessageRepository interface {
	AppendToListing(ctx context.Context, in AppendToListingInput) (AppendToListingResult, error)
	GetThread(ctx context.Context, conversationID string) (messaging.Thread, error)
	SaveMessage(ctx context.Context, m messaging.Message) (string, error)
	GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]messaging.Message, error)

	// MarkRead flags every message in the conversation not authored by userID
	// as read, returning the number of rows touched.
	MarkRead(ctx context.Context, conversationID, userID string) (int64, error)
}

package repository

import (
	"context"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
)

// TransferInput identifies the member whose listings are being reassigned and
// who asked for it.
type TransferInput struct {
	MemberID    string
	CompanyID   string
	PerformedBy string
	Reason      string
}

// TransferResult reports what a transfer touched. ConversationIDs lists every
// conversation whose seller participant actually changed (skipped no-ops are
// not included).
type TransferResult struct {
	TransferredCount int
	NewOwnerID       string
	ConversationIDs  []string
}

// OwnershipRepository defines persistence operations for ownership state,
// handler configuration and the audit trail.
//
// TransferToHandler and TransferToOriginalSeller are each executed as one
// database transaction: listing owner columns, conversation seller rows and
// audit inserts become visible together or not at all.
type OwnershipRepository interface {
	GetListing(ctx context.Context, listingID string) (ownership.Listing, error)
	GetMember(ctx context.Context, companyID, memberID string) (ownership.CompanyMember, error)
	GetCompanyName(ctx context.Context, companyID string) (string, error)

	// TopHandler returns the contact of the eligible handler with the lowest
	// priority order, or ErrNoHandlersAvailable.
	TopHandler(ctx context.Context, companyID string) (ownership.Contact, error)

	ListHandlers(ctx context.Context, companyID string) ([]ownership.HandlerAssignment, error)
	ReplaceHandlers(ctx context.Context, companyID string, assignments []ownership.HandlerAssignment) error

	// TransferToHandler reassigns every listing owned individually by the
	// member within the company to the company's top-priority handler.
	// Fails with ErrNoHandlersAvailable before mutating anything.
	TransferToHandler(ctx context.Context, in TransferInput) (TransferResult, error)

	// TransferToOriginalSeller returns every company-handler-owned listing
	// originally sold by the member back to that member. Fails with
	// ErrMemberNotActive unless the member's status is active.
	TransferToOriginalSeller(ctx context.Context, in TransferInput) (TransferResult, error)

	OwnershipHistory(ctx context.Context, conversationID string, limit, offset int) ([]ownership.OwnershipChange, error)
}

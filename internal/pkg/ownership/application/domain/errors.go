package ownership

import "errors"

// Domain-level errors for ownership resolution and transfer.
var (
	ErrListingNotFound     = errors.New("ownership: listing not found")
	ErrCompanyNotFound     = errors.New("ownership: company not found")
	ErrMemberNotFound      = errors.New("ownership: company member not found")
	ErrMemberNotActive     = errors.New("ownership: company member is not active")
	ErrNoRecipient         = errors.New("ownership: no eligible recipient for listing")
	ErrNoHandlersAvailable = errors.New("ownership: company has no eligible message handler")

	// ErrConflict marks a concurrent-writer collision (unique violation or
	// serialization failure). Safe to retry with the same arguments.
	ErrConflict = errors.New("ownership: transaction conflict")
)

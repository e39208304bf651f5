package repository

import (
	"context"
	"errors"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
)

// ErrUserNotFound is returned when no user exists for the given id.
var ErrUserNotFound = errors.New("directory: user not found")

// UserDirectory resolves user ids to contact details. Identity itself lives in
// the auth service; this core only needs name and email for addressing.
type UserDirectory interface {
	Contact(ctx context.Context, userID string) (ownership.Contact, error)
}

package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/repository/port"
)

// PgUserDirectory looks up contact details in the app_user table.
type PgUserDirectory struct {
	pool *pgxpool.Pool
}

func NewPgUserDirectory(pool *pgxpool.Pool) *PgUserDirectory {
	return &PgUserDirectory{pool: pool}
}

var _ repository.UserDirectory = (*PgUserDirectory)(nil)

func (d *PgUserDirectory) Contact(ctx context.Context, userID string) (ownership.Contact, error) {
	var c ownership.Contact
	if d == nil || d.pool == nil {
		return c, errors.New("PgUserDirectory: nil pool")
	}
	err := d.pool.QueryRow(ctx, `
		SELECT id::text, full_name, email FROM app_user WHERE id = $1::uuid
	`, userID).Scan(&c.ID, &c.Name, &c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, repository.ErrUserNotFound
	}
	if err != nil {
		return c, err
	}
	return c, nil
}

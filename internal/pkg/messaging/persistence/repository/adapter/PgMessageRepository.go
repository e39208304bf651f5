package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/port"
)

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

var _ repository.MessageRepository = (*PgMessageRepository)(nil)

// AppendToListing finds or creates the conversation for (listing, buyer) and
// appends the message, all in one transaction. The unique key on
// conversation (listing_id, buyer_id) makes concurrent first messages safe:
// the losing inserter simply reuses the winner's row.
func (r *PgMessageRepository) AppendToListing(ctx context.Context, in repository.AppendToListingInput) (repository.AppendToListingResult, error) {
	var res repository.AppendToListingResult
	if r == nil || r.pool == nil {
		return res, errors.New("PgMessageRepository: nil pool")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return res, translateErr(err)
	}
	defer tx.Rollback(ctx)

	var conversationID string
	err = tx.QueryRow(ctx, `
		INSERT INTO conversation (listing_id, buyer_id, created_at, updated_at)
		VALUES ($1::uuid, $2::uuid, $3, $3)
		ON CONFLICT (listing_id, buyer_id) DO NOTHING
		RETURNING id::text
	`, in.ListingID, in.BuyerID, in.CreatedAt).Scan(&conversationID)
	switch {
	case err == nil:
		res.Created = true
		_, err = tx.Exec(ctx, `
			INSERT INTO conversation_participant (conversation_id, participant_role, user_id)
			VALUES ($1::uuid, 'buyer', $2::uuid), ($1::uuid, 'seller', $3::uuid)
		`, conversationID, in.BuyerID, in.SellerID)
		if err != nil {
			return repository.AppendToListingResult{}, translateErr(err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		// Conversation already exists for this (listing, buyer); reuse it as-is,
		// whatever seller identity it currently points at.
		err = tx.QueryRow(ctx, `
			SELECT id::text FROM conversation
			WHERE listing_id = $1::uuid AND buyer_id = $2::uuid
		`, in.ListingID, in.BuyerID).Scan(&conversationID)
		if err != nil {
			return repository.AppendToListingResult{}, translateErr(err)
		}
	default:
		return repository.AppendToListingResult{}, translateErr(err)
	}
	res.ConversationID = conversationID

	err = tx.QueryRow(ctx, `
		INSERT INTO message (conversation_id, sender_id, body, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text
	`, conversationID, in.BuyerID, in.Body, in.CreatedAt).Scan(&res.MessageID)
	if err != nil {
		return repository.AppendToListingResult{}, translateErr(err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE conversation SET updated_at = GREATEST(updated_at, $2) WHERE id = $1::uuid
	`, conversationID, in.CreatedAt)
	if err != nil {
		return repository.AppendToListingResult{}, translateErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return repository.AppendToListingResult{}, translateErr(err)
	}
	return res, nil
}

func (r *PgMessageRepository) GetThread(ctx context.Context, conversationID string) (messaging.Thread, error) {
	var t messaging.Thread
	if r == nil || r.pool == nil {
		return t, errors.New("PgMessageRepository: nil pool")
	}

	err := r.pool.QueryRow(ctx, `
		SELECT id::text, listing_id::text, buyer_id::text, created_at, updated_at
		FROM conversation
		WHERE id = $1::uuid
	`, conversationID).Scan(&t.Conversation.ID, &t.Conversation.ListingID, &t.Conversation.BuyerID,
		&t.Conversation.CreatedAt, &t.Conversation.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, messaging.ErrConversationNotFound
	}
	if err != nil {
		return t, translateErr(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT conversation_id::text, user_id::text, participant_role
		FROM conversation_participant
		WHERE conversation_id = $1::uuid
	`, conversationID)
	if err != nil {
		return t, translateErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var p messaging.Participant
		if err := rows.Scan(&p.ConversationID, &p.UserID, &p.Role); err != nil {
			return t, err
		}
		switch p.Role {
		case messaging.RoleBuyer:
			t.Buyer = p
		case messaging.RoleSeller:
			t.Seller = p
		}
	}
	if rows.Err() != nil {
		return t, rows.Err()
	}
	return t, nil
}

func (r *PgMessageRepository) SaveMessage(ctx context.Context, m messaging.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgMessageRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO message (conversation_id, sender_id, body, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text
	`, m.ConversationID, m.SenderID, m.Body, m.CreatedAt).Scan(&id)
	if err != nil {
		return "", translateErr(err)
	}
	return id, nil
}

func (r *PgMessageRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, body, is_read, created_at
		FROM message
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var msgs []messaging.Message
	for rows.Next() {
		var msg messaging.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgMessageRepository) MarkRead(ctx context.Context, conversationID string, userID string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE message
		SET is_read = true
		WHERE conversation_id = $1::uuid AND sender_id <> $2::uuid AND NOT is_read
	`, conversationID, userID)
	if err != nil {
		return 0, translateErr(err)
	}
	return ct.RowsAffected(), nil
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "40001":
			return fmt.Errorf("%w: %s", messaging.ErrConflict, pgErr.Message)
		}
	}
	return err
}

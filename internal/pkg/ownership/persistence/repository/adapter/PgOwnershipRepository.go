package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/port"
)

// topHandlerSQL implements the handler selection rule from the domain package
// (ownership.SelectHandler): eligible assignments ordered by priority, ties by
// member id. Both transfer paths and the resolver use this same query.
const topHandlerSQL = `
	SELECT u.id::text, u.full_name, u.email
	FROM message_handler_assignment mha
	JOIN company_member cm ON cm.id = mha.member_id AND cm.company_id = mha.company_id
	JOIN app_user u ON u.id = mha.member_id
	WHERE mha.company_id = $1::uuid
	  AND mha.is_active
	  AND mha.can_handle_transferred
	  AND cm.member_status = 'active'
	ORDER BY mha.priority_order, mha.member_id
	LIMIT 1`

type PgOwnershipRepository struct {
	pool *pgxpool.Pool
}

func NewPgOwnershipRepository(pool *pgxpool.Pool) *PgOwnershipRepository {
	return &PgOwnershipRepository{pool: pool}
}

var _ repository.OwnershipRepository = (*PgOwnershipRepository)(nil)

func (r *PgOwnershipRepository) GetListing(ctx context.Context, listingID string) (ownership.Listing, error) {
	var l ownership.Listing
	if r == nil || r.pool == nil {
		return l, errors.New("PgOwnershipRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, current_owner_id::text, current_owner_type,
		       original_seller_id::text, company_id::text, updated_at
		FROM listing
		WHERE id = $1::uuid
	`, listingID).Scan(&l.ID, &l.CurrentOwnerID, &l.CurrentOwnerType, &l.OriginalSellerID, &l.CompanyID, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return l, ownership.ErrListingNotFound
	}
	if err != nil {
		return l, translateErr(err)
	}
	return l, nil
}

func (r *PgOwnershipRepository) GetMember(ctx context.Context, companyID, memberID string) (ownership.CompanyMember, error) {
	var m ownership.CompanyMember
	if r == nil || r.pool == nil {
		return m, errors.New("PgOwnershipRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, company_id::text, member_role, member_status
		FROM company_member
		WHERE id = $1::uuid AND company_id = $2::uuid
	`, memberID, companyID).Scan(&m.ID, &m.CompanyID, &m.Role, &m.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, ownership.ErrMemberNotFound
	}
	if err != nil {
		return m, translateErr(err)
	}
	return m, nil
}

func (r *PgOwnershipRepository) GetCompanyName(ctx context.Context, companyID string) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgOwnershipRepository: nil pool")
	}
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM company WHERE id = $1::uuid`, companyID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ownership.ErrCompanyNotFound
	}
	if err != nil {
		return "", translateErr(err)
	}
	return name, nil
}

func (r *PgOwnershipRepository) TopHandler(ctx context.Context, companyID string) (ownership.Contact, error) {
	var c ownership.Contact
	if r == nil || r.pool == nil {
		return c, errors.New("PgOwnershipRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, topHandlerSQL, companyID).Scan(&c.ID, &c.Name, &c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, ownership.ErrNoHandlersAvailable
	}
	if err != nil {
		return c, translateErr(err)
	}
	return c, nil
}

func (r *PgOwnershipRepository) ListHandlers(ctx context.Context, companyID string) ([]ownership.HandlerAssignment, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgOwnershipRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, company_id::text, member_id::text,
		       priority_order, is_active, can_handle_transferred
		FROM message_handler_assignment
		WHERE company_id = $1::uuid
		ORDER BY priority_order, member_id
	`, companyID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []ownership.HandlerAssignment
	for rows.Next() {
		var h ownership.HandlerAssignment
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.MemberID, &h.PriorityOrder, &h.IsActive, &h.CanHandleTransferred); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// ReplaceHandlers swaps a company's entire handler configuration in one
// transaction.
func (r *PgOwnershipRepository) ReplaceHandlers(ctx context.Context, companyID string, assignments []ownership.HandlerAssignment) error {
	if r == nil || r.pool == nil {
		return errors.New("PgOwnershipRepository: nil pool")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return translateErr(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM message_handler_assignment WHERE company_id = $1::uuid`, companyID); err != nil {
		return translateErr(err)
	}
	for _, h := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO message_handler_assignment
				(company_id, member_id, priority_order, is_active, can_handle_transferred)
			VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		`, companyID, h.MemberID, h.PriorityOrder, h.IsActive, h.CanHandleTransferred)
		if err != nil {
			return translateErr(err)
		}
	}
	return translateErr(tx.Commit(ctx))
}

func (r *PgOwnershipRepository) TransferToHandler(ctx context.Context, in repository.TransferInput) (repository.TransferResult, error) {
	var res repository.TransferResult
	if r == nil || r.pool == nil {
		return res, errors.New("PgOwnershipRepository: nil pool")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return res, translateErr(err)
	}
	defer tx.Rollback(ctx)

	// Handler selection happens inside the transaction so a removal never
	// commits against a handler that just became ineligible.
	var handler ownership.Contact
	err = tx.QueryRow(ctx, topHandlerSQL, in.CompanyID).Scan(&handler.ID, &handler.Name, &handler.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return res, ownership.ErrNoHandlersAvailable
	}
	if err != nil {
		return res, translateErr(err)
	}

	listingIDs, err := lockListings(ctx, tx, `
		SELECT id::text FROM listing
		WHERE current_owner_id = $1::uuid
		  AND company_id = $2::uuid
		  AND current_owner_type = 'individual'
		FOR UPDATE
	`, in.MemberID, in.CompanyID)
	if err != nil {
		return res, err
	}

	for _, listingID := range listingIDs {
		changed, err := reassignConversations(ctx, tx, listingID, handler.ID, ownership.OwnerTypeCompanyHandler, in.Reason, in.PerformedBy)
		if err != nil {
			return res, err
		}
		res.ConversationIDs = append(res.ConversationIDs, changed...)
		if err := updateListingOwner(ctx, tx, listingID, handler.ID, ownership.OwnerTypeCompanyHandler); err != nil {
			return res, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return repository.TransferResult{}, translateErr(err)
	}
	res.TransferredCount = len(listingIDs)
	res.NewOwnerID = handler.ID
	return res, nil
}

func (r *PgOwnershipRepository) TransferToOriginalSeller(ctx context.Context, in repository.TransferInput) (repository.TransferResult, error) {
	var res repository.TransferResult
	if r == nil || r.pool == nil {
		return res, errors.New("PgOwnershipRepository: nil pool")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return res, translateErr(err)
	}
	defer tx.Rollback(ctx)

	var status ownership.MemberStatus
	err = tx.QueryRow(ctx, `
		SELECT member_status FROM company_member
		WHERE id = $1::uuid AND company_id = $2::uuid
	`, in.MemberID, in.CompanyID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return res, ownership.ErrMemberNotFound
	}
	if err != nil {
		return res, translateErr(err)
	}
	if status != ownership.MemberStatusActive {
		return res, ownership.ErrMemberNotActive
	}

	listingIDs, err := lockListings(ctx, tx, `
		SELECT id::text FROM listing
		WHERE original_seller_id = $1::uuid
		  AND company_id = $2::uuid
		  AND current_owner_type = 'company_handler'
		FOR UPDATE
	`, in.MemberID, in.CompanyID)
	if err != nil {
		return res, err
	}

	for _, listingID := range listingIDs {
		changed, err := reassignConversations(ctx, tx, listingID, in.MemberID, ownership.OwnerTypeIndividual, in.Reason, in.PerformedBy)
		if err != nil {
			return res, err
		}
		res.ConversationIDs = append(res.ConversationIDs, changed...)
		if err := updateListingOwner(ctx, tx, listingID, in.MemberID, ownership.OwnerTypeIndividual); err != nil {
			return res, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return repository.TransferResult{}, translateErr(err)
	}
	res.TransferredCount = len(listingIDs)
	res.NewOwnerID = in.MemberID
	return res, nil
}

func (r *PgOwnershipRepository) OwnershipHistory(ctx context.Context, conversationID string, limit, offset int) ([]ownership.OwnershipChange, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgOwnershipRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, old_owner_id::text, new_owner_id::text,
		       owner_type, reason, changed_by::text, created_at
		FROM ownership_change
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []ownership.OwnershipChange
	for rows.Next() {
		var c ownership.OwnershipChange
		if err := rows.Scan(&c.ID, &c.ConversationID, &c.OldOwnerID, &c.NewOwnerID, &c.OwnerType, &c.Reason, &c.ChangedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// lockListings collects the ids of the affected listings, locking them for the
// rest of the transaction.
func lockListings(ctx context.Context, tx pgx.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return ids, nil
}

// reassignConversations rewrites the seller participant of every conversation
// on the listing whose seller differs from newOwnerID, appending one audit row
// per change. Conversations already pointing at newOwnerID are skipped, which
// makes re-running a transfer a no-op.
func reassignConversations(ctx context.Context, tx pgx.Tx, listingID, newOwnerID string, ownerType ownership.OwnerType, reason, changedBy string) ([]string, error) {
	type sellerRow struct {
		conversationID string
		sellerID       string
	}

	rows, err := tx.Query(ctx, `
		SELECT c.id::text, cp.user_id::text
		FROM conversation c
		JOIN conversation_participant cp
		  ON cp.conversation_id = c.id AND cp.participant_role = 'seller'
		WHERE c.listing_id = $1::uuid
		FOR UPDATE OF cp
	`, listingID)
	if err != nil {
		return nil, translateErr(err)
	}
	sellers := make([]sellerRow, 0)
	for rows.Next() {
		var s sellerRow
		if err := rows.Scan(&s.conversationID, &s.sellerID); err != nil {
			rows.Close()
			return nil, err
		}
		sellers = append(sellers, s)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	var changed []string
	for _, s := range sellers {
		if s.sellerID == newOwnerID {
			continue
		}
		_, err := tx.Exec(ctx, `
			UPDATE conversation_participant
			SET user_id = $2::uuid
			WHERE conversation_id = $1::uuid AND participant_role = 'seller'
		`, s.conversationID, newOwnerID)
		if err != nil {
			return nil, translateErr(err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO ownership_change
				(conversation_id, old_owner_id, new_owner_id, owner_type, reason, changed_by)
			VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6::uuid)
		`, s.conversationID, s.sellerID, newOwnerID, ownerType, reason, changedBy)
		if err != nil {
			return nil, translateErr(err)
		}
		changed = append(changed, s.conversationID)
	}
	return changed, nil
}

func updateListingOwner(ctx context.Context, tx pgx.Tx, listingID, ownerID string, ownerType ownership.OwnerType) error {
	_, err := tx.Exec(ctx, `
		UPDATE listing
		SET current_owner_id = $2::uuid, current_owner_type = $3, updated_at = now()
		WHERE id = $1::uuid
	`, listingID, ownerID, ownerType)
	return translateErr(err)
}

// translateErr maps concurrent-writer collisions (unique violation, serialization
// failure) to the retryable domain conflict error. Other errors pass through.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "40001":
			return fmt.Errorf("%w: %s", ownership.ErrConflict, pgErr.Message)
		}
	}
	return err
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/port"
)

// ReassignForMemberRemovalInput identifies the removed member and the admin or
// system actor performing the removal.
type ReassignForMemberRemovalInput struct {
	MemberID    string
	CompanyID   string
	PerformedBy string
}

// ReassignForMemberRemovalOutput reports how many listings moved and to whom.
type ReassignForMemberRemovalOutput struct {
	TransferredCount int
	NewHandlerID     string
}

// ReassignForMemberRemovalUseCase moves every listing individually owned by a
// removed member to the company's top-priority handler, rewriting the seller
// participant of each affected conversation and appending one audit row per
// change. The whole member-level operation is a single transaction: a removal
// with no eligible handler fails without mutating anything, because an
// unroutable listing is worse than a blocked removal.
type ReassignForMemberRemovalUseCase struct {
	Repo repository.OwnershipRepository
	Log  *slog.Logger
}

func NewReassignForMemberRemovalUseCase(repo repository.OwnershipRepository, log *slog.Logger) *ReassignForMemberRemovalUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ReassignForMemberRemovalUseCase{Repo: repo, Log: log}
}

// Execute performs the transfer. Re-running with the same arguments is a no-op:
// listings already owned by a handler are not selected again and conversations
// already pointing at the handler are skipped without audit rows.
func (uc *ReassignForMemberRemovalUseCase) Execute(ctx context.Context, in ReassignForMemberRemovalInput) (ReassignForMemberRemovalOutput, error) {
	var out ReassignForMemberRemovalOutput
	if in.MemberID == "" || in.CompanyID == "" || in.PerformedBy == "" {
		return out, fmt.Errorf("memberId, companyId and performedBy are required")
	}

	res, err := uc.Repo.TransferToHandler(ctx, repository.TransferInput{
		MemberID:    in.MemberID,
		CompanyID:   in.CompanyID,
		PerformedBy: in.PerformedBy,
		Reason:      fmt.Sprintf("Member removal: %s", in.MemberID),
	})
	if err != nil {
		if errors.Is(err, ownership.ErrNoHandlersAvailable) || errors.Is(err, ownership.ErrConflict) {
			return out, err
		}
		return out, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Log.Info("listings reassigned for member removal",
		"member_id", in.MemberID,
		"company_id", in.CompanyID,
		"new_handler_id", res.NewOwnerID,
		"transferred", res.TransferredCount,
		"conversations_changed", len(res.ConversationIDs),
	)

	out.TransferredCount = res.TransferredCount
	out.NewHandlerID = res.NewOwnerID
	return out, nil
}

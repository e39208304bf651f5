package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/port"
)

// ReassignForMemberReactivationInput identifies the reactivated member.
type ReassignForMemberReactivationInput struct {
	MemberID    string
	CompanyID   string
	PerformedBy string
}

// ReassignForMemberReactivationOutput reports how many listings returned.
type ReassignForMemberReactivationOutput struct {
	TransferredCount int
}

// ReassignForMemberReactivationUseCase returns handler-owned listings to their
// original seller once that member is active again. Unlike removal there is no
// handler-availability requirement: the member being active is verified inside
// the transfer transaction, and that is the only precondition.
type ReassignForMemberReactivationUseCase struct {
	Repo repository.OwnershipRepository
	Log  *slog.Logger
}

func NewReassignForMemberReactivationUseCase(repo repository.OwnershipRepository, log *slog.Logger) *ReassignForMemberReactivationUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ReassignForMemberReactivationUseCase{Repo: repo, Log: log}
}

func (uc *ReassignForMemberReactivationUseCase) Execute(ctx context.Context, in ReassignForMemberReactivationInput) (ReassignForMemberReactivationOutput, error) {
	var out ReassignForMemberReactivationOutput
	if in.MemberID == "" || in.CompanyID == "" || in.PerformedBy == "" {
		return out, fmt.Errorf("memberId, companyId and performedBy are required")
	}

	res, err := uc.Repo.TransferToOriginalSeller(ctx, repository.TransferInput{
		MemberID:    in.MemberID,
		CompanyID:   in.CompanyID,
		PerformedBy: in.PerformedBy,
		Reason:      fmt.Sprintf("Member reactivation: %s", in.MemberID),
	})
	if err != nil {
		if errors.Is(err, ownership.ErrMemberNotFound) ||
			errors.Is(err, ownership.ErrMemberNotActive) ||
			errors.Is(err, ownership.ErrConflict) {
			return out, err
		}
		return out, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Log.Info("listings returned for member reactivation",
		"member_id", in.MemberID,
		"company_id", in.CompanyID,
		"transferred", res.TransferredCount,
		"conversations_changed", len(res.ConversationIDs),
	)

	out.TransferredCount = res.TransferredCount
	return out, nil
}

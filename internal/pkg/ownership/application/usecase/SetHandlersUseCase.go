package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/port"
)

// HandlerSpec is one requested handler assignment.
type HandlerSpec struct {
	MemberID             string
	Priority             int
	IsActive             bool
	CanHandleTransferred bool
}

// SetHandlersInput replaces a company's entire handler configuration.
type SetHandlersInput struct {
	CompanyID string
	Handlers  []HandlerSpec
}

// SetHandlersUseCase validates and stores the ordered handler list for a
// company. The list is replaced wholesale so priorities stay unambiguous.
type SetHandlersUseCase struct {
	Repo repository.OwnershipRepository
}

func NewSetHandlersUseCase(repo repository.OwnershipRepository) *SetHandlersUseCase {
	return &SetHandlersUseCase{Repo: repo}
}

func (uc *SetHandlersUseCase) Execute(ctx context.Context, in SetHandlersInput) error {
	if in.CompanyID == "" {
		return fmt.Errorf("companyId is required")
	}

	seen := make(map[string]struct{}, len(in.Handlers))
	for _, h := range in.Handlers {
		if h.MemberID == "" {
			return fmt.Errorf("memberId is required for every handler")
		}
		if h.Priority < 1 {
			return fmt.Errorf("priority must be >= 1 for member %s", h.MemberID)
		}
		if _, dup := seen[h.MemberID]; dup {
			return fmt.Errorf("duplicate handler for member %s", h.MemberID)
		}
		seen[h.MemberID] = struct{}{}
	}

	assignments := lo.Map(in.Handlers, func(h HandlerSpec, _ int) ownership.HandlerAssignment {
		return ownership.HandlerAssignment{
			CompanyID:            in.CompanyID,
			MemberID:             h.MemberID,
			PriorityOrder:        h.Priority,
			IsActive:             h.IsActive,
			CanHandleTransferred: h.CanHandleTransferred,
		}
	})

	if err := uc.Repo.ReplaceHandlers(ctx, in.CompanyID, assignments); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

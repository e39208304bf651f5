package usecase

import (
	"context"
	"fmt"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/port"
)

// GetHandlersUseCase returns a company's handler assignments in priority order.
type GetHandlersUseCase struct {
	Repo repository.OwnershipRepository
}

func NewGetHandlersUseCase(repo repository.OwnershipRepository) *GetHandlersUseCase {
	return &GetHandlersUseCase{Repo: repo}
}

func (uc *GetHandlersUseCase) Execute(ctx context.Context, companyID string) ([]ownership.HandlerAssignment, error) {
	if companyID == "" {
		return nil, fmt.Errorf("companyId is required")
	}
	handlers, err := uc.Repo.ListHandlers(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return handlers, nil
}

package usecase

import (
	"context"
	"fmt"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/port"
)

// GetOwnershipHistoryInput carries pagination for the audit query.
type GetOwnershipHistoryInput struct {
	ConversationID string
	Limit          int
	Offset         int
}

// GetOwnershipHistoryUseCase reads a conversation's ownership audit trail,
// newest change first.
type GetOwnershipHistoryUseCase struct {
	Repo repository.OwnershipRepository
}

func NewGetOwnershipHistoryUseCase(repo repository.OwnershipRepository) *GetOwnershipHistoryUseCase {
	return &GetOwnershipHistoryUseCase{Repo: repo}
}

func (uc *GetOwnershipHistoryUseCase) Execute(ctx context.Context, in GetOwnershipHistoryInput) ([]ownership.OwnershipChange, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("conversationId is required")
	}
	changes, err := uc.Repo.OwnershipHistory(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return changes, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/port"
)

// MarkReadInput identifies the conversation and the reader.
type MarkReadInput struct {
	ConversationID string
	UserID         string
}

// MarkReadUseCase marks every message not authored by the reader as read.
// Only participants may mark a conversation read.
type MarkReadUseCase struct {
	Repo repository.MessageRepository
}

func NewMarkReadUseCase(repo repository.MessageRepository) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo}
}

// Execute returns the number of messages flipped to read.
func (uc *MarkReadUseCase) Execute(ctx context.Context, in MarkReadInput) (int64, error) {
	if in.ConversationID == "" || in.UserID == "" {
		return 0, fmt.Errorf("conversationId and userId are required")
	}

	thread, err := uc.Repo.GetThread(ctx, in.ConversationID)
	if errors.Is(err, messaging.ErrConversationNotFound) {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !thread.HasParticipant(in.UserID) {
		return 0, messaging.ErrNotParticipant
	}

	n, err := uc.Repo.MarkRead(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return n, nil
}

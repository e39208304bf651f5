package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/port"
)

// GetMessageInput carries parameters to fetch messages of a conversation.
type GetMessageInput struct {
	ConversationID string
	UserID         string
	Limit          int
	Offset         int
}

// GetMessageUseCase fetches messages for a conversation the user participates in.
type GetMessageUseCase struct {
	Repo repository.MessageRepository
}

func NewGetMessageUseCase(repo repository.MessageRepository) *GetMessageUseCase {
	return &GetMessageUseCase{Repo: repo}
}

// Execute returns messages newest-first honoring limit/offset.
func (uc *GetMessageUseCase) Execute(ctx context.Context, in GetMessageInput) ([]messaging.Message, error) {
	if in.ConversationID == "" || in.UserID == "" {
		return nil, fmt.Errorf("conversationId and userId are required")
	}

	thread, err := uc.Repo.GetThread(ctx, in.ConversationID)
	if errors.Is(err, messaging.ErrConversationNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !thread.HasParticipant(in.UserID) {
		return nil, messaging.ErrNotParticipant
	}

	msgs, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/port"
)

// JoinConversationInput validates a request to attach a user session to a
// conversation room.
type JoinConversationInput struct {
	ConversationID string
	UserID         string
}

// JoinConversationUseCase ensures the user belongs to the conversation before
// joining the realtime room.
type JoinConversationUseCase struct {
	Repo repository.MessageRepository
}

func NewJoinConversationUseCase(repo repository.MessageRepository) *JoinConversationUseCase {
	return &JoinConversationUseCase{Repo: repo}
}

func (uc *JoinConversationUseCase) Execute(ctx context.Context, in JoinConversationInput) error {
	if in.ConversationID == "" || in.UserID == "" {
		return fmt.Errorf("conversation_id and user_id are required")
	}

	thread, err := uc.Repo.GetThread(ctx, in.ConversationID)
	if errors.Is(err, messaging.ErrConversationNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !thread.HasParticipant(in.UserID) {
		return messaging.ErrNotParticipant
	}
	return nil
}

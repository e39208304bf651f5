package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/port"
)

// SendMessageInput carries a message aimed at an existing conversation.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Body           string
	CreatedAt      time.Time
}

// SendMessageUseCase appends a message to an existing conversation. The sender
// must be the buyer or the current seller-side participant.
type SendMessageUseCase struct {
	Repo   repository.MessageRepository
	Notify Notifier // optional
}

func NewSendMessageUseCase(repo repository.MessageRepository, notify Notifier) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Notify: notify}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*messaging.Message, error) {
	if in.ConversationID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("conversationId and senderId are required")
	}

	thread, err := uc.Repo.GetThread(ctx, in.ConversationID)
	if errors.Is(err, messaging.ErrConversationNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msg, err := thread.PostMessage(messaging.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Body:           in.Body,
		CreatedAt:      in.CreatedAt,
	}, time.Now())
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.SaveMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id

	notifyMessageCreated(uc.Notify, msg.ConversationID, msg.ID, msg.SenderID, msg.Body, msg.CreatedAt)

	return &msg, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
	repository "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/port"
	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	ownershipUC "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
)

// RecipientResolver decides who currently answers for a listing's seller side.
// Satisfied by the ownership ResolveRecipientUseCase.
type RecipientResolver interface {
	Execute(ctx context.Context, in ownershipUC.ResolveRecipientInput) (ownership.RecipientResolution, error)
}

// SendToListingInput is a buyer's message aimed at a listing rather than an
// existing conversation.
type SendToListingInput struct {
	ListingID string
	SenderID  string
	Body      string
	CreatedAt time.Time
}

// SendToListingOutput reports where the message landed and how the recipient
// was resolved.
type SendToListingOutput struct {
	ConversationID string
	MessageID      string
	Recipient      ownership.Recipient
	Outcome        ownership.Outcome
}

// SendToListingUseCase resolves the listing's current message recipient, finds
// or creates the (listing, buyer) conversation with that recipient on the
// seller side, and appends the message. Sending never mutates ownership; that
// is exclusively the transfer coordinator's job.
type SendToListingUseCase struct {
	Repo     repository.MessageRepository
	Resolver RecipientResolver
	Notify   Notifier // optional
}

func NewSendToListingUseCase(repo repository.MessageRepository, resolver RecipientResolver, notify Notifier) *SendToListingUseCase {
	return &SendToListingUseCase{Repo: repo, Resolver: resolver, Notify: notify}
}

func (uc *SendToListingUseCase) Execute(ctx context.Context, in SendToListingInput) (SendToListingOutput, error) {
	var out SendToListingOutput
	if in.ListingID == "" || in.SenderID == "" {
		return out, fmt.Errorf("listingId and senderId are required")
	}

	msg, err := messaging.NewMessage(messaging.Message{
		SenderID:  in.SenderID,
		Body:      in.Body,
		CreatedAt: in.CreatedAt,
	})
	if err != nil {
		return out, err
	}

	resolution, err := uc.Resolver.Execute(ctx, ownershipUC.ResolveRecipientInput{ListingID: in.ListingID})
	if err != nil {
		// resolution errors carry their own taxonomy; pass them through
		return out, err
	}
	if resolution.Recipient.ID == in.SenderID {
		return out, messaging.ErrSelfMessage
	}

	res, err := uc.Repo.AppendToListing(ctx, repository.AppendToListingInput{
		ListingID: in.ListingID,
		BuyerID:   in.SenderID,
		SellerID:  resolution.Recipient.ID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, messaging.ErrConflict) {
			return out, err
		}
		return out, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	notifyMessageCreated(uc.Notify, res.ConversationID, res.MessageID, in.SenderID, msg.Body, msg.CreatedAt)

	out.ConversationID = res.ConversationID
	out.MessageID = res.MessageID
	out.Recipient = resolution.Recipient
	out.Outcome = resolution.Outcome
	return out, nil
}

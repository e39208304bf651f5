package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	"github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/adapter"
	ownershipUC "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
	ownershipAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/adapter"
	dirAdapter "github.com/atef1995/sayarat-sub003/internal/repository/adapter"
)

// SendToListingController handles a buyer's "message this listing" action: the
// recipient is resolved from current ownership state, then the message lands
// in the (listing, buyer) conversation.
type SendToListingController struct {
	UC *usecase.SendToListingUseCase
}

func NewSendToListingController(pool *pgxpool.Pool, cache cacheport.Cache, notify usecase.Notifier, log *slog.Logger) *SendToListingController {
	repo := repoAdapter.NewPgMessageRepository(pool)
	resolver := ownershipUC.NewResolveRecipientUseCase(
		ownershipAdapter.NewPgOwnershipRepository(pool),
		dirAdapter.NewPgUserDirectory(pool),
		cache,
		log,
	)
	return &SendToListingController{UC: usecase.NewSendToListingUseCase(repo, resolver, notify)}
}

type sendToListingRequest struct {
	SenderID string `json:"sender_id" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

func (h *SendToListingController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID := c.Param("listingId")
		if listingID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "listingId is required"})
			return
		}

		var req sendToListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		out, err := h.UC.Execute(ctx, usecase.SendToListingInput{
			ListingID: listingID,
			SenderID:  req.SenderID,
			Body:      req.Body,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"conversation_id":    out.ConversationID,
			"message_id":         out.MessageID,
			"recipient_id":       out.Recipient.ID,
			"recipient_type":     out.Recipient.Type,
			"is_original_seller": out.Recipient.IsOriginalSeller,
			"outcome":            out.Outcome,
		})
	}
}

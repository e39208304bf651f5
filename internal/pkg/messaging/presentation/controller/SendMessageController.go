package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/adapter"
)

// SendMessageController handles appending a message to an existing
// conversation (one controller per endpoint).
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(pool *pgxpool.Pool, notify usecase.Notifier) *SendMessageController {
	repo := repoAdapter.NewPgMessageRepository(pool)
	return &SendMessageController{UC: usecase.NewSendMessageUseCase(repo, notify)}
}

type sendMessageRequest struct {
	SenderID string `json:"sender_id" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ConversationID: conversationID,
			SenderID:       req.SenderID,
			Body:           req.Body,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":              msg.ID,
			"conversation_id": msg.ConversationID,
			"sender_id":       msg.SenderID,
			"created_at":      msg.CreatedAt,
		})
	}
}

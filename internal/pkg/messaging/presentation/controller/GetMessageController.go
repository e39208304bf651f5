package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/persistence/repository/adapter"
)

// GetMessageController handles fetching a conversation's messages (one
// controller per endpoint).
type GetMessageController struct {
	UC *usecase.GetMessageUseCase
}

func NewGetMessageController(pool *pgxpool.Pool) *GetMessageController {
	repo := repoAdapter.NewPgMessageRepository(pool)
	return &GetMessageController{UC: usecase.NewGetMessageUseCase(repo)}
}

func (h *GetMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		limit := 50
		offset := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.GetMessageInput{
			ConversationID: conversationID,
			UserID:         userID,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, gin.H{
				"id":              m.ID,
				"conversation_id": m.ConversationID,
				"sender_id":       m.SenderID,
				"body":            m.Body,
				"is_read":         m.IsRead,
				"created_at":      m.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"messages": out,
			"limit":    limit,
			"offset":   offset,
			"count":    len(out),
		})
	}
}

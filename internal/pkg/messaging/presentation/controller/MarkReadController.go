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

// MarkReadController handles marking a conversation's incoming messages read.
type MarkReadController struct {
	UC *usecase.MarkReadUseCase
}

func NewMarkReadController(pool *pgxpool.Pool) *MarkReadController {
	repo := repoAdapter.NewPgMessageRepository(pool)
	return &MarkReadController{UC: usecase.NewMarkReadUseCase(repo)}
}

type markReadRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *MarkReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		var req markReadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		n, err := h.UC.Execute(ctx, usecase.MarkReadInput{
			ConversationID: conversationID,
			UserID:         req.UserID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"conversation_id": conversationID,
			"marked_read":     n,
		})
	}
}

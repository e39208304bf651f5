package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/adapter"
)

// OwnershipHistoryController handles the per-conversation audit-trail query.
type OwnershipHistoryController struct {
	UC *usecase.GetOwnershipHistoryUseCase
}

func NewOwnershipHistoryController(pool *pgxpool.Pool) *OwnershipHistoryController {
	repo := repoAdapter.NewPgOwnershipRepository(pool)
	return &OwnershipHistoryController{UC: usecase.NewGetOwnershipHistoryUseCase(repo)}
}

func (h *OwnershipHistoryController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
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

		changes, err := h.UC.Execute(ctx, usecase.GetOwnershipHistoryInput{
			ConversationID: conversationID,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(changes))
		for _, ch := range changes {
			out = append(out, gin.H{
				"id":              ch.ID,
				"conversation_id": ch.ConversationID,
				"old_owner_id":    ch.OldOwnerID,
				"new_owner_id":    ch.NewOwnerID,
				"owner_type":      ch.OwnerType,
				"reason":          ch.Reason,
				"changed_by":      ch.ChangedBy,
				"created_at":      ch.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"changes": out,
			"limit":   limit,
			"offset":  offset,
			"count":   len(out),
		})
	}
}

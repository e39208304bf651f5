package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/adapter"
)

// RemoveMemberController handles the synchronous member-removal reassignment
// endpoint used by the company-administration surface. A removal with no
// eligible handler is reported inline as a conflict so the admin can fix the
// handler configuration first.
type RemoveMemberController struct {
	UC *usecase.ReassignForMemberRemovalUseCase
}

func NewRemoveMemberController(pool *pgxpool.Pool, log *slog.Logger) *RemoveMemberController {
	repo := repoAdapter.NewPgOwnershipRepository(pool)
	return &RemoveMemberController{UC: usecase.NewReassignForMemberRemovalUseCase(repo, log)}
}

type memberActionRequest struct {
	PerformedBy string `json:"performed_by" binding:"required"`
}

func (h *RemoveMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.Param("companyId")
		memberID := c.Param("memberId")
		if companyID == "" || memberID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "companyId and memberId are required"})
			return
		}

		var req memberActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		out, err := h.UC.Execute(ctx, usecase.ReassignForMemberRemovalInput{
			MemberID:    memberID,
			CompanyID:   companyID,
			PerformedBy: req.PerformedBy,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"transferred_count": out.TransferredCount,
			"new_handler_id":    out.NewHandlerID,
		})
	}
}

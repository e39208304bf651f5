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

// ReactivateMemberController handles the synchronous member-reactivation
// reassignment endpoint: handler-owned listings return to their original
// seller.
type ReactivateMemberController struct {
	UC *usecase.ReassignForMemberReactivationUseCase
}

func NewReactivateMemberController(pool *pgxpool.Pool, log *slog.Logger) *ReactivateMemberController {
	repo := repoAdapter.NewPgOwnershipRepository(pool)
	return &ReactivateMemberController{UC: usecase.NewReassignForMemberReactivationUseCase(repo, log)}
}

func (h *ReactivateMemberController) Handle() gin.HandlerFunc {
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

		out, err := h.UC.Execute(ctx, usecase.ReassignForMemberReactivationInput{
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
		})
	}
}

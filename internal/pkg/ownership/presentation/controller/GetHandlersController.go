package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/adapter"
)

// GetHandlersController handles listing a company's handler configuration.
type GetHandlersController struct {
	UC *usecase.GetHandlersUseCase
}

func NewGetHandlersController(pool *pgxpool.Pool) *GetHandlersController {
	repo := repoAdapter.NewPgOwnershipRepository(pool)
	return &GetHandlersController{UC: usecase.NewGetHandlersUseCase(repo)}
}

func (h *GetHandlersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.Param("companyId")
		if companyID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "companyId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		handlers, err := h.UC.Execute(ctx, companyID)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(handlers))
		for _, a := range handlers {
			out = append(out, gin.H{
				"member_id":              a.MemberID,
				"priority":               a.PriorityOrder,
				"is_active":              a.IsActive,
				"can_handle_transferred": a.CanHandleTransferred,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"company_id": companyID,
			"handlers":   out,
			"count":      len(out),
		})
	}
}

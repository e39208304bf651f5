package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/adapter"
)

// SetHandlersController handles the handler-configuration replace endpoint.
type SetHandlersController struct {
	UC *usecase.SetHandlersUseCase
}

func NewSetHandlersController(pool *pgxpool.Pool) *SetHandlersController {
	repo := repoAdapter.NewPgOwnershipRepository(pool)
	return &SetHandlersController{UC: usecase.NewSetHandlersUseCase(repo)}
}

type handlerSpecRequest struct {
	MemberID             string `json:"member_id" binding:"required"`
	Priority             int    `json:"priority" binding:"required"`
	IsActive             bool   `json:"is_active"`
	CanHandleTransferred bool   `json:"can_handle_transferred"`
}

type setHandlersRequest struct {
	Handlers []handlerSpecRequest `json:"handlers"`
}

func (h *SetHandlersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.Param("companyId")
		if companyID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "companyId is required"})
			return
		}

		var req setHandlersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.SetHandlersInput{
			CompanyID: companyID,
			Handlers: lo.Map(req.Handlers, func(r handlerSpecRequest, _ int) usecase.HandlerSpec {
				return usecase.HandlerSpec{
					MemberID:             r.MemberID,
					Priority:             r.Priority,
					IsActive:             r.IsActive,
					CanHandleTransferred: r.CanHandleTransferred,
				}
			}),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, in); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"company_id": companyID,
			"count":      len(req.Handlers),
		})
	}
}

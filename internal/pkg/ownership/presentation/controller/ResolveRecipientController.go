package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
	repoAdapter "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/persistence/repository/adapter"
	dirAdapter "github.com/atef1995/sayarat-sub003/internal/repository/adapter"
)

// ResolveRecipientController handles the recipient-resolution endpoint (one
// controller per endpoint).
type ResolveRecipientController struct {
	UC *usecase.ResolveRecipientUseCase
}

func NewResolveRecipientController(pool *pgxpool.Pool, cache cacheport.Cache, log *slog.Logger) *ResolveRecipientController {
	repo := repoAdapter.NewPgOwnershipRepository(pool)
	dir := dirAdapter.NewPgUserDirectory(pool)
	return &ResolveRecipientController{UC: usecase.NewResolveRecipientUseCase(repo, dir, cache, log)}
}

func (h *ResolveRecipientController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID := c.Param("listingId")
		if listingID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "listingId is required"})
			return
		}

		in := usecase.ResolveRecipientInput{
			ListingID:     listingID,
			AllowFallback: c.Query("fallback") == "true",
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"outcome":            res.Outcome,
			"recipient_id":       res.Recipient.ID,
			"recipient_type":     res.Recipient.Type,
			"recipient_name":     res.Recipient.Name,
			"recipient_email":    res.Recipient.Email,
			"is_original_seller": res.Recipient.IsOriginalSeller,
			"company_name":       res.Recipient.CompanyName,
		})
	}
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
)

// respondError maps domain errors to a stable machine-readable kind plus
// human-readable detail. Nothing is swallowed: every error the use cases
// surface reaches the client with its taxonomy intact.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ownership.ErrListingNotFound),
		errors.Is(err, ownership.ErrMemberNotFound),
		errors.Is(err, ownership.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "error": err.Error()})
	case errors.Is(err, ownership.ErrNoRecipient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": "no_recipient", "error": err.Error()})
	case errors.Is(err, ownership.ErrNoHandlersAvailable):
		c.JSON(http.StatusConflict, gin.H{"kind": "no_handlers_available", "error": err.Error()})
	case errors.Is(err, ownership.ErrMemberNotActive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": "member_not_active", "error": err.Error()})
	case errors.Is(err, ownership.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"kind": "conflict", "error": err.Error(), "retryable": true})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "error": "unexpected persistence error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"kind": "bad_request", "error": err.Error()})
	}
}

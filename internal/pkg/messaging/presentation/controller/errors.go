package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	messaging "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/domain"
	"github.com/atef1995/sayarat-sub003/internal/pkg/messaging/application/usecase"
	ownership "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/domain"
	ownershipUC "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/usecase"
)

// respondError maps domain errors to a stable machine-readable kind plus
// human-readable detail. Listing-directed sends surface ownership resolution
// errors too, so both taxonomies are mapped here.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, messaging.ErrConversationNotFound),
		errors.Is(err, ownership.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "error": err.Error()})
	case errors.Is(err, messaging.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"kind": "unauthorized", "error": err.Error()})
	case errors.Is(err, messaging.ErrSelfMessage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": "self_message", "error": err.Error()})
	case errors.Is(err, ownership.ErrNoRecipient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": "no_recipient", "error": err.Error()})
	case errors.Is(err, messaging.ErrConflict), errors.Is(err, ownership.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"kind": "conflict", "error": err.Error(), "retryable": true})
	case errors.Is(err, usecase.ErrPersistence), errors.Is(err, ownershipUC.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "error": "unexpected persistence error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"kind": "bad_request", "error": err.Error()})
	}
}

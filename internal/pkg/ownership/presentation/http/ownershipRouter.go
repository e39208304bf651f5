package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	qport "github.com/atef1995/sayarat-sub003/internal/infrastructure/queue/port"
	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/presentation/controller"
)

// RegisterRoutes registers ownership-related HTTP endpoints under the given
// router group. It constructs per-endpoint controllers and binds them directly
// to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client, log *slog.Logger) {
	resolveCtl := controller.NewResolveRecipientController(pool, cache, log)
	setHandlersCtl := controller.NewSetHandlersController(pool)
	getHandlersCtl := controller.NewGetHandlersController(pool)
	removeCtl := controller.NewRemoveMemberController(pool, log)
	reactivateCtl := controller.NewReactivateMemberController(pool, log)
	historyCtl := controller.NewOwnershipHistoryController(pool)

	// GET /api/v1/listings/:listingId/recipient -> resolve current message recipient
	g.GET("/listings/:listingId/recipient", resolveCtl.Handle())

	// PUT  /api/v1/companies/:companyId/handlers -> replace handler configuration
	// GET  /api/v1/companies/:companyId/handlers -> list handler configuration
	g.PUT("/companies/:companyId/handlers", setHandlersCtl.Handle())
	g.GET("/companies/:companyId/handlers", getHandlersCtl.Handle())

	// POST /api/v1/companies/:companyId/members/:memberId/removal      -> reassign to handler
	// POST /api/v1/companies/:companyId/members/:memberId/reactivation -> return to seller
	g.POST("/companies/:companyId/members/:memberId/removal", removeCtl.Handle())
	g.POST("/companies/:companyId/members/:memberId/reactivation", reactivateCtl.Handle())

	// GET /api/v1/conversations/:conversationId/ownership-history -> audit trail
	g.GET("/conversations/:conversationId/ownership-history", historyCtl.Handle())

	// POST /api/v1/events/membership -> enqueue a membership-change event
	if client != nil {
		eventCtl := controller.NewMembershipEventController(client)
		g.POST("/events/membership", eventCtl.Handle())
	}
}

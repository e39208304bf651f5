package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	"github.com/atef1995/sayarat-sub003/internal/infrastructure/realtime"
	"github.com/atef1995/sayarat-sub003/internal/pkg/messaging/presentation/controller"
)

// RegisterRoutes registers messaging-related HTTP endpoints under the given
// router group. It constructs per-endpoint controllers and binds them directly
// to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, hub *realtime.Hub, log *slog.Logger) {
	sendToListingCtl := controller.NewSendToListingController(pool, cache, hub, log)
	sendMsgCtl := controller.NewSendMessageController(pool, hub)
	markReadCtl := controller.NewMarkReadController(pool)
	getMsgCtl := controller.NewGetMessageController(pool)

	// POST /api/v1/listings/:listingId/messages -> message a listing's current recipient
	g.POST("/listings/:listingId/messages", sendToListingCtl.Handle())

	// POST /api/v1/conversations/:conversationId/messages -> append to a conversation
	g.POST("/conversations/:conversationId/messages", sendMsgCtl.Handle())

	// POST /api/v1/conversations/:conversationId/read -> mark incoming messages read
	g.POST("/conversations/:conversationId/read", markReadCtl.Handle())

	// GET /api/v1/conversations/:conversationId/messages -> fetch messages
	g.GET("/conversations/:conversationId/messages", getMsgCtl.Handle())

	// GET /api/v1/conversations/ws -> websocket endpoint for live conversations
	if hub != nil {
		socketCtl := controller.NewConversationSocketController(pool, hub)
		g.GET("/conversations/ws", socketCtl.Handle())
	}
}

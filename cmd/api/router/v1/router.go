package v1

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	qport "github.com/atef1995/sayarat-sub003/internal/infrastructure/queue/port"
	"github.com/atef1995/sayarat-sub003/internal/infrastructure/realtime"
	messagingHTTP "github.com/atef1995/sayarat-sub003/internal/pkg/messaging/presentation/http"
	ownershipHTTP "github.com/atef1995/sayarat-sub003/internal/pkg/ownership/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client, hub *realtime.Hub, log *slog.Logger) {
	v1 := r.Group("/api/v1")
	messagingHTTP.RegisterRoutes(v1, pool, cache, hub, log)
	ownershipHTTP.RegisterRoutes(v1, pool, cache, client, log)
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/atef1995/sayarat-sub003/cmd/api/router/v1"
	cacheadapter "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/adapter"
	cacheport "github.com/atef1995/sayarat-sub003/internal/infrastructure/cache/port"
	"github.com/atef1995/sayarat-sub003/internal/infrastructure/database"
	queueadapter "github.com/atef1995/sayarat-sub003/internal/infrastructure/queue/adapter"
	qport "github.com/atef1995/sayarat-sub003/internal/infrastructure/queue/port"
	"github.com/atef1995/sayarat-sub003/internal/infrastructure/realtime"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found or could not be loaded", "error", err)
	}

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	// Redis caches company display names only. The API degrades to
	// direct database reads when it is unavailable.
	var cache cacheport.Cache
	if rc, err := cacheadapter.NewRedisAdapter(); err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
	} else {
		cache = rc
		defer rc.Close()
	}

	// The asynq client backs the membership event intake endpoint.
	// Without it the endpoint is not mounted and reassignments must be
	// triggered through the synchronous routes.
	var client qport.Client
	if qc, err := queueadapter.NewAsynqClientFromEnv(); err != nil {
		logger.Warn("queue unavailable, membership event intake disabled", "error", err)
	} else {
		client = qc
		defer qc.Close()
	}

	hub := realtime.NewHub()
	defer hub.Close()

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, cache, client, hub, logger)

	// Start HTTP server (blocks until shutdown)
	if err := r.Run(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/atef1995/sayarat-sub003/internal/infrastructure/database"
	queueadapter "github.com/atef1995/sayarat-sub003/internal/infrastructure/queue/adapter"
	"github.com/atef1995/sayarat-sub003/internal/pkg/ownership/application/task"
)

// The worker consumes membership events and runs the conversation
// reassignment pipeline out of band of the HTTP API.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found or could not be loaded", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.NewPoolFromEnv(ctx)
	cancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	srv, err := queueadapter.NewAsynqServer(logger)
	if err != nil {
		logger.Error("failed to create queue server", "error", err)
		os.Exit(1)
	}

	task.RegisterMembershipTasks(srv, pool, logger)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("worker started")
	if err := srv.Run(runCtx); err != nil {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker shut down")
}

package port

import (
	"context"
	"time"
)

// Task represents a background job message with a type and opaque payload
// bytes. Type should be a stable string identifier; payload encoding is up to
// callers.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. Return a non-nil error to signal retry per adapter
// policy. Handlers must be idempotent: membership events are redelivered on
// failure.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption controls enqueue behavior. Zero values mean "unspecified".
type EnqueueOption struct {
	Queue     string        // logical queue name
	MaxRetry  int           // max retries for the task
	UniqueTTL time.Duration // enforce uniqueness within TTL window
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs background workers that handle tasks. Run blocks until the
// context is canceled.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}

package async

import (
	"context"

	"github.com/google/uuid"
	"github.com/opencity-lab/musette/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It creates a background context (the caller's request context may be
// canceled before the task finishes) and handles errors and panics. The
// generated job ID ties a task's log lines together.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) string {
	jobID := uuid.New().String()
	logger := logging.From(ctx).With("job", name, "job_id", jobID)
	bgCtx := logging.With(context.Background(), logger)

	logger.Info("async task dispatched")

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in async task", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logger.Error("async task failed", "error", err)
			return
		}
		logger.Info("async task completed")
	}()

	return jobID
}

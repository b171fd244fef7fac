package interfaces

import "context"

// TaskQueue runs a task asynchronously, fire-and-forget. Delivery is
// at-least-once and ordering relative to the triggering write is not
// guaranteed. Task failures are reported to the queue's own error policy,
// not to the enqueuer.
type TaskQueue interface {
	Enqueue(ctx context.Context, name string, task func(ctx context.Context) error)
}

// Package queue provides the in-process implementation of the asynchronous
// task queue. Tasks run fire-and-forget on their own goroutine; a task
// failure is logged and left to the next trigger, never surfaced to the
// enqueuer.
package queue

import (
	"context"

	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/utils/async"
)

type InProcess struct{}

var _ interfaces.TaskQueue = &InProcess{}

func NewInProcess() *InProcess {
	return &InProcess{}
}

func (q *InProcess) Enqueue(ctx context.Context, name string, task func(ctx context.Context) error) {
	async.Dispatch(ctx, name, task)
}

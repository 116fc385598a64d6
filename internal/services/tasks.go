package services

import "context"

// TaskEnqueuer hands work off to the background pool. Enqueue reports
// false when the queue is full; callers treat that as "run later via the
// periodic sweep", not as an error.
type TaskEnqueuer interface {
	Enqueue(name string, task func(ctx context.Context)) bool
}

// noopEnqueuer drops tasks. Used in tests and in setup commands where no
// worker pool is running.
type noopEnqueuer struct{}

func (noopEnqueuer) Enqueue(string, func(ctx context.Context)) bool { return false }

// NoopEnqueuer returns an enqueuer that discards all tasks.
func NoopEnqueuer() TaskEnqueuer { return noopEnqueuer{} }

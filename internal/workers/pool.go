package workers

import (
	"context"
	"sync"

	"smarthr_backend/internal/logger"
)

type queuedTask struct {
	name string
	run  func(ctx context.Context)
}

// Pool is a bounded background task queue. Services enqueue work
// (match scoring, CV processing, notification emails) and a fixed set
// of workers drains it. Enqueue never blocks: when the queue is full
// the task is dropped and the periodic sweep picks the work up later.
type Pool struct {
	queue       chan queuedTask
	workerCount int

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	closed  bool
}

func NewPool(workerCount, queueSize int) *Pool {
	if workerCount < 1 {
		workerCount = 4
	}
	if queueSize < 1 {
		queueSize = 256
	}
	return &Pool{
		queue:       make(chan queuedTask, queueSize),
		workerCount: workerCount,
	}
}

// Start launches the worker goroutines. They run until ctx is
// cancelled and the queue is drained.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	}()
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for task := range p.queue {
		p.runTask(ctx, task)
	}
}

func (p *Pool) runTask(ctx context.Context, task queuedTask) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("background task panicked", "task", task.name, "panic", r)
		}
	}()
	task.run(ctx)
}

// Enqueue implements services.TaskEnqueuer. Returns false when the
// queue is full or the pool is shutting down.
func (p *Pool) Enqueue(name string, task func(ctx context.Context)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}

	select {
	case p.queue <- queuedTask{name: name, run: task}:
		return true
	default:
		logger.Warn("background queue full, task dropped", "task", name)
		return false
	}
}

// Wait blocks until all workers have exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

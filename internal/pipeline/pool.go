// Package pipeline runs background work off the observer goroutine and
// carries results back to it.
package pipeline

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrPoolClosed is returned by Submit after Shutdown has begun.
var ErrPoolClosed = errors.New("pipeline: pool is shut down")

// Task is one unit of background work. Generation and meshing both use it.
type Task func()

// Pool runs tasks on a fixed set of goroutines. The backlog is unbounded so
// Submit never blocks, and every accepted task runs to completion.
type Pool struct {
	logger  *slog.Logger
	workers int
	group   errgroup.Group

	mu      sync.Mutex
	ready   *sync.Cond
	idle    *sync.Cond
	backlog []Task
	pending int // queued plus running
	closed  bool
}

// NewPool starts workers goroutines. workers <= 0 uses GOMAXPROCS.
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pool{logger: logger, workers: workers}
	p.ready = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)
	for i := 0; i < workers; i++ {
		p.group.Go(p.work)
	}
	return p
}

func (p *Pool) Workers() int {
	return p.workers
}

// Submit queues a task.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		return errors.New("pipeline: nil task")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.backlog = append(p.backlog, task)
	p.pending++
	p.ready.Signal()
	return nil
}

// Pending reports tasks that are queued or running.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// WaitIdle blocks until no task is queued or running.
func (p *Pool) WaitIdle() {
	p.mu.Lock()
	for p.pending > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Shutdown stops accepting tasks, lets the backlog drain, and joins the
// workers. It is safe to call more than once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.ready.Broadcast()
	p.mu.Unlock()
	_ = p.group.Wait()
}

func (p *Pool) work() error {
	for {
		p.mu.Lock()
		for len(p.backlog) == 0 && !p.closed {
			p.ready.Wait()
		}
		if len(p.backlog) == 0 {
			p.mu.Unlock()
			return nil
		}
		task := p.backlog[0]
		p.backlog[0] = nil
		p.backlog = p.backlog[1:]
		p.mu.Unlock()

		p.run(task)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}
}

func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline task panicked", "panic", r)
		}
	}()
	task()
}

package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Task is a function that represents a background job
type Task func(ctx context.Context) error

// Pool runs background persistence jobs on a fixed set of goroutines.
type Pool struct {
	taskQueue chan Task
	wg        sync.WaitGroup
	mu        sync.RWMutex // guards sends against close
	isClosing atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
}

const queueSize = 1000

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		taskQueue: make(chan Task, queueSize),
		ctx:       ctx,
		cancel:    cancel,
	}

	for range size {
		p.wg.Add(1)
		go p.startWorker()
	}

	return p
}

func (p *Pool) startWorker() {
	defer p.wg.Done()
	for task := range p.taskQueue {
		if err := task(p.ctx); err != nil {
			log.Warn().Err(err).Msg("worker task failed")
		}
	}
}

// Submit queues t. It reports false when the pool is closing or the queue
// is full, in which case the task is dropped.
func (p *Pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.isClosing.Load() {
		log.Warn().Msg("task submitted during shutdown, dropping")
		return false
	}
	select {
	case p.taskQueue <- t:
		return true
	default:
		log.Warn().Msg("task queue full, dropping task")
		return false
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish. If ctx
// expires first the running tasks see their context cancelled.
func (p *Pool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if !p.isClosing.CompareAndSwap(false, true) {
		p.mu.Unlock()
		return
	}
	close(p.taskQueue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		p.cancel()
		<-done
	}
	p.cancel()
}

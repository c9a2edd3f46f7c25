package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := NewPool(2)
	var n atomic.Int32
	for range 10 {
		assert.True(t, p.Submit(func(ctx context.Context) error {
			n.Add(1)
			return nil
		}))
	}
	p.Shutdown(context.Background())
	assert.Equal(t, int32(10), n.Load())
}

func TestPool_FailedTaskDoesNotStopWorker(t *testing.T) {
	p := NewPool(1)
	var n atomic.Int32
	p.Submit(func(ctx context.Context) error { return errors.New("boom") })
	p.Submit(func(ctx context.Context) error {
		n.Add(1)
		return nil
	})
	p.Shutdown(context.Background())
	assert.Equal(t, int32(1), n.Load())
}

func TestPool_SubmitAfterShutdownIsDropped(t *testing.T) {
	p := NewPool(1)
	p.Shutdown(context.Background())
	assert.False(t, p.Submit(func(ctx context.Context) error { return nil }))
	// second shutdown is a no-op
	p.Shutdown(context.Background())
}

func TestPool_ShutdownDeadlineCancelsRunningTasks(t *testing.T) {
	p := NewPool(1)
	started := make(chan struct{})
	p.Submit(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	p.Shutdown(ctx)
}

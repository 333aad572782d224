package mapreduce

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Outcome is the result of one task, delivered in completion order.
type Outcome[P any] struct {
	ID      string
	Partial P
	Err     error
	Elapsed time.Duration
	// Restored is set when the partial came from a checkpoint instead of a run.
	Restored bool
}

// Pool runs submitted tasks and reports their outcomes as they complete.
// Completed is closed once Close was called and every submitted task has
// reported.
type Pool[P any] interface {
	Submit(ctx context.Context, t Task[P]) error
	Completed() <-chan Outcome[P]
	Close()
}

// LocalPool runs tasks on goroutines of this process. At most workers tasks
// run at once; Submit blocks while the pool is saturated. Submit and Close
// must be called from the same goroutine.
type LocalPool[P any] struct {
	sem  *semaphore.Weighted
	g    errgroup.Group
	out  chan Outcome[P]
	mu   sync.Mutex
	done bool
}

// NewLocalPool returns a pool running up to workers tasks at once and holding
// up to queueDepth finished outcomes the caller has not received yet.
func NewLocalPool[P any](workers, queueDepth int) *LocalPool[P] {
	if workers <= 0 {
		workers = 1
	}
	if queueDepth < 0 {
		queueDepth = 0
	}
	return &LocalPool[P]{
		sem: semaphore.NewWeighted(int64(workers)),
		out: make(chan Outcome[P], queueDepth),
	}
}

func (p *LocalPool[P]) Submit(ctx context.Context, t Task[P]) error {
	p.mu.Lock()
	closed := p.done
	p.mu.Unlock()
	if closed {
		return ErrPoolClosed
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	p.g.Go(func() error {
		defer p.sem.Release(1)
		p.out <- runTask(ctx, t)
		return nil
	})
	return nil
}

func (p *LocalPool[P]) Completed() <-chan Outcome[P] {
	return p.out
}

func (p *LocalPool[P]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.done = true
	go func() {
		p.g.Wait()
		close(p.out)
	}()
}

func runTask[P any](ctx context.Context, t Task[P]) (o Outcome[P]) {
	o.ID = t.ID()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.Err = fmt.Errorf("panic: %v", r)
		}
		o.Elapsed = time.Since(start)
	}()
	log.Tracef("[Pool] start unit %s", o.ID)
	o.Partial, o.Err = t.Run(ctx)
	log.Tracef("[Pool] end unit %s", o.ID)
	return o
}

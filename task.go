package mapreduce

import (
	"context"
	"io"
	"time"
)

// Task is one independent unit of work producing a partial result.
type Task[P any] interface {
	ID() string
	Run(ctx context.Context) (P, error)
}

type funcTask[P any] struct {
	id string
	fn func(ctx context.Context) (P, error)
}

// NewTask wraps fn as a task named id.
func NewTask[P any](id string, fn func(ctx context.Context) (P, error)) Task[P] {
	return &funcTask[P]{id: id, fn: fn}
}

func (t *funcTask[P]) ID() string {
	return t.id
}

func (t *funcTask[P]) Run(ctx context.Context) (P, error) {
	return t.fn(ctx)
}

type timeoutTask[P any] struct {
	Task[P]
	d time.Duration
}

func (t *timeoutTask[P]) Run(ctx context.Context) (P, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.Task.Run(ctx)
}

func withTimeout[P any](t Task[P], d time.Duration) Task[P] {
	if d <= 0 {
		return t
	}
	return &timeoutTask[P]{Task: t, d: d}
}

// Source yields tasks until it returns io.EOF.
type Source[P any] interface {
	Next(ctx context.Context) (Task[P], error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[P any] func(ctx context.Context) (Task[P], error)

func (f SourceFunc[P]) Next(ctx context.Context) (Task[P], error) {
	return f(ctx)
}

// SliceSource yields tasks in order.
func SliceSource[P any](tasks ...Task[P]) Source[P] {
	i := 0
	return SourceFunc[P](func(ctx context.Context) (Task[P], error) {
		if i >= len(tasks) {
			return nil, io.EOF
		}
		t := tasks[i]
		i++
		return t, nil
	})
}

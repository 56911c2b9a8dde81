// Package queue provides a bounded FIFO queue that connects the producer and
// consumer sides of a loading pipeline. The capacity is fixed at construction
// and acts as the backpressure mechanism: Put blocks while the queue is full,
// so the producer can never run more than capacity items ahead of the
// consumer.
package queue

import (
	"context"
	"fmt"
)

// Bounded is a fixed-capacity FIFO queue. Values are observed by Get in the
// exact order they were Put. A Bounded queue is safe for use by one producer
// and one consumer in separate goroutines.
//
// Create one with New; the zero value is not usable.
type Bounded[T any] struct {
	ch chan T
}

// New creates a bounded queue holding at most capacity values. A capacity
// below 1 is a configuration error.
func New[T any](capacity int) (*Bounded[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("queue capacity must be at least 1, got %d", capacity)
	}
	return &Bounded[T]{ch: make(chan T, capacity)}, nil
}

// Put appends v to the queue, blocking while the queue is full. It returns
// the context's error if ctx is canceled before space becomes available,
// which the producer must treat as fatal: the consumer side is gone.
//
// Put must not be called after Close.
func (q *Bounded[T]) Put(ctx context.Context, v T) error {
	select {
	case q.ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get removes and returns the oldest value, blocking while the queue is
// empty. After the queue has been closed and drained, Get returns ok=false.
// It returns the context's error if ctx is canceled first.
func (q *Bounded[T]) Get(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case v, ok := <-q.ch:
		if !ok {
			return zero, false, nil
		}
		return v, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// Close marks the end of the stream. Values already queued remain readable;
// once drained, Get and C report completion. Close must be called exactly
// once, by the producer.
func (q *Bounded[T]) Close() {
	close(q.ch)
}

// C exposes the queue as a receive-only channel so consumers can range over
// it. The channel is closed after Close once all values are drained.
func (q *Bounded[T]) C() <-chan T {
	return q.ch
}

// Len returns the number of values currently queued.
func (q *Bounded[T]) Len() int {
	return len(q.ch)
}

// Cap returns the queue's fixed capacity.
func (q *Bounded[T]) Cap() int {
	return cap(q.ch)
}

// Package stream provides push-based subscriptions backed by a goroutine, and the
// combinators used to compose them.
package stream

import (
	"context"
	"sync"
)

// Stream delivers values until its producer finishes, fails, or the consumer closes it.
// Err is only meaningful after Updates has been closed.
type Stream[T any] struct {
	updates chan T
	cancel  context.CancelFunc

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
	finished  chan struct{}
}

// Emit pushes a value downstream. It returns false once the stream has been closed,
// and the producer should return.
type Emit[T any] func(T) bool

// Producer runs until ctx is cancelled or it has nothing more to send. A non-nil
// return terminates the stream with that error.
type Producer[T any] func(ctx context.Context, emit Emit[T]) error

// New starts producer on its own goroutine. Cancelling ctx or calling Close tears it down.
func New[T any](ctx context.Context, producer Producer[T]) *Stream[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream[T]{
		updates:  make(chan T),
		cancel:   cancel,
		finished: make(chan struct{}),
	}
	emit := func(value T) bool {
		select {
		case s.updates <- value:
			return true
		case <-ctx.Done():
			return false
		}
	}
	go func() {
		defer close(s.finished)
		defer close(s.updates)
		defer cancel()
		err := producer(ctx, emit)
		if err != nil && ctx.Err() == nil {
			s.setErr(err)
		}
	}()
	return s
}

// Just emits value once and completes.
func Just[T any](ctx context.Context, value T) *Stream[T] {
	return New(ctx, func(ctx context.Context, emit Emit[T]) error {
		emit(value)
		return nil
	})
}

// Fail completes immediately with err.
func Fail[T any](ctx context.Context, err error) *Stream[T] {
	return New(ctx, func(ctx context.Context, emit Emit[T]) error {
		return err
	})
}

func (s *Stream[T]) Updates() <-chan T {
	return s.updates
}

func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream[T]) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Done is closed once the producer has returned and all resources are released.
func (s *Stream[T]) Done() <-chan struct{} {
	return s.finished
}

// Close cancels the producer and waits for it to return. Safe to call more than once.
func (s *Stream[T]) Close() {
	s.closeOnce.Do(s.cancel)
	// drain so a producer blocked on send can observe cancellation
	for range s.updates {
	}
	<-s.finished
}

// Next blocks for the next value. ok is false once the stream has completed.
func (s *Stream[T]) Next(ctx context.Context) (value T, ok bool, err error) {
	select {
	case value, ok = <-s.updates:
		if !ok {
			return value, false, s.Err()
		}
		return value, true, nil
	case <-ctx.Done():
		return value, false, ctx.Err()
	}
}

// Map transforms every value of in. Closing the result closes in.
func Map[In any, Out any](ctx context.Context, in *Stream[In], f func(In) (Out, error)) *Stream[Out] {
	return New(ctx, func(ctx context.Context, emit Emit[Out]) error {
		defer in.Close()
		for {
			select {
			case <-ctx.Done():
				return nil
			case value, ok := <-in.Updates():
				if !ok {
					return in.Err()
				}
				out, err := f(value)
				if err != nil {
					return err
				}
				if !emit(out) {
					return nil
				}
			}
		}
	})
}

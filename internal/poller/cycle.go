package poller

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cycle is the future of one refresh. Its fields other than ID and
// StartedAt may only be read after Done is closed.
type Cycle[T any] struct {
	// ID correlates the cycle's log lines.
	ID string

	StartedAt time.Time

	done       chan struct{}
	value      T
	err        error
	statusCode int
	latency    time.Duration
}

func newCycle[T any]() *Cycle[T] {
	return &Cycle[T]{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
}

// Done is closed when the cycle has finished, successfully or not.
func (c *Cycle[T]) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the cycle finishes or ctx is done.
// If ctx ends first, ctx.Err() is returned.
func (c *Cycle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the handler's value and the cycle error.
// It must only be called after Done is closed.
func (c *Cycle[T]) Result() (T, error) {
	return c.value, c.err
}

// Err returns the cycle error, or nil if the cycle is still in flight or
// succeeded.
func (c *Cycle[T]) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// StatusCode returns the upstream HTTP status, zero if none was received.
// It blocks until Done is closed.
func (c *Cycle[T]) StatusCode() int {
	<-c.done
	return c.statusCode
}

// Latency returns the fetch duration. It blocks until Done is closed.
func (c *Cycle[T]) Latency() time.Duration {
	<-c.done
	return c.latency
}

package deltasync

import (
	"context"
	"sync"

	"mirror/internal/domain/entity"
)

// outbox queues committed deltas for the active stream. Commits never block on
// the stream consumer; the stream goroutine drains in commit order.
type outbox[T entity.Payload] struct {
	mu       sync.Mutex
	attached bool
	pending  []entity.ChangeDelta[T]
	notify   chan struct{}
}

func newOutbox[T entity.Payload]() outbox[T] {
	return outbox[T]{notify: make(chan struct{}, 1)}
}

func (o *outbox[T]) attach() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.attached {
		return false
	}
	o.attached = true

	return true
}

func (o *outbox[T]) detach() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.attached = false
	o.pending = nil
}

// push drops deltas when no stream is attached; the cache still holds them.
func (o *outbox[T]) push(deltas []entity.ChangeDelta[T]) {
	if len(deltas) == 0 {
		return
	}

	o.mu.Lock()
	if !o.attached {
		o.mu.Unlock()

		return
	}
	o.pending = append(o.pending, deltas...)
	o.mu.Unlock()

	select {
	case o.notify <- struct{}{}:
	default:
	}
}

// drain sends everything queued to out. It returns false once ctx is done.
func (o *outbox[T]) drain(ctx context.Context, out chan<- entity.ChangeDelta[T]) bool {
	for {
		o.mu.Lock()
		batch := o.pending
		o.pending = nil
		o.mu.Unlock()

		if len(batch) == 0 {
			return ctx.Err() == nil
		}

		for _, delta := range batch {
			select {
			case out <- delta:
			case <-ctx.Done():
				return false
			}
		}
	}
}

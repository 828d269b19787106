package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"mirror/internal/domain/entity"
	"mirror/internal/domain/service"
)

// memoryFeed delivers notifications to handlers registered in this process.
// An optional relay forwards every notification to a worker endpoint.
type memoryFeed struct {
	mu       sync.RWMutex
	handlers map[uint64]service.ChangeHandler
	nextID   uint64
	relay    *localHTTPRelay
	logger   *slog.Logger
}

// NewMemoryFeed creates an in-process change feed
func NewMemoryFeed(logger *slog.Logger) service.ChangeFeed {
	return newMemoryFeed(logger, nil)
}

func newMemoryFeed(logger *slog.Logger, relay *localHTTPRelay) *memoryFeed {
	return &memoryFeed{
		handlers: make(map[uint64]service.ChangeHandler),
		relay:    relay,
		logger:   logger,
	}
}

// Publish hands the notification to every registered handler, then to the relay if configured
func (f *memoryFeed) Publish(ctx context.Context, notification *entity.ChangeNotification) error {
	f.mu.RLock()
	handlers := make([]service.ChangeHandler, 0, len(f.handlers))
	for _, handler := range f.handlers {
		handlers = append(handlers, handler)
	}
	f.mu.RUnlock()

	f.logger.Debug("[MemoryFeed] Publishing change",
		slog.String("channel", notification.Channel().String()),
		slog.String("kind", string(notification.Kind)),
		slog.Int("handler_count", len(handlers)),
	)

	for _, handler := range handlers {
		handler(ctx, notification)
	}

	if f.relay != nil {
		return f.relay.Forward(ctx, notification)
	}

	return nil
}

// Subscribe registers handler until ctx is done
func (f *memoryFeed) Subscribe(ctx context.Context, handler service.ChangeHandler) error {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.handlers[id] = handler
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.handlers, id)
		f.mu.Unlock()
	}()

	return nil
}

// Close drops all handlers
func (f *memoryFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clear(f.handlers)

	return nil
}

package service

import (
	"context"

	"mirror/internal/domain/entity"
)

// ChangeHandler consumes change notifications delivered by a feed.
type ChangeHandler func(ctx context.Context, notification *entity.ChangeNotification)

// ChangeFeed announces committed record changes. Delivery is at-least-once and
// only after commit; ordering across notifications is not guaranteed.
type ChangeFeed interface {
	// Publish announces a committed change
	Publish(ctx context.Context, notification *entity.ChangeNotification) error

	// Subscribe registers handler for notifications reaching this process.
	// It returns once the subscription is active; delivery stops when ctx is done.
	Subscribe(ctx context.Context, handler ChangeHandler) error

	// Close releases any resources held by the feed
	Close() error
}

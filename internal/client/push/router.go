package push

import (
	"context"
	"slices"
	"sync"

	"mirror/internal/domain/entity"
	"mirror/internal/errors"
)

// Applier merges typed deltas of one data type; deltasync.Engine implements it.
type Applier[T entity.Payload] interface {
	DataType() entity.DataType
	Apply(ctx context.Context, delta entity.ChangeDelta[T]) error
}

type route func(ctx context.Context, raw entity.RawDelta) error

// Router validates inbound wire deltas into typed deltas and hands them to the
// applier registered for their data type.
type Router struct {
	mu     sync.RWMutex
	routes map[entity.DataType]route
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[entity.DataType]route)}
}

// Register routes deltas of applier's data type to it, replacing any earlier route.
func Register[T entity.Payload](r *Router, applier Applier[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes[applier.DataType()] = func(ctx context.Context, raw entity.RawDelta) error {
		delta, err := entity.DecodeDelta[T](raw)
		if err != nil {
			return err
		}

		return applier.Apply(ctx, delta)
	}
}

// Dispatch decodes raw for dataType and applies it.
func (r *Router) Dispatch(ctx context.Context, dataType entity.DataType, raw entity.RawDelta) error {
	r.mu.RLock()
	fn, ok := r.routes[dataType]
	r.mu.RUnlock()

	if !ok {
		return errors.Wrapf(entity.ErrUnknownDataType, "no route for %q", dataType)
	}

	return fn(ctx, raw)
}

// DataTypes lists the routed data types in a stable order.
func (r *Router) DataTypes() []entity.DataType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]entity.DataType, 0, len(r.routes))
	for dataType := range r.routes {
		types = append(types, dataType)
	}
	slices.Sort(types)

	return types
}

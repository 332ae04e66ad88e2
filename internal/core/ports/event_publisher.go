package ports

import (
	"context"

	"bookstore/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order events to other systems.
// It is called after commit, so a failure cannot undo the transition.
type OrderEventPublisher interface {
	PublishTransitioned(ctx context.Context, event order.Transitioned) error
}

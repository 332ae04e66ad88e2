package order

import (
	"time"

	"bookstore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// Transitioned records a committed status change of an order.
type Transitioned struct {
	EventID        uuid.UUID
	OrderID        kernel.ID
	PreviousStatus Status
	NewStatus      Status
	OccurredAt     time.Time
}

func NewTransitioned(orderID kernel.ID, previous, next Status, occurredAt time.Time) Transitioned {
	return Transitioned{
		EventID:        uuid.New(),
		OrderID:        orderID,
		PreviousStatus: previous,
		NewStatus:      next,
		OccurredAt:     occurredAt.UTC(),
	}
}

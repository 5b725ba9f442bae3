package ports

import (
	"context"
	"time"

	"laundryops/internal/core/domain/model/kernel"
)

// OrderStatusChanged is the integration event published to the message
// broker after a committed transition, for downstream consumers outside
// this process.
type OrderStatusChanged struct {
	OrderID   kernel.UUID `json:"orderId"`
	TenantID  kernel.UUID `json:"tenantId"`
	OldStatus string      `json:"oldStatus"`
	NewStatus string      `json:"newStatus"`
	ActorID   kernel.UUID `json:"actorId"`
	At        time.Time   `json:"at"`
}

// OrderEventPublisher publishes order integration events.
// Publishing runs as an isolated post-commit side effect.
type OrderEventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChanged) error
}

package ports

import (
	"context"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read and write is scoped by tenant; an order outside the caller's
// tenant behaves exactly like a missing order.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: status,
	// history, payment state, and the rewards marker move together in a
	// single per-order write, which is what keeps concurrent transitions
	// on the same order from interleaving history entries.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetForTenant retrieves an order scoped by tenant.
	// Returns errs.ObjectNotFoundError when absent or out of tenant scope.
	GetForTenant(ctx context.Context, id, tenantID kernel.UUID) (*order.Order, error)

	// UpdatePaymentStatus persists a derived payment-status change with a
	// free-text audit detail, without rewriting the rest of the aggregate.
	UpdatePaymentStatus(ctx context.Context, id kernel.UUID, status order.PaymentStatus, details string) error
}

package ports

import (
	"context"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/refund"
)

// RefundRepository defines the persistence contract for refund requests.
type RefundRepository interface {
	// Add persists a new refund request.
	Add(ctx context.Context, aggregate *refund.RefundRequest) error

	// Update persists changes to an existing refund request.
	Update(ctx context.Context, aggregate *refund.RefundRequest) error

	// GetForTenant retrieves a refund request scoped by tenant.
	// Returns errs.ObjectNotFoundError when absent or out of tenant scope.
	GetForTenant(ctx context.Context, id, tenantID kernel.UUID) (*refund.RefundRequest, error)
}

package ports

import (
	"context"

	"laundryops/internal/core/domain/model/customer"
	"laundryops/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for the customer
// reward ledger.
type CustomerRepository interface {
	// Add persists a new customer aggregate.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer aggregate.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// GetForTenant retrieves a customer scoped by tenant.
	// Returns errs.ObjectNotFoundError when absent or out of tenant scope.
	GetForTenant(ctx context.Context, id, tenantID kernel.UUID) (*customer.Customer, error)
}

package ports

import (
	"context"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/staff"
)

// StaffRepository defines the persistence contract for administrative users.
type StaffRepository interface {
	// Get retrieves a staff member by id.
	Get(ctx context.Context, id kernel.UUID) (*staff.Staff, error)

	// GetAdminsForTenant retrieves every admin-class staff member of a
	// tenant, the audience of a tenancy-wide permission sync.
	GetAdminsForTenant(ctx context.Context, tenantID kernel.UUID) ([]*staff.Staff, error)

	// FindBranchManager retrieves the active branch admin managing the
	// branch within the tenant, the recipient of branch-assignment
	// notifications.
	// Returns errs.ObjectNotFoundError when the branch has no manager.
	FindBranchManager(ctx context.Context, tenantID, branchID kernel.UUID) (*staff.Staff, error)

	// FindActiveByRole retrieves the first active staff member holding
	// role within the tenant. A nil tenantID matches platform-level staff
	// without a tenant filter, the narrow cross-tenant exception used by
	// refund escalation.
	// Returns errs.ObjectNotFoundError when nobody matches.
	FindActiveByRole(ctx context.Context, tenantID *kernel.UUID, role staff.Role) (*staff.Staff, error)

	// UpdatePermissions persists a recomputed effective permission map.
	UpdatePermissions(ctx context.Context, id kernel.UUID, permissions staff.PermissionMap) error
}

// TenantSettingsRepository exposes the tenant feature flags that drive
// permission recomputation.
type TenantSettingsRepository interface {
	// DisabledFeatures returns the features currently switched off for
	// the tenant.
	DisabledFeatures(ctx context.Context, tenantID kernel.UUID) ([]staff.Feature, error)
}

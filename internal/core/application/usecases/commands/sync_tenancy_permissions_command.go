package commands

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrSyncTenancyPermissionsCommandIsNotConstructed = errors.New(
	"SyncTenancyPermissionsCommand must be created via NewSyncTenancyPermissionsCommand constructor",
)

// SyncTenancyPermissionsCommand recomputes permissions for every admin-class
// staff member of a tenant, typically after its feature flags changed.
type SyncTenancyPermissionsCommand struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSyncTenancyPermissionsCommand creates a validated tenancy sync command.
func NewSyncTenancyPermissionsCommand(tenantID kernel.UUID) (SyncTenancyPermissionsCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return SyncTenancyPermissionsCommand{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}

	return SyncTenancyPermissionsCommand{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant to sync.
func (c *SyncTenancyPermissionsCommand) TenantID() kernel.UUID { return c.tenantID }

// Validate ensures the command was created through the constructor.
func (c *SyncTenancyPermissionsCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncTenancyPermissionsCommandIsNotConstructed,
	)
}

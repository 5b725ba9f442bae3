package commands

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrSyncUserPermissionsCommandIsNotConstructed = errors.New(
	"SyncUserPermissionsCommand must be created via NewSyncUserPermissionsCommand constructor",
)

// SyncUserPermissionsCommand recomputes one staff member's effective
// permissions from their role defaults and the tenant's disabled features.
type SyncUserPermissionsCommand struct {
	staffID  kernel.UUID
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSyncUserPermissionsCommand creates a validated sync command.
func NewSyncUserPermissionsCommand(staffID, tenantID kernel.UUID) (SyncUserPermissionsCommand, error) {
	if err := staffID.Validate(); err != nil {
		return SyncUserPermissionsCommand{}, errs.NewValueIsRequiredErrorWithCause("staff id", err)
	}
	if err := tenantID.Validate(); err != nil {
		return SyncUserPermissionsCommand{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}

	return SyncUserPermissionsCommand{
		staffID:  staffID,
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// StaffID returns the staff member to sync.
func (c *SyncUserPermissionsCommand) StaffID() kernel.UUID { return c.staffID }

// TenantID returns the tenant whose feature flags drive the sync.
func (c *SyncUserPermissionsCommand) TenantID() kernel.UUID { return c.tenantID }

// Validate ensures the command was created through the constructor.
func (c *SyncUserPermissionsCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncUserPermissionsCommandIsNotConstructed,
	)
}

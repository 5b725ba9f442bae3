// Package staff contains administrative users, the role escalation chain,
// and the data-driven permission model consumed by permission sync.
package staff

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
)

// ErrStaffIsNotConstructed is returned when a Staff instance was not created
// through NewStaff or RestoreStaff.
var ErrStaffIsNotConstructed = errors.New("Staff must be created via NewStaff or RestoreStaff")

// Staff is an administrative user. Platform operators carry no tenant;
// every other role is scoped to exactly one tenant.
type Staff struct {
	id       kernel.UUID
	tenantID *kernel.UUID

	// branchID links a branch admin to the branch they manage; nil for
	// every other role.
	branchID *kernel.UUID

	role        Role
	isActive    bool
	permissions PermissionMap

	isConstructed bool
}

// NewStaff creates an active staff member with role-default permissions.
// tenantID must be nil for platform operators and non-nil otherwise.
func NewStaff(id kernel.UUID, tenantID *kernel.UUID, role Role) (*Staff, error) {
	s := &Staff{
		tenantID:      tenantID,
		role:          role,
		isActive:      true,
		permissions:   roleDefaults(role),
		isConstructed: true,
	}
	if err := s.validateIdentity(id, tenantID, role); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreStaff reconstructs a staff member from persistence.
func RestoreStaff(
	id kernel.UUID,
	tenantID *kernel.UUID,
	branchID *kernel.UUID,
	role Role,
	isActive bool,
	permissions PermissionMap,
) (*Staff, error) {
	s := &Staff{
		tenantID:      tenantID,
		branchID:      branchID,
		role:          role,
		isActive:      isActive,
		permissions:   permissions,
		isConstructed: true,
	}
	if err := s.validateIdentity(id, tenantID, role); err != nil {
		return nil, err
	}
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return nil, err
		}
	}
	if permissions == nil {
		s.permissions = roleDefaults(role)
	}
	return s, nil
}

func (s *Staff) validateIdentity(id kernel.UUID, tenantID *kernel.UUID, role Role) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}
	if tenantID != nil {
		if err := tenantID.Validate(); err != nil {
			return err
		}
	}
	s.id = id
	return nil
}

// Validate ensures the Staff instance was properly constructed.
func (s *Staff) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStaffIsNotConstructed
	}
	return nil
}

// ID returns the staff member's unique identifier.
func (s *Staff) ID() kernel.UUID {
	return s.id
}

// TenantID returns the owning tenant, or nil for platform operators.
func (s *Staff) TenantID() *kernel.UUID {
	return s.tenantID
}

// BranchID returns the managed branch, or nil when the member manages none.
func (s *Staff) BranchID() *kernel.UUID {
	return s.branchID
}

// AssignBranch links the staff member to the branch they manage.
func (s *Staff) AssignBranch(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	s.branchID = &branchID
	return nil
}

// Role returns the staff member's authority level.
func (s *Staff) Role() Role {
	return s.role
}

// IsActive reports whether the staff member can act and receive escalations.
func (s *Staff) IsActive() bool {
	return s.isActive
}

// Permissions returns the currently effective permission map.
func (s *Staff) Permissions() PermissionMap {
	return s.permissions
}

// ApplyPermissions replaces the effective permission map, typically with
// the output of EffectivePermissions during a sync.
func (s *Staff) ApplyPermissions(permissions PermissionMap) {
	s.permissions = permissions
}

package staff

import (
	"fmt"

	"laundryops/internal/pkg/errs"
)

// Role represents an administrative authority level. Roles form a strict
// escalation chain used by the refund workflow: a role's Superior is the
// next higher authority.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleBranchAdmin runs a single processing branch.
	RoleBranchAdmin

	// RoleTenantAdmin administers a whole tenant organization.
	RoleTenantAdmin

	// RoleRegionalAdmin oversees several tenants in a region.
	RoleRegionalAdmin

	// RolePlatformOperator is platform-level staff acting across tenants.
	RolePlatformOperator
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:          "unknown",
		RoleBranchAdmin:      "branch_admin",
		RoleTenantAdmin:      "tenant_admin",
		RoleRegionalAdmin:    "regional_admin",
		RolePlatformOperator: "platform_operator",
	}
}

// ParseRole converts a wire/storage representation into a Role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is a member of the known enum.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Superior returns the next higher authority in the escalation chain.
// Platform operators have no superior.
func (r Role) Superior() (Role, bool) {
	switch r {
	case RoleBranchAdmin:
		return RoleTenantAdmin, true
	case RoleTenantAdmin:
		return RoleRegionalAdmin, true
	case RoleRegionalAdmin:
		return RolePlatformOperator, true
	default:
		return RoleUnknown, false
	}
}

// IsAdminClass reports whether the role counts as an admin-class user of a
// tenant for permission sync purposes.
func (r Role) IsAdminClass() bool {
	return r == RoleBranchAdmin || r == RoleTenantAdmin
}

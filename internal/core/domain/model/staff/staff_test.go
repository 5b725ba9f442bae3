package staff_test

import (
	"testing"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaff(t *testing.T) {
	tenantID := kernel.NewUUID()

	member, err := staff.NewStaff(kernel.NewUUID(), &tenantID, staff.RoleBranchAdmin)

	require.NoError(t, err)
	assert.True(t, member.IsActive())
	assert.Nil(t, member.BranchID())
	assert.NotEmpty(t, member.Permissions())
}

func TestStaff_AssignBranch(t *testing.T) {
	tenantID := kernel.NewUUID()
	member, err := staff.NewStaff(kernel.NewUUID(), &tenantID, staff.RoleBranchAdmin)
	require.NoError(t, err)

	branchID := kernel.NewUUID()
	require.NoError(t, member.AssignBranch(branchID))

	require.NotNil(t, member.BranchID())
	assert.Equal(t, branchID, *member.BranchID())

	err = member.AssignBranch(kernel.UUID{})
	require.Error(t, err)
	assert.Equal(t, branchID, *member.BranchID(), "failed assignment leaves the link untouched")
}

func TestRestoreStaff(t *testing.T) {
	tenantID := kernel.NewUUID()
	branchID := kernel.NewUUID()

	t.Run("restores_branch_link", func(t *testing.T) {
		member, err := staff.RestoreStaff(
			kernel.NewUUID(), &tenantID, &branchID, staff.RoleBranchAdmin, true, nil)

		require.NoError(t, err)
		require.NotNil(t, member.BranchID())
		assert.Equal(t, branchID, *member.BranchID())
	})

	t.Run("nil_permissions_fall_back_to_role_defaults", func(t *testing.T) {
		member, err := staff.RestoreStaff(
			kernel.NewUUID(), &tenantID, nil, staff.RoleTenantAdmin, true, nil)

		require.NoError(t, err)
		assert.NotEmpty(t, member.Permissions())
	})

	t.Run("rejects_zero_branch_id", func(t *testing.T) {
		zero := kernel.UUID{}
		_, err := staff.RestoreStaff(
			kernel.NewUUID(), &tenantID, &zero, staff.RoleBranchAdmin, true, nil)

		require.Error(t, err)
	})
}

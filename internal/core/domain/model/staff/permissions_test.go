package staff_test

import (
	"testing"

	"laundryops/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePermissions(t *testing.T) {
	t.Run("no_disabled_features_keeps_role_defaults", func(t *testing.T) {
		permissions := staff.EffectivePermissions(staff.RoleTenantAdmin, nil)

		assert.True(t, permissions[staff.ModuleBilling]["edit"])
		assert.True(t, permissions[staff.ModuleOrders]["delete"])
		assert.True(t, permissions[staff.ModuleLeads]["view"])
	})

	t.Run("disabled_feature_zeroes_mapped_module", func(t *testing.T) {
		permissions := staff.EffectivePermissions(staff.RoleTenantAdmin,
			[]staff.Feature{staff.FeatureBilling, staff.FeatureLeadManagement})

		for action, allowed := range permissions[staff.ModuleBilling] {
			assert.False(t, allowed, "billing %s should be zeroed", action)
		}
		for action, allowed := range permissions[staff.ModuleLeads] {
			assert.False(t, allowed, "leads %s should be zeroed", action)
		}

		// unrelated modules untouched
		assert.True(t, permissions[staff.ModuleOrders]["view"])
		assert.True(t, permissions[staff.ModuleSupport]["create"])
	})

	t.Run("branch_admin_defaults_are_narrower", func(t *testing.T) {
		permissions := staff.EffectivePermissions(staff.RoleBranchAdmin, nil)

		assert.True(t, permissions[staff.ModuleOrders]["edit"])
		assert.False(t, permissions[staff.ModuleOrders]["delete"])
		assert.False(t, permissions[staff.ModuleBilling]["view"])
		assert.True(t, permissions[staff.ModuleReports]["view"])
	})

	t.Run("disabling_a_module_the_role_never_had_is_a_noop", func(t *testing.T) {
		permissions := staff.EffectivePermissions(staff.RoleBranchAdmin,
			[]staff.Feature{staff.FeatureBilling})

		for _, allowed := range permissions[staff.ModuleBilling] {
			assert.False(t, allowed)
		}
		assert.True(t, permissions[staff.ModuleOrders]["view"])
	})
}

func TestRole_Superior(t *testing.T) {
	superior, ok := staff.RoleBranchAdmin.Superior()
	require.True(t, ok)
	assert.Equal(t, staff.RoleTenantAdmin, superior)

	superior, ok = staff.RoleTenantAdmin.Superior()
	require.True(t, ok)
	assert.Equal(t, staff.RoleRegionalAdmin, superior)

	superior, ok = staff.RoleRegionalAdmin.Superior()
	require.True(t, ok)
	assert.Equal(t, staff.RolePlatformOperator, superior)

	_, ok = staff.RolePlatformOperator.Superior()
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	role, err := staff.ParseRole("regional_admin")
	require.NoError(t, err)
	assert.Equal(t, staff.RoleRegionalAdmin, role)

	_, err = staff.ParseRole("intern")
	require.Error(t, err)

	_, err = staff.ParseRole("unknown")
	require.Error(t, err)
}

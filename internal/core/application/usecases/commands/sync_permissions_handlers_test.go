package commands_test

import (
	"errors"
	"testing"

	"laundryops/internal/core/application/dispatch"
	"laundryops/internal/core/application/usecases/commands"
	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStaffUoW(staffRepo *MockStaffRepository) *MockStaffUoWFactory {
	uow := new(MockStaffUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("StaffRepository").Return(staffRepo)

	factory := new(MockStaffUoWFactory)
	factory.On("Create").Return(uow)
	return factory
}

func TestSyncUserPermissionsCommandHandler_Handle_ZeroesDisabledModules(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	member := newTestStaff(t, &tenantID, staff.RoleTenantAdmin)

	settings := new(MockTenantSettingsRepository)
	settings.On("DisabledFeatures", ctx, tenantID).
		Return([]staff.Feature{staff.FeatureBilling, staff.FeatureLeadManagement}, nil).Once()

	staffRepo := new(MockStaffRepository)
	staffRepo.On("Get", ctx, member.ID()).Return(member, nil).Once()
	staffRepo.On("UpdatePermissions", ctx, member.ID(), mock.AnythingOfType("staff.PermissionMap")).
		Return(nil).Once()
	factory := newStaffUoW(staffRepo)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
		return e.Kind == notification.KindPermissionSync &&
			e.RecipientID == member.ID() &&
			e.Data["requiresRefresh"] == true
	})).Return(dispatch.Result{Persisted: true, Pushed: 1}, nil).Once()

	handler := commands.NewSyncUserPermissionsCommandHandler(factory, settings, dispatcher, testLogger())

	cmd, err := commands.NewSyncUserPermissionsCommand(member.ID(), tenantID)
	require.NoError(t, err)

	permissions, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	for _, allowed := range permissions[staff.ModuleBilling] {
		assert.False(t, allowed)
	}
	for _, allowed := range permissions[staff.ModuleLeads] {
		assert.False(t, allowed)
	}
	assert.True(t, permissions[staff.ModuleOrders]["view"])
	assert.True(t, permissions[staff.ModuleOrders]["delete"])
	dispatcher.AssertExpectations(t)
	staffRepo.AssertExpectations(t)
}

func TestSyncUserPermissionsCommandHandler_Handle_NoDisabledFeatures(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	member := newTestStaff(t, &tenantID, staff.RoleBranchAdmin)

	settings := new(MockTenantSettingsRepository)
	settings.On("DisabledFeatures", ctx, tenantID).Return([]staff.Feature{}, nil).Once()

	staffRepo := new(MockStaffRepository)
	staffRepo.On("Get", ctx, member.ID()).Return(member, nil).Once()
	staffRepo.On("UpdatePermissions", ctx, member.ID(), mock.AnythingOfType("staff.PermissionMap")).
		Return(nil).Once()
	factory := newStaffUoW(staffRepo)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(dispatch.Result{}, nil).Once()

	handler := commands.NewSyncUserPermissionsCommandHandler(factory, settings, dispatcher, testLogger())

	cmd, err := commands.NewSyncUserPermissionsCommand(member.ID(), tenantID)
	require.NoError(t, err)

	permissions, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// branch admin defaults: operates orders but never deletes them
	assert.True(t, permissions[staff.ModuleOrders]["view"])
	assert.False(t, permissions[staff.ModuleOrders]["delete"])
	assert.False(t, permissions[staff.ModuleBilling]["view"])
}

func TestSyncTenancyPermissionsCommandHandler_Handle_SyncsAllAdmins(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	first := newTestStaff(t, &tenantID, staff.RoleTenantAdmin)
	second := newTestStaff(t, &tenantID, staff.RoleBranchAdmin)

	settings := new(MockTenantSettingsRepository)
	settings.On("DisabledFeatures", ctx, tenantID).
		Return([]staff.Feature{staff.FeatureAnalytics}, nil).Once()

	staffRepo := new(MockStaffRepository)
	staffRepo.On("GetAdminsForTenant", ctx, tenantID).
		Return([]*staff.Staff{first, second}, nil).Once()
	staffRepo.On("UpdatePermissions", ctx, first.ID(), mock.AnythingOfType("staff.PermissionMap")).
		Return(nil).Once()
	staffRepo.On("UpdatePermissions", ctx, second.ID(), mock.AnythingOfType("staff.PermissionMap")).
		Return(nil).Once()
	factory := newStaffUoW(staffRepo)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
		return e.Kind == notification.KindPermissionSync
	})).Return(dispatch.Result{Persisted: true}, nil).Times(2)

	handler := commands.NewSyncTenancyPermissionsCommandHandler(factory, settings, dispatcher, testLogger())

	cmd, err := commands.NewSyncTenancyPermissionsCommand(tenantID)
	require.NoError(t, err)

	synced, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.ElementsMatch(t, []kernel.UUID{first.ID(), second.ID()}, synced)
	// analytics disabled zeroes the reports module for both
	for _, allowed := range first.Permissions()[staff.ModuleReports] {
		assert.False(t, allowed)
	}
	staffRepo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestSyncTenancyPermissionsCommandHandler_Handle_OneFailureDoesNotStopOthers(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	failing := newTestStaff(t, &tenantID, staff.RoleTenantAdmin)
	healthy := newTestStaff(t, &tenantID, staff.RoleBranchAdmin)

	settings := new(MockTenantSettingsRepository)
	settings.On("DisabledFeatures", ctx, tenantID).Return([]staff.Feature{}, nil).Once()

	staffRepo := new(MockStaffRepository)
	staffRepo.On("GetAdminsForTenant", ctx, tenantID).
		Return([]*staff.Staff{failing, healthy}, nil).Once()
	staffRepo.On("UpdatePermissions", ctx, failing.ID(), mock.AnythingOfType("staff.PermissionMap")).
		Return(errors.New("row locked")).Once()
	staffRepo.On("UpdatePermissions", ctx, healthy.ID(), mock.AnythingOfType("staff.PermissionMap")).
		Return(nil).Once()
	factory := newStaffUoW(staffRepo)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(dispatch.Result{}, nil).Once()

	handler := commands.NewSyncTenancyPermissionsCommandHandler(factory, settings, dispatcher, testLogger())

	cmd, err := commands.NewSyncTenancyPermissionsCommand(tenantID)
	require.NoError(t, err)

	synced, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{healthy.ID()}, synced)
}

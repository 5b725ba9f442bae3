package commands

import (
	"context"
	"log/slog"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/core/ports"
)

// SyncTenancyPermissionsCommandHandler fans a permission sync out over every
// admin-class staff member of a tenant. Each member syncs independently in
// its own transaction, so one failing member never blocks the rest.
type SyncTenancyPermissionsCommandHandler struct {
	uowFactory StaffUoWFactory
	settings   ports.TenantSettingsRepository
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewSyncTenancyPermissionsCommandHandler creates a handler for tenancy-wide
// permission sync.
func NewSyncTenancyPermissionsCommandHandler(
	uowFactory StaffUoWFactory,
	settings ports.TenantSettingsRepository,
	dispatcher Dispatcher,
	logger *slog.Logger,
) SyncTenancyPermissionsCommandHandler {
	return SyncTenancyPermissionsCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		dispatcher: dispatcher,
		logger:     logger.With("component", "commands.SyncTenancyPermissionsCommandHandler"),
	}
}

// Handle syncs every admin of the tenant and returns the ids that synced
// successfully. Failed members are logged and skipped.
func (h SyncTenancyPermissionsCommandHandler) Handle(ctx context.Context, command SyncTenancyPermissionsCommand) ([]kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	disabled, err := h.settings.DisabledFeatures(ctx, command.TenantID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	admins, err := uow.StaffRepository().GetAdminsForTenant(ctx, command.TenantID())
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
		h.logger.Error("rollback admin listing", "error", rollbackErr)
	}
	if err != nil {
		return nil, err
	}

	synced := make([]kernel.UUID, 0, len(admins))
	for _, admin := range admins {
		if err := h.syncMember(ctx, admin, disabled, command.TenantID()); err != nil {
			h.logger.Error("sync tenant admin",
				"staffId", admin.ID().String(),
				"tenantId", command.TenantID().String(),
				"error", err,
			)
			continue
		}
		synced = append(synced, admin.ID())
	}

	return synced, nil
}

func (h SyncTenancyPermissionsCommandHandler) syncMember(
	ctx context.Context,
	member *staff.Staff,
	disabled []staff.Feature,
	tenantID kernel.UUID,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	permissions := staff.EffectivePermissions(member.Role(), disabled)
	member.ApplyPermissions(permissions)

	if err := uow.StaffRepository().UpdatePermissions(ctx, member.ID(), permissions); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	runSideEffects(ctx, h.logger, []sideEffect{
		{name: "permission-sync-notification", run: func(ctx context.Context) error {
			_, err := h.dispatcher.Dispatch(ctx, notification.Event{
				RecipientType: notification.RecipientStaff,
				RecipientID:   member.ID(),
				TenantID:      &tenantID,
				Kind:          notification.KindPermissionSync,
				Title:         "Permissions updated",
				Message:       "Your permissions have been updated",
				Data: map[string]any{
					"permissions":     permissions,
					"requiresRefresh": true,
				},
				Channels: notification.Channels{InApp: true},
			})
			return err
		}},
	})

	return nil
}

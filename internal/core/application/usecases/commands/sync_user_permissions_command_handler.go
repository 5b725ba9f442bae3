package commands

import (
	"context"
	"log/slog"

	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/core/ports"
)

// SyncUserPermissionsCommandHandler recomputes and persists one staff
// member's effective permission map: role defaults with every module of a
// disabled tenant feature zeroed out.
type SyncUserPermissionsCommandHandler struct {
	uowFactory StaffUoWFactory
	settings   ports.TenantSettingsRepository
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewSyncUserPermissionsCommandHandler creates a handler for per-user
// permission sync.
func NewSyncUserPermissionsCommandHandler(
	uowFactory StaffUoWFactory,
	settings ports.TenantSettingsRepository,
	dispatcher Dispatcher,
	logger *slog.Logger,
) SyncUserPermissionsCommandHandler {
	return SyncUserPermissionsCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		dispatcher: dispatcher,
		logger:     logger.With("component", "commands.SyncUserPermissionsCommandHandler"),
	}
}

// Handle recomputes the permission map, persists it, and pushes the full
// map to the staff member's live connections so open sessions pick it up
// without re-login. Returns the effective map.
func (h SyncUserPermissionsCommandHandler) Handle(ctx context.Context, command SyncUserPermissionsCommand) (staff.PermissionMap, error) {
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

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	member, err := uow.StaffRepository().Get(ctx, command.StaffID())
	if err != nil {
		return nil, err
	}

	permissions := staff.EffectivePermissions(member.Role(), disabled)
	member.ApplyPermissions(permissions)

	if err = uow.StaffRepository().UpdatePermissions(ctx, member.ID(), permissions); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	tenantID := command.TenantID()
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

	return permissions, nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/pkg/errs"
)

// ErrNoEscalationTarget is returned when no active staff member exists
// anywhere up the role chain. The refund stays in its current status.
var ErrNoEscalationTarget = errors.New("no active escalation target found")

// EscalateRefundCommandHandler hands refund decisions up the role chain.
// The target is the first active staff member found walking the actor's
// superiors: branch admin -> tenant admin -> regional admin -> platform
// operator, with only the platform-operator lookup crossing tenants.
type EscalateRefundCommandHandler struct {
	uowFactory RefundUoWFactory
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewEscalateRefundCommandHandler creates a handler for refund escalations.
func NewEscalateRefundCommandHandler(
	uowFactory RefundUoWFactory,
	dispatcher Dispatcher,
	logger *slog.Logger,
) EscalateRefundCommandHandler {
	return EscalateRefundCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "commands.EscalateRefundCommandHandler"),
	}
}

// Handle resolves the escalation target, moves the refund to Escalated,
// and notifies the target after commit.
func (h EscalateRefundCommandHandler) Handle(ctx context.Context, command EscalateRefundCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.RefundRepository().GetForTenant(ctx, command.RefundID(), command.TenantID())
	if err != nil {
		return err
	}

	actor, err := uow.StaffRepository().Get(ctx, command.ActorID())
	if err != nil {
		return err
	}

	target, err := h.resolveTarget(ctx, uow, actor.Role(), command.TenantID())
	if err != nil {
		return err
	}

	if err = aggregate.Escalate(actor.ID(), target.ID(), command.Reason()); err != nil {
		return err
	}

	if err = uow.RefundRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	tenantID := aggregate.TenantID()
	runSideEffects(ctx, h.logger, []sideEffect{
		{name: "refund-escalated-notification", run: func(ctx context.Context) error {
			_, err := h.dispatcher.Dispatch(ctx, notification.Event{
				RecipientType: notification.RecipientStaff,
				RecipientID:   target.ID(),
				TenantID:      &tenantID,
				Kind:          notification.KindRefundEscalated,
				Title:         "Refund escalated to you",
				Message:       fmt.Sprintf("Refund %s for %s needs your decision: %s", aggregate.ID(), aggregate.Amount(), command.Reason()),
				Data: map[string]any{
					"refundId": aggregate.ID().String(),
					"amount":   aggregate.Amount().String(),
					"reason":   command.Reason(),
				},
				Channels: notification.Channels{InApp: true, Email: true},
			})
			return err
		}},
	})

	return nil
}

// resolveTarget walks the superior chain from the actor's role and returns
// the first active staff member holding one of those roles.
func (h EscalateRefundCommandHandler) resolveTarget(
	ctx context.Context,
	uow RefundUoW,
	actorRole staff.Role,
	tenantID kernel.UUID,
) (*staff.Staff, error) {
	role := actorRole
	for {
		superior, ok := role.Superior()
		if !ok {
			return nil, ErrNoEscalationTarget
		}

		scope := &tenantID
		if superior == staff.RolePlatformOperator {
			scope = nil
		}

		target, err := uow.StaffRepository().FindActiveByRole(ctx, scope, superior)
		if err == nil {
			return target, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}

		role = superior
	}
}

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/refund"
)

// ApproveRefundCommandHandler accepts refunds within the actor's approval
// ceiling. Amounts over the ceiling fail with refund.ErrLimitExceeded and
// leave the request untouched; the caller escalates instead.
type ApproveRefundCommandHandler struct {
	uowFactory RefundUoWFactory
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewApproveRefundCommandHandler creates a handler for refund approvals.
func NewApproveRefundCommandHandler(
	uowFactory RefundUoWFactory,
	dispatcher Dispatcher,
	logger *slog.Logger,
) ApproveRefundCommandHandler {
	return ApproveRefundCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "commands.ApproveRefundCommandHandler"),
	}
}

// Handle loads the refund and the acting staff member, applies the approval
// with the actor's stored role, and notifies the original requester after
// commit.
func (h ApproveRefundCommandHandler) Handle(ctx context.Context, command ApproveRefundCommand) error {
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

	if err = aggregate.Approve(actor.Role(), actor.ID()); err != nil {
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
		{name: "refund-approved-notification", run: func(ctx context.Context) error {
			_, err := h.dispatcher.Dispatch(ctx, notification.Event{
				RecipientType: notification.RecipientStaff,
				RecipientID:   aggregate.RequestedBy(),
				TenantID:      &tenantID,
				Kind:          notification.KindRefundApproved,
				Title:         "Refund approved",
				Message:       fmt.Sprintf("Refund %s for %s was approved", aggregate.ID(), aggregate.Amount()),
				Data: map[string]any{
					"refundId": aggregate.ID().String(),
					"status":   refund.Approved.String(),
				},
				Channels: notification.Channels{InApp: true},
			})
			return err
		}},
	})

	return nil
}

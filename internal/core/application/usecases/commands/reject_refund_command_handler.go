package commands

import (
	"context"
	"fmt"
	"log/slog"

	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/refund"
)

// RejectRefundCommandHandler declines refund requests.
type RejectRefundCommandHandler struct {
	uowFactory RefundUoWFactory
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewRejectRefundCommandHandler creates a handler for refund rejections.
func NewRejectRefundCommandHandler(
	uowFactory RefundUoWFactory,
	dispatcher Dispatcher,
	logger *slog.Logger,
) RejectRefundCommandHandler {
	return RejectRefundCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "commands.RejectRefundCommandHandler"),
	}
}

// Handle rejects the refund and notifies the original requester after commit.
func (h RejectRefundCommandHandler) Handle(ctx context.Context, command RejectRefundCommand) error {
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

	if err = aggregate.Reject(command.ActorID(), command.Reason()); err != nil {
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
		{name: "refund-rejected-notification", run: func(ctx context.Context) error {
			_, err := h.dispatcher.Dispatch(ctx, notification.Event{
				RecipientType: notification.RecipientStaff,
				RecipientID:   aggregate.RequestedBy(),
				TenantID:      &tenantID,
				Kind:          notification.KindRefundRejected,
				Title:         "Refund rejected",
				Message:       fmt.Sprintf("Refund %s was rejected: %s", aggregate.ID(), command.Reason()),
				Data: map[string]any{
					"refundId": aggregate.ID().String(),
					"status":   refund.Rejected.String(),
					"reason":   command.Reason(),
				},
				Channels: notification.Channels{InApp: true},
			})
			return err
		}},
	})

	return nil
}

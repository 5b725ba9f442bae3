package commands

import (
	"context"
	"fmt"
	"log/slog"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/refund"
)

// RequestRefundCommandHandler opens refund requests and alerts the tenant's
// admins so somebody picks the decision up.
type RequestRefundCommandHandler struct {
	uowFactory RefundUoWFactory
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewRequestRefundCommandHandler creates a handler for opening refunds.
func NewRequestRefundCommandHandler(
	uowFactory RefundUoWFactory,
	dispatcher Dispatcher,
	logger *slog.Logger,
) RequestRefundCommandHandler {
	return RequestRefundCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "commands.RequestRefundCommandHandler"),
	}
}

// Handle creates the refund request in Requested status and, after commit,
// notifies the tenant-admins room. Returns the new refund id.
func (h RequestRefundCommandHandler) Handle(ctx context.Context, command RequestRefundCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	aggregate, err := refund.NewRefundRequest(
		kernel.NewUUID(),
		command.TenantID(),
		command.OrderID(),
		command.CustomerID(),
		command.Amount(),
		command.RequestedBy(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RefundRepository().Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	tenantID := command.TenantID()
	runSideEffects(ctx, h.logger, []sideEffect{
		{name: "refund-requested-notification", run: func(ctx context.Context) error {
			_, err := h.dispatcher.Dispatch(ctx, notification.Event{
				RecipientType: notification.RecipientTenantAdmins,
				TenantID:      &tenantID,
				Kind:          notification.KindRefundRequested,
				Title:         "Refund requested",
				Message:       fmt.Sprintf("A refund of %s was requested for order %s", command.Amount(), command.OrderID()),
				Data: map[string]any{
					"refundId": aggregate.ID().String(),
					"orderId":  command.OrderID().String(),
					"amount":   command.Amount().String(),
				},
				Channels: notification.Channels{InApp: true},
			})
			return err
		}},
	})

	return aggregate.ID(), nil
}

package commands

import (
	"context"
	"log/slog"
)

// ProcessRefundCommandHandler finalizes approved refunds. Processing is
// terminal and produces no notification of its own; the requester already
// learned the outcome at approval time.
type ProcessRefundCommandHandler struct {
	uowFactory RefundUoWFactory
	logger     *slog.Logger
}

// NewProcessRefundCommandHandler creates a handler for refund processing.
func NewProcessRefundCommandHandler(uowFactory RefundUoWFactory, logger *slog.Logger) ProcessRefundCommandHandler {
	return ProcessRefundCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "commands.ProcessRefundCommandHandler"),
	}
}

// Handle moves the refund to Processed and records the transaction
// reference. Returns the reference actually stored.
func (h ProcessRefundCommandHandler) Handle(ctx context.Context, command ProcessRefundCommand) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.RefundRepository().GetForTenant(ctx, command.RefundID(), command.TenantID())
	if err != nil {
		return "", err
	}

	if err = aggregate.Process(command.ActorID(), command.TransactionID()); err != nil {
		return "", err
	}

	if err = uow.RefundRepository().Update(ctx, aggregate); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.logger.Info("refund processed",
		"refundId", aggregate.ID().String(),
		"transactionId", aggregate.TransactionID(),
	)
	return aggregate.TransactionID(), nil
}

package commands

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrProcessRefundCommandIsNotConstructed = errors.New(
	"ProcessRefundCommand must be created via NewProcessRefundCommand constructor",
)

// ProcessRefundCommand moves the money for an approved refund.
// transactionID is the payment provider's reference; when empty the
// aggregate generates one.
type ProcessRefundCommand struct {
	refundID      kernel.UUID
	tenantID      kernel.UUID
	actorID       kernel.UUID
	transactionID string

	guard guard.ConstructorGuard
}

// NewProcessRefundCommand creates a validated processing command.
func NewProcessRefundCommand(refundID, tenantID, actorID kernel.UUID, transactionID string) (ProcessRefundCommand, error) {
	if err := refundID.Validate(); err != nil {
		return ProcessRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("refund id", err)
	}
	if err := tenantID.Validate(); err != nil {
		return ProcessRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	if err := actorID.Validate(); err != nil {
		return ProcessRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}

	return ProcessRefundCommand{
		refundID:      refundID,
		tenantID:      tenantID,
		actorID:       actorID,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RefundID returns the target refund request's identifier.
func (c *ProcessRefundCommand) RefundID() kernel.UUID { return c.refundID }

// TenantID returns the tenant scope of the operation.
func (c *ProcessRefundCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the processing staff member's identifier.
func (c *ProcessRefundCommand) ActorID() kernel.UUID { return c.actorID }

// TransactionID returns the optional provider transaction reference.
func (c *ProcessRefundCommand) TransactionID() string { return c.transactionID }

// Validate ensures the command was created through the constructor.
func (c *ProcessRefundCommand) Validate() error {
	return c.guard.Validate(
		ErrProcessRefundCommandIsNotConstructed,
	)
}

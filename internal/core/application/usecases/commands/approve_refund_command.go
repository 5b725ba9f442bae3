package commands

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrApproveRefundCommandIsNotConstructed = errors.New(
	"ApproveRefundCommand must be created via NewApproveRefundCommand constructor",
)

// ApproveRefundCommand accepts a refund on behalf of an acting staff member.
// The actor's role, and with it the approval ceiling, is resolved from
// storage by the handler rather than trusted from the caller.
type ApproveRefundCommand struct {
	refundID kernel.UUID
	tenantID kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveRefundCommand creates a validated approval command.
func NewApproveRefundCommand(refundID, tenantID, actorID kernel.UUID) (ApproveRefundCommand, error) {
	if err := refundID.Validate(); err != nil {
		return ApproveRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("refund id", err)
	}
	if err := tenantID.Validate(); err != nil {
		return ApproveRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	if err := actorID.Validate(); err != nil {
		return ApproveRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}

	return ApproveRefundCommand{
		refundID: refundID,
		tenantID: tenantID,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RefundID returns the target refund request's identifier.
func (c *ApproveRefundCommand) RefundID() kernel.UUID { return c.refundID }

// TenantID returns the tenant scope of the operation.
func (c *ApproveRefundCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the approving staff member's identifier.
func (c *ApproveRefundCommand) ActorID() kernel.UUID { return c.actorID }

// Validate ensures the command was created through the constructor.
func (c *ApproveRefundCommand) Validate() error {
	return c.guard.Validate(
		ErrApproveRefundCommandIsNotConstructed,
	)
}

package commands

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrRejectRefundCommandIsNotConstructed = errors.New(
	"RejectRefundCommand must be created via NewRejectRefundCommand constructor",
)

// RejectRefundCommand declines a refund request with a mandatory reason.
type RejectRefundCommand struct {
	refundID kernel.UUID
	tenantID kernel.UUID
	actorID  kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewRejectRefundCommand creates a validated rejection command.
func NewRejectRefundCommand(refundID, tenantID, actorID kernel.UUID, reason string) (RejectRefundCommand, error) {
	if err := refundID.Validate(); err != nil {
		return RejectRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("refund id", err)
	}
	if err := tenantID.Validate(); err != nil {
		return RejectRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	if err := actorID.Validate(); err != nil {
		return RejectRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	if reason == "" {
		return RejectRefundCommand{}, errs.NewValueIsRequiredError("rejection reason")
	}

	return RejectRefundCommand{
		refundID: refundID,
		tenantID: tenantID,
		actorID:  actorID,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RefundID returns the target refund request's identifier.
func (c *RejectRefundCommand) RefundID() kernel.UUID { return c.refundID }

// TenantID returns the tenant scope of the operation.
func (c *RejectRefundCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the rejecting staff member's identifier.
func (c *RejectRefundCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the mandatory rejection reason.
func (c *RejectRefundCommand) Reason() string { return c.reason }

// Validate ensures the command was created through the constructor.
func (c *RejectRefundCommand) Validate() error {
	return c.guard.Validate(
		ErrRejectRefundCommandIsNotConstructed,
	)
}

package commands

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrEscalateRefundCommandIsNotConstructed = errors.New(
	"EscalateRefundCommand must be created via NewEscalateRefundCommand constructor",
)

// EscalateRefundCommand hands a refund decision to a higher authority.
// The handler resolves the concrete recipient by walking the role chain;
// the command only carries who escalates and why.
type EscalateRefundCommand struct {
	refundID kernel.UUID
	tenantID kernel.UUID
	actorID  kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewEscalateRefundCommand creates a validated escalation command.
func NewEscalateRefundCommand(refundID, tenantID, actorID kernel.UUID, reason string) (EscalateRefundCommand, error) {
	if err := refundID.Validate(); err != nil {
		return EscalateRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("refund id", err)
	}
	if err := tenantID.Validate(); err != nil {
		return EscalateRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	if err := actorID.Validate(); err != nil {
		return EscalateRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	if reason == "" {
		return EscalateRefundCommand{}, errs.NewValueIsRequiredError("escalation reason")
	}

	return EscalateRefundCommand{
		refundID: refundID,
		tenantID: tenantID,
		actorID:  actorID,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RefundID returns the target refund request's identifier.
func (c *EscalateRefundCommand) RefundID() kernel.UUID { return c.refundID }

// TenantID returns the tenant scope of the operation.
func (c *EscalateRefundCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the escalating staff member's identifier.
func (c *EscalateRefundCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the mandatory escalation reason.
func (c *EscalateRefundCommand) Reason() string { return c.reason }

// Validate ensures the command was created through the constructor.
func (c *EscalateRefundCommand) Validate() error {
	return c.guard.Validate(
		ErrEscalateRefundCommandIsNotConstructed,
	)
}

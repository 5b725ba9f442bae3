package commands

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/order"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to the next lifecycle status on
// behalf of an actor. The order aggregate enforces which moves are legal;
// the command only carries validated input.
type TransitionOrderCommand struct {
	orderID    kernel.UUID
	tenantID   kernel.UUID
	actorID    kernel.UUID
	nextStatus order.Status
	notes      string
	branchID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a validated transition command.
// notes is optional free text recorded in the status history. branchID
// carries the chosen branch and is required when nextStatus is
// AssignedToBranch; branch selection itself happens outside this service.
func NewTransitionOrderCommand(
	orderID, tenantID, actorID kernel.UUID,
	nextStatus order.Status,
	notes string,
	branchID *kernel.UUID,
) (TransitionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := tenantID.Validate(); err != nil {
		return TransitionOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	if err := actorID.Validate(); err != nil {
		return TransitionOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	if err := nextStatus.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}
	if nextStatus == order.AssignedToBranch && branchID == nil {
		return TransitionOrderCommand{}, errs.NewValueIsRequiredError("branch id")
	}
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return TransitionOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("branch id", err)
		}
	}

	return TransitionOrderCommand{
		orderID:    orderID,
		tenantID:   tenantID,
		actorID:    actorID,
		nextStatus: nextStatus,
		notes:      notes,
		branchID:   branchID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the target order's identifier.
func (c *TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the tenant scope of the operation.
func (c *TransitionOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// ActorID returns who requested the transition.
func (c *TransitionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// NextStatus returns the requested target status.
func (c *TransitionOrderCommand) NextStatus() order.Status {
	return c.nextStatus
}

// Notes returns the optional free-text note for the history entry.
func (c *TransitionOrderCommand) Notes() string {
	return c.notes
}

// BranchID returns the branch chosen for an AssignedToBranch transition,
// or nil for every other status.
func (c *TransitionOrderCommand) BranchID() *kernel.UUID {
	return c.branchID
}

// Validate ensures the command was created through the constructor.
func (c *TransitionOrderCommand) Validate() error {
	return c.guard.Validate(
		ErrTransitionOrderCommandIsNotConstructed,
	)
}

package commands

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRequestRefundCommandIsNotConstructed = errors.New(
	"RequestRefundCommand must be created via NewRequestRefundCommand constructor",
)

// RequestRefundCommand opens a refund request for an order.
type RequestRefundCommand struct {
	tenantID    kernel.UUID
	orderID     kernel.UUID
	customerID  kernel.UUID
	amount      decimal.Decimal
	requestedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestRefundCommand creates a validated refund request command.
func NewRequestRefundCommand(
	tenantID, orderID, customerID kernel.UUID,
	amount decimal.Decimal,
	requestedBy kernel.UUID,
) (RequestRefundCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return RequestRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	if err := orderID.Validate(); err != nil {
		return RequestRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := customerID.Validate(); err != nil {
		return RequestRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	if err := requestedBy.Validate(); err != nil {
		return RequestRefundCommand{}, errs.NewValueIsRequiredErrorWithCause("requested by", err)
	}
	if !amount.IsPositive() {
		return RequestRefundCommand{}, errs.NewValueIsInvalidError("refund amount must be positive")
	}

	return RequestRefundCommand{
		tenantID:    tenantID,
		orderID:     orderID,
		customerID:  customerID,
		amount:      amount,
		requestedBy: requestedBy,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scope of the operation.
func (c *RequestRefundCommand) TenantID() kernel.UUID { return c.tenantID }

// OrderID returns the order the refund is for.
func (c *RequestRefundCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the customer the money goes back to.
func (c *RequestRefundCommand) CustomerID() kernel.UUID { return c.customerID }

// Amount returns the requested refund amount.
func (c *RequestRefundCommand) Amount() decimal.Decimal { return c.amount }

// RequestedBy returns who opened the request.
func (c *RequestRefundCommand) RequestedBy() kernel.UUID { return c.requestedBy }

// Validate ensures the command was created through the constructor.
func (c *RequestRefundCommand) Validate() error {
	return c.guard.Validate(
		ErrRequestRefundCommandIsNotConstructed,
	)
}

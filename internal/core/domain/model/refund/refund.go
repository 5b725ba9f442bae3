// Package refund contains the refund-request aggregate: a small state
// machine with role-scoped approval ceilings and an escalation path to
// higher-authority staff.
package refund

import (
	"errors"
	"fmt"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrRefundIsNotConstructed is returned when a RefundRequest was not
	// created through NewRefundRequest or RestoreRefundRequest.
	ErrRefundIsNotConstructed = errors.New("RefundRequest must be created via NewRefundRequest or RestoreRefundRequest")

	// ErrLimitExceeded is returned when the refund amount exceeds the
	// acting role's approval ceiling. The caller should escalate instead.
	ErrLimitExceeded = errors.New("refund amount exceeds role approval limit")

	// ErrInvalidTransition is returned for moves the refund state machine
	// does not allow.
	ErrInvalidTransition = errors.New("illegal refund status transition")
)

// approvalCeilings is the static role -> ceiling table. Platform operators
// have no ceiling and are absent from the table.
var approvalCeilings = map[staff.Role]decimal.Decimal{
	staff.RoleBranchAdmin:   decimal.NewFromInt(500),
	staff.RoleTenantAdmin:   decimal.NewFromInt(2500),
	staff.RoleRegionalAdmin: decimal.NewFromInt(10000),
}

// ApprovalCeiling returns the maximum refund amount the role may approve.
// The second return is false for roles without a ceiling.
func ApprovalCeiling(role staff.Role) (decimal.Decimal, bool) {
	ceiling, ok := approvalCeilings[role]
	return ceiling, ok
}

// RefundRequest is the aggregate for a customer refund. It is owned by the
// tenant; cross-tenant access is rejected at the repository layer.
type RefundRequest struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	amount     decimal.Decimal
	status     Status

	requestedBy kernel.UUID
	approvedBy  *kernel.UUID
	rejectedBy  *kernel.UUID
	escalatedTo *kernel.UUID
	processedBy *kernel.UUID

	reason        string
	transactionID string

	isConstructed bool
}

// NewRefundRequest creates a refund request in Requested status.
func NewRefundRequest(
	id, tenantID, orderID, customerID kernel.UUID,
	amount decimal.Decimal,
	requestedBy kernel.UUID,
) (*RefundRequest, error) {
	r := &RefundRequest{
		amount:        amount,
		status:        Requested,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setUUID(&r.id, id, "refund id"),
		r.setUUID(&r.tenantID, tenantID, "tenant id"),
		r.setUUID(&r.orderID, orderID, "order id"),
		r.setUUID(&r.customerID, customerID, "customer id"),
		r.setUUID(&r.requestedBy, requestedBy, "requested by"),
	); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidError("refund amount must be positive")
	}

	return r, nil
}

// RestoreRefundRequest reconstructs a refund request from persistence.
func RestoreRefundRequest(
	id, tenantID, orderID, customerID kernel.UUID,
	amount decimal.Decimal,
	status Status,
	requestedBy kernel.UUID,
	approvedBy, rejectedBy, escalatedTo, processedBy *kernel.UUID,
	reason, transactionID string,
) (*RefundRequest, error) {
	r := &RefundRequest{
		amount:        amount,
		status:        status,
		approvedBy:    approvedBy,
		rejectedBy:    rejectedBy,
		escalatedTo:   escalatedTo,
		processedBy:   processedBy,
		reason:        reason,
		transactionID: transactionID,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setUUID(&r.id, id, "refund id"),
		r.setUUID(&r.tenantID, tenantID, "tenant id"),
		r.setUUID(&r.orderID, orderID, "order id"),
		r.setUUID(&r.customerID, customerID, "customer id"),
		r.setUUID(&r.requestedBy, requestedBy, "requested by"),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidError("refund amount must be positive")
	}

	return r, nil
}

// Validate ensures the RefundRequest instance was properly constructed.
func (r *RefundRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRefundIsNotConstructed
	}
	return nil
}

// ID returns the refund request's unique identifier.
func (r *RefundRequest) ID() kernel.UUID { return r.id }

// TenantID returns the owning tenant's identifier.
func (r *RefundRequest) TenantID() kernel.UUID { return r.tenantID }

// OrderID returns the refunded order's identifier.
func (r *RefundRequest) OrderID() kernel.UUID { return r.orderID }

// CustomerID returns the customer the money goes back to.
func (r *RefundRequest) CustomerID() kernel.UUID { return r.customerID }

// Amount returns the refund amount.
func (r *RefundRequest) Amount() decimal.Decimal { return r.amount }

// Status returns the current lifecycle status.
func (r *RefundRequest) Status() Status { return r.status }

// RequestedBy returns who opened the request.
func (r *RefundRequest) RequestedBy() kernel.UUID { return r.requestedBy }

// ApprovedBy returns who approved the request, or nil.
func (r *RefundRequest) ApprovedBy() *kernel.UUID { return r.approvedBy }

// RejectedBy returns who rejected the request, or nil.
func (r *RefundRequest) RejectedBy() *kernel.UUID { return r.rejectedBy }

// EscalatedTo returns the higher-authority recipient the decision was
// handed to, or nil.
func (r *RefundRequest) EscalatedTo() *kernel.UUID { return r.escalatedTo }

// ProcessedBy returns who processed the request, or nil.
func (r *RefundRequest) ProcessedBy() *kernel.UUID { return r.processedBy }

// Reason returns the latest rejection/escalation reason.
func (r *RefundRequest) Reason() string { return r.reason }

// TransactionID returns the processing transaction reference, or "".
func (r *RefundRequest) TransactionID() string { return r.transactionID }

// Approve accepts the refund on behalf of actorID holding actorRole.
//
// Legal from Requested and Escalated. Fails with ErrLimitExceeded when the
// amount is above the role's approval ceiling; the caller must escalate
// instead.
func (r *RefundRequest) Approve(actorRole staff.Role, actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if r.status != Requested && r.status != Escalated {
		return fmt.Errorf("%w: approve from %s", ErrInvalidTransition, r.status)
	}

	if ceiling, limited := ApprovalCeiling(actorRole); limited && r.amount.GreaterThan(ceiling) {
		return fmt.Errorf("%w: amount %s over %s ceiling %s",
			ErrLimitExceeded, r.amount, actorRole, ceiling)
	}

	r.status = Approved
	r.approvedBy = &actorID
	return nil
}

// Reject declines the refund with a mandatory reason. Terminal.
// Legal from Requested and Escalated.
func (r *RefundRequest) Reject(actorID kernel.UUID, reason string) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	if r.status != Requested && r.status != Escalated {
		return fmt.Errorf("%w: reject from %s", ErrInvalidTransition, r.status)
	}

	r.status = Rejected
	r.rejectedBy = &actorID
	r.reason = reason
	return nil
}

// Escalate hands the decision to targetID, a resolved higher-authority
// recipient. Target resolution (and the no-target failure) is the caller's
// concern; the aggregate only records the re-targeting.
func (r *RefundRequest) Escalate(actorID, targetID kernel.UUID, reason string) error {
	if err := errors.Join(actorID.Validate(), targetID.Validate()); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("escalation reason")
	}
	if r.status != Requested {
		return fmt.Errorf("%w: escalate from %s", ErrInvalidTransition, r.status)
	}

	r.status = Escalated
	r.escalatedTo = &targetID
	r.reason = reason
	return nil
}

// Process moves the approved money and records the transaction reference,
// generating one when none is supplied. Legal only from Approved. Terminal.
func (r *RefundRequest) Process(actorID kernel.UUID, transactionID string) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if r.status != Approved {
		return fmt.Errorf("%w: process from %s", ErrInvalidTransition, r.status)
	}

	if transactionID == "" {
		transactionID = "rf-" + uuid.NewString()
	}

	r.status = Processed
	r.processedBy = &actorID
	r.transactionID = transactionID
	return nil
}

func (r *RefundRequest) setUUID(dst *kernel.UUID, id kernel.UUID, param string) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	*dst = id
	return nil
}

package order

import (
	"errors"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// StatusChange is a single append-only entry in an order's status history.
type StatusChange struct {
	Status  Status
	ActorID kernel.UUID
	Notes   string
	At      time.Time
}

// Order is the aggregate root for the order lifecycle. It owns the status
// state machine and the status history, and is the only writer of both.
//
// Invariants:
//   - status always equals the status of the last history entry; both are
//     written together in TransitionTo
//   - the history is append-only, never reordered or pruned
//   - every order belongs to exactly one tenant
//   - the reward marker is set at most once per order
type Order struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	customerID kernel.UUID

	// branchID is the processing branch (nil until branch assignment)
	branchID *kernel.UUID

	// logisticsPartnerID is the pickup/delivery partner (nil until assignment)
	logisticsPartnerID *kernel.UUID

	total         decimal.Decimal
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	status  Status
	history []StatusChange

	// rewardsGrantedAt marks that the reward pipeline already ran for this
	// order, so re-entering Delivered can never double-count.
	rewardsGrantedAt *time.Time

	isConstructed bool
}

// NewOrder creates a freshly placed order with validation. The order starts
// in Placed with a pending payment and a single seeded history entry.
func NewOrder(
	id, tenantID, customerID kernel.UUID,
	total decimal.Decimal,
	method PaymentMethod,
) (*Order, error) {
	o := &Order{
		total:         total,
		paymentMethod: method,
		paymentStatus: PaymentPending,
		status:        Placed,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setCustomerID(customerID),
		o.setTotal(total),
		method.Validate(),
	); err != nil {
		return nil, err
	}

	o.history = []StatusChange{{
		Status:  Placed,
		ActorID: customerID,
		Notes:   "order placed",
		At:      time.Now().UTC(),
	}}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// placement logic. The history must be non-empty and its last entry must
// carry the given status.
func RestoreOrder(
	id, tenantID, customerID kernel.UUID,
	branchID, logisticsPartnerID *kernel.UUID,
	total decimal.Decimal,
	method PaymentMethod,
	paymentStatus PaymentStatus,
	status Status,
	history []StatusChange,
	rewardsGrantedAt *time.Time,
) (*Order, error) {
	o := &Order{
		branchID:           branchID,
		logisticsPartnerID: logisticsPartnerID,
		total:              total,
		paymentMethod:      method,
		paymentStatus:      paymentStatus,
		status:             status,
		history:            history,
		rewardsGrantedAt:   rewardsGrantedAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setCustomerID(customerID),
		o.setTotal(total),
		method.Validate(),
		paymentStatus.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}
	if history[len(history)-1].Status != status {
		return nil, errs.NewValueIsInvalidError("status does not match last history entry")
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning tenant's identifier.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// BranchID returns the assigned branch's identifier, or nil when unassigned.
func (o *Order) BranchID() *kernel.UUID {
	return o.branchID
}

// LogisticsPartnerID returns the assigned logistics partner's identifier,
// or nil when unassigned.
func (o *Order) LogisticsPartnerID() *kernel.UUID {
	return o.logisticsPartnerID
}

// Total returns the order total.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// PaymentMethod returns how the customer pays for the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the current settlement state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// StatusHistory returns a copy of the append-only status history.
func (o *Order) StatusHistory() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// RewardsGrantedAt returns when the reward pipeline ran for this order,
// or nil when it never did.
func (o *Order) RewardsGrantedAt() *time.Time {
	return o.rewardsGrantedAt
}

// TransitionTo moves the order to next, validating against the guard table,
// and appends the matching history entry in the same mutation. This is the
// only method that writes status or history.
func (o *Order) TransitionTo(next Status, actorID kernel.UUID, notes string, at time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.history = append(o.history, StatusChange{
		Status:  newStatus,
		ActorID: actorID,
		Notes:   notes,
		At:      at,
	})
	o.status = newStatus
	return nil
}

// ApplyPaymentStatus records a derived payment-status change on the aggregate.
func (o *Order) ApplyPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

// AssignBranch records the processing branch for the order.
// Branch selection itself happens outside the core.
func (o *Order) AssignBranch(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	o.branchID = &branchID
	return nil
}

// AssignLogisticsPartner records the pickup/delivery partner for the order.
func (o *Order) AssignLogisticsPartner(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	o.logisticsPartnerID = &partnerID
	return nil
}

// MarkRewardsGranted sets the reward idempotency marker.
// Returns true only on the first call for this order; later calls are no-ops,
// which keeps the reward pipeline at-most-once even if the order somehow
// re-enters Delivered.
func (o *Order) MarkRewardsGranted(at time.Time) bool {
	if o.rewardsGrantedAt != nil {
		return false
	}
	o.rewardsGrantedAt = &at
	return true
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	o.tenantID = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidError("total cannot be negative")
	}
	o.total = total
	return nil
}

// Package customer contains the customer reward ledger: VIP points,
// lifetime order counts, and milestone thresholds evaluated on delivery.
package customer

import (
	"errors"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through NewCustomer or RestoreCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")

// milestoneThresholds are the lifetime order counts that earn a milestone
// notification. Crossing vipThreshold additionally promotes the customer.
var milestoneThresholds = []int{5, 10, 25, 50, 100}

const vipThreshold = 25

// vipPointsDivisor: VIP customers accrue one legacy reward point per 100
// currency units of a delivered order's total.
var vipPointsDivisor = decimal.NewFromInt(100)

// Customer is the aggregate carrying per-customer reward state.
// Loyalty points proper live with the external loyalty collaborator; this
// aggregate only owns the legacy VIP point balance and the lifetime counter.
type Customer struct {
	id            kernel.UUID
	tenantID      kernel.UUID
	isVIP         bool
	rewardPoints  int
	lifetimeOrders int

	isConstructed bool
}

// NewCustomer creates a customer with zeroed reward state.
func NewCustomer(id, tenantID kernel.UUID) (*Customer, error) {
	c := &Customer{isConstructed: true}
	if err := errors.Join(c.setID(id), c.setTenantID(tenantID)); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCustomer reconstructs a customer from persistence.
func RestoreCustomer(id, tenantID kernel.UUID, isVIP bool, rewardPoints, lifetimeOrders int) (*Customer, error) {
	c := &Customer{
		isVIP:          isVIP,
		rewardPoints:   rewardPoints,
		lifetimeOrders: lifetimeOrders,
		isConstructed:  true,
	}
	if err := errors.Join(c.setID(id), c.setTenantID(tenantID)); err != nil {
		return nil, err
	}
	if rewardPoints < 0 {
		return nil, errs.NewValueIsInvalidError("reward points cannot be negative")
	}
	if lifetimeOrders < 0 {
		return nil, errs.NewValueIsInvalidError("lifetime orders cannot be negative")
	}
	return c, nil
}

// Validate ensures the Customer instance was properly constructed.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// TenantID returns the owning tenant's identifier.
func (c *Customer) TenantID() kernel.UUID {
	return c.tenantID
}

// IsVIP reports whether the customer holds VIP standing.
func (c *Customer) IsVIP() bool {
	return c.isVIP
}

// RewardPoints returns the legacy VIP reward point balance.
func (c *Customer) RewardPoints() int {
	return c.rewardPoints
}

// LifetimeOrders returns the number of delivered orders across the
// customer's lifetime.
func (c *Customer) LifetimeOrders() int {
	return c.lifetimeOrders
}

// AccrueVIPPoints adds floor(total/100) legacy reward points for a delivered
// order. Non-VIP customers accrue nothing. Returns the points awarded.
func (c *Customer) AccrueVIPPoints(total decimal.Decimal) int {
	if !c.isVIP || total.IsNegative() {
		return 0
	}
	points := int(total.Div(vipPointsDivisor).IntPart())
	c.rewardPoints += points
	return points
}

// RecordDeliveredOrder increments the lifetime order counter and returns
// the new count.
func (c *Customer) RecordDeliveredOrder() int {
	c.lifetimeOrders++
	return c.lifetimeOrders
}

// MilestoneReached reports whether the customer's current lifetime count
// sits exactly on a milestone threshold.
func (c *Customer) MilestoneReached() (int, bool) {
	for _, threshold := range milestoneThresholds {
		if c.lifetimeOrders == threshold {
			return threshold, true
		}
	}
	return 0, false
}

// PromoteToVIP upgrades the customer once the lifetime count crosses the
// VIP threshold. Returns true only when the promotion actually happened.
func (c *Customer) PromoteToVIP() bool {
	if c.isVIP || c.lifetimeOrders < vipThreshold {
		return false
	}
	c.isVIP = true
	return true
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	c.tenantID = id
	return nil
}

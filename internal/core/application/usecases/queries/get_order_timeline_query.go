package queries

import (
	"errors"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery retrieves an order's current state and its full
// status history, scoped by tenant.
type GetOrderTimelineQuery struct {
	orderID  kernel.UUID
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTimelineQuery creates a validated timeline query.
func NewGetOrderTimelineQuery(orderID, tenantID kernel.UUID) (GetOrderTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := tenantID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}

	return GetOrderTimelineQuery{
		orderID:  orderID,
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to fetch.
func (q GetOrderTimelineQuery) OrderID() kernel.UUID { return q.orderID }

// TenantID returns the tenant scope of the query.
func (q GetOrderTimelineQuery) TenantID() kernel.UUID { return q.tenantID }

// Validate ensures the query was created through the constructor.
func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

// TimelineEntry is one status history entry in wire form.
type TimelineEntry struct {
	Status  string    `json:"status"`
	ActorID string    `json:"actorId"`
	Notes   string    `json:"notes,omitempty"`
	At      time.Time `json:"at"`
}

// GetOrderTimelineQueryResponse carries the order's current state plus its
// append-only history.
type GetOrderTimelineQueryResponse struct {
	ID            kernel.UUID
	Status        string
	PaymentStatus string
	Total         string
	History       []TimelineEntry
}

// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly with raw SQL, bypassing the
// aggregate layer, and return plain response structs.
package queries

import (
	"errors"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
	"laundryops/internal/pkg/guard"
)

var ErrGetUnreadNotificationsQueryIsNotConstructed = errors.New(
	"GetUnreadNotificationsQuery must be created via NewGetUnreadNotificationsQuery constructor",
)

// GetUnreadNotificationsQuery retrieves a recipient's unread notifications,
// newest first. Clients call it on reconnect to catch up on what the live
// push missed.
type GetUnreadNotificationsQuery struct {
	recipientID kernel.UUID
	limit       int

	guard guard.ConstructorGuard
}

// NewGetUnreadNotificationsQuery creates a validated query.
// A non-positive limit falls back to 50.
func NewGetUnreadNotificationsQuery(recipientID kernel.UUID, limit int) (GetUnreadNotificationsQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return GetUnreadNotificationsQuery{}, errs.NewValueIsRequiredErrorWithCause("recipient id", err)
	}
	if limit <= 0 {
		limit = 50
	}

	return GetUnreadNotificationsQuery{
		recipientID: recipientID,
		limit:       limit,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RecipientID returns the recipient whose notifications are listed.
func (q GetUnreadNotificationsQuery) RecipientID() kernel.UUID { return q.recipientID }

// Limit returns the maximum number of rows to return.
func (q GetUnreadNotificationsQuery) Limit() int { return q.limit }

// Validate ensures the query was created through the constructor.
func (q GetUnreadNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadNotificationsQueryIsNotConstructed)
}

// GetUnreadNotificationsQueryResponse is one unread notification row.
type GetUnreadNotificationsQueryResponse struct {
	ID        kernel.UUID
	Kind      string
	Title     string
	Message   string
	CreatedAt time.Time
}

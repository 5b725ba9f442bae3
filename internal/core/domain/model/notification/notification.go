// Package notification contains the logical notification event, the durable
// notification record, and the live-push payload shape shared by the
// dispatch engine and the connection registry.
package notification

import (
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/pkg/errs"
)

// RecipientType classifies the target of an event: a single addressable
// recipient (customer, staff) or a role room (tenant admins, platform
// operators) that fans out over the broadcaster.
type RecipientType string

const (
	RecipientCustomer          RecipientType = "customer"
	RecipientStaff             RecipientType = "staff"
	RecipientTenantAdmins      RecipientType = "tenant_admins"
	RecipientPlatformOperators RecipientType = "platform_operators"
)

// IsRoom reports whether the recipient type fans out to a role room rather
// than a single recipient's connections.
func (rt RecipientType) IsRoom() bool {
	return rt == RecipientTenantAdmins || rt == RecipientPlatformOperators
}

// Validate checks the recipient type is a known value.
func (rt RecipientType) Validate() error {
	switch rt {
	case RecipientCustomer, RecipientStaff, RecipientTenantAdmins, RecipientPlatformOperators:
		return nil
	default:
		return errs.NewValueIsInvalidError("recipient type")
	}
}

// Kind classifies a notification so clients can pattern-match on it.
type Kind string

const (
	KindOrderStatus      Kind = "order_status"
	KindOrderCancelled   Kind = "order_cancelled"
	KindBranchAssignment Kind = "branch_assignment"
	KindMilestone        Kind = "milestone"
	KindVIPUpgrade       Kind = "vip_upgrade"
	KindRefundRequested  Kind = "refund_requested"
	KindRefundApproved   Kind = "refund_approved"
	KindRefundRejected   Kind = "refund_rejected"
	KindRefundEscalated  Kind = "refund_escalated"
	KindPermissionSync   Kind = "permission_sync"
)

// Channels flags the delivery channels a notification should reach.
// The core only delivers in-app; other channels are recorded for the
// external senders that poll the durable store.
type Channels struct {
	InApp bool `json:"inApp"`
	Email bool `json:"email"`
}

// Event is the ephemeral input to the dispatch engine, created fresh per
// dispatch call. RecipientID is zero for room-targeted events.
type Event struct {
	RecipientType RecipientType
	RecipientID   kernel.UUID
	TenantID      *kernel.UUID
	Kind          Kind
	Title         string
	Message       string
	Data          map[string]any
	Channels      Channels
}

// Validate checks the parts of an event the engine depends on.
func (e Event) Validate() error {
	if err := e.RecipientType.Validate(); err != nil {
		return err
	}
	if !e.RecipientType.IsRoom() {
		if err := e.RecipientID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("recipient id", err)
		}
	}
	if e.Kind == "" {
		return errs.NewValueIsRequiredError("notification kind")
	}
	return nil
}

// Notification is the durable record the store adapter persists, pollable
// by a recipient on reconnect.
type Notification struct {
	ID            kernel.UUID
	RecipientType RecipientType
	RecipientID   kernel.UUID
	TenantID      *kernel.UUID
	Kind          Kind
	Title         string
	Message       string
	Data          map[string]any
	Channels      Channels
	IsRead        bool
	ReadAt        *time.Time
	CreatedAt     time.Time
	ExpiresAt     *time.Time
}

// NewNotification builds the durable record for an event.
// A zero ttl leaves ExpiresAt unset.
func NewNotification(event Event, now time.Time, ttl time.Duration) *Notification {
	record := &Notification{
		ID:            kernel.NewUUID(),
		RecipientType: event.RecipientType,
		RecipientID:   event.RecipientID,
		TenantID:      event.TenantID,
		Kind:          event.Kind,
		Title:         event.Title,
		Message:       event.Message,
		Data:          event.Data,
		Channels:      event.Channels,
		CreatedAt:     now,
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		record.ExpiresAt = &expiresAt
	}
	return record
}

// PushPayload is the JSON structure written to live connections:
// {type, notification|event, timestamp}. Clients pattern-match on Type.
type PushPayload struct {
	Type         string         `json:"type"`
	Notification *Notification  `json:"notification,omitempty"`
	Event        map[string]any `json:"event,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

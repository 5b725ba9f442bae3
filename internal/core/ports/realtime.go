package ports

import (
	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"
)

// RealtimePusher is the live-delivery side of dispatch, implemented by the
// in-memory connection registry. Delivery is best-effort, at-most-once:
// both methods return how many connections the payload reached and never
// fail the caller.
type RealtimePusher interface {
	// PushToRecipient writes the payload to every live connection of a
	// single addressable recipient.
	PushToRecipient(
		recipientType notification.RecipientType,
		recipientID kernel.UUID,
		payload notification.PushPayload,
	) int

	// BroadcastToRoom writes the payload to every live connection whose
	// metadata matches the role, scoped to tenantID unless nil
	// (platform-level rooms carry no tenant filter).
	BroadcastToRoom(
		tenantID *kernel.UUID,
		role staff.Role,
		payload notification.PushPayload,
	) int
}

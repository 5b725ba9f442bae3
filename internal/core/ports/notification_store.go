package ports

import (
	"context"
	"time"

	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/notification"
)

// NotificationStore is the durable side of dispatch: at-least-once records
// a recipient can poll on reconnect, independent of the best-effort live
// push. The core depends on it but does not implement storage itself.
type NotificationStore interface {
	// Create persists a notification record and returns its id.
	Create(ctx context.Context, record *notification.Notification) (kernel.UUID, error)

	// MarkRead marks the given notifications read for the recipient.
	// Records owned by other recipients are ignored, not errors.
	MarkRead(ctx context.Context, ids []kernel.UUID, recipientID kernel.UUID) error

	// CountUnread returns the number of unread records for a recipient.
	CountUnread(ctx context.Context, recipientID kernel.UUID) (int64, error)

	// DeleteExpired removes records whose ExpiresAt passed before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

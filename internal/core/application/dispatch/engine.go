// Package dispatch implements the notification fan-out engine: persist a
// durable record first, then push to live connections. The two halves are
// independent failure domains; neither can fail the business operation that
// triggered the dispatch.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"laundryops/internal/core/domain/model/notification"
	"laundryops/internal/core/domain/model/staff"
	"laundryops/internal/core/ports"
)

// defaultTTL bounds how long durable records stay pollable before the
// cleanup job removes them.
const defaultTTL = 30 * 24 * time.Hour

// Result reports what a dispatch achieved. Persisted is false when the
// store failed; Pushed is the number of live connections reached, zero
// being a normal outcome for an offline recipient.
type Result struct {
	Persisted bool
	Pushed    int
}

// Engine routes a notification event to the durable store and the live
// connection registry.
type Engine struct {
	store   ports.NotificationStore
	pusher  ports.RealtimePusher
	logger  *slog.Logger
	metrics *Metrics
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Engine)

// WithTTL overrides the default retention for durable records.
func WithTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithClock overrides the engine clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics attaches dispatch counters.
func WithMetrics(metrics *Metrics) Option {
	return func(e *Engine) { e.metrics = metrics }
}

func NewEngine(store ports.NotificationStore, pusher ports.RealtimePusher, logger *slog.Logger, opts ...Option) *Engine {
	engine := &Engine{
		store:  store,
		pusher: pusher,
		logger: logger.With("component", "dispatch.Engine"),
		ttl:    defaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Dispatch persists the event as a notification record, then pushes it to
// the recipient's live connections (or the role room for room events).
// Only a malformed event is an error; persist and push failures are logged
// and reflected in the Result.
func (e *Engine) Dispatch(ctx context.Context, event notification.Event) (Result, error) {
	if err := event.Validate(); err != nil {
		return Result{}, err
	}
	e.metrics.observeDispatch(string(event.Kind), string(event.RecipientType))

	now := e.now()
	record := notification.NewNotification(event, now, e.ttl)

	var result Result
	if _, err := e.store.Create(ctx, record); err != nil {
		e.metrics.observePersistFailure()
		e.logger.Error("persist notification",
			"kind", string(event.Kind),
			"recipientType", string(event.RecipientType),
			"error", err,
		)
	} else {
		result.Persisted = true
	}

	payload := notification.PushPayload{
		Type:         "notification",
		Notification: record,
		Timestamp:    now,
	}

	switch event.RecipientType {
	case notification.RecipientTenantAdmins:
		result.Pushed = e.pusher.BroadcastToRoom(event.TenantID, staff.RoleTenantAdmin, payload)
	case notification.RecipientPlatformOperators:
		result.Pushed = e.pusher.BroadcastToRoom(nil, staff.RolePlatformOperator, payload)
	default:
		result.Pushed = e.pusher.PushToRecipient(event.RecipientType, event.RecipientID, payload)
	}
	e.metrics.observePushed(result.Pushed)

	return result, nil
}

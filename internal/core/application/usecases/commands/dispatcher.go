package commands

import (
	"context"

	"laundryops/internal/core/application/dispatch"
	"laundryops/internal/core/domain/model/notification"
)

// Dispatcher routes notification events to the durable store and live
// connections. Handlers call it only after their transaction committed, and
// never fail on its outcome.
type Dispatcher interface {
	Dispatch(ctx context.Context, event notification.Event) (dispatch.Result, error)
}

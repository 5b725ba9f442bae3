package commands

import (
	"context"
	"log/slog"
)

// sideEffect is one post-commit follow-up of a committed state change.
// Effects run sequentially; each is its own failure domain.
type sideEffect struct {
	name string
	run  func(ctx context.Context) error
}

// runSideEffects executes effects in order, logging failures and moving on.
// By the time effects run the business operation already succeeded, so
// nothing here may surface an error to the caller, and a client that
// disconnects after commit must not cancel durable writes or publishes.
func runSideEffects(ctx context.Context, logger *slog.Logger, effects []sideEffect) {
	ctx = context.WithoutCancel(ctx)
	for _, effect := range effects {
		if err := effect.run(ctx); err != nil {
			logger.Error("side effect failed", "effect", effect.name, "error", err)
		}
	}
}

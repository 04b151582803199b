package event

import (
	"context"
	"log/slog"
)

// Invalidator is told after a committed write that changes data the
// reports read.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Invalidate notifies inv when one is set. A failure is only logged since
// the write has already committed.
func Invalidate(ctx context.Context, inv Invalidator) {
	if inv == nil {
		return
	}

	if err := inv.Invalidate(ctx); err != nil {
		slog.Warn("invalidating report cache", "error", err)
	}
}

package backoffice

import (
	"context"
	"time"

	"encore.dev/rlog"
)

// asyncTimeout bounds background work. It covers a reload of every screen.
const asyncTimeout = 30 * time.Second

// runAsync is swapped for a synchronous runner in tests.
var runAsync = safeAsync

// safeAsync runs fn in a goroutine with a timeout and logs its failure.
func safeAsync(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			rlog.Error("async operation failed", "op", op, "error", err)
		} else {
			rlog.Debug("async operation succeeded", "op", op)
		}
	}()
}

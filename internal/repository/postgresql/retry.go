package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// retryRead re-runs fn once when it fails with something other than "no
// rows". Only idempotent reads go through here; mutating statements are never
// auto-retried because repeating them is not known to be safe.
func retryRead(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || errors.Is(err, pgx.ErrNoRows) || ctx.Err() != nil {
		return err
	}
	return fn()
}

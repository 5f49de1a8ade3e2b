// Package txn provides the read-check-mutate-replace cycle used for all
// aggregate transitions. Aggregates carry a version counter; a replace that
// matches no document means another request won the race, and the cycle is
// retried on a fresh snapshot so the second writer always observes the
// first's effect.
package txn

import (
	"context"
	"errors"

	"github.com/inspecthub/inspecthub/internal/domain/apperr"
)

// ErrStale is returned by store Replace methods when the guarded write
// matched no document (the aggregate changed since it was loaded).
var ErrStale = errors.New("aggregate modified concurrently")

// maxAttempts bounds the retry loop. Contention on a single aggregate is
// rare; staleness three times in a row points at a storage problem.
const maxAttempts = 3

// Apply loads an aggregate, applies mutate to it, and persists it with
// replace. Stale writes are retried on a fresh snapshot; every other error
// is returned as-is, before anything was written.
func Apply[T any](
	ctx context.Context,
	load func(context.Context) (T, error),
	mutate func(*T) error,
	replace func(context.Context, *T) error,
) (T, error) {
	var zero T
	for attempt := 0; attempt < maxAttempts; attempt++ {
		agg, err := load(ctx)
		if err != nil {
			return zero, err
		}
		if err := mutate(&agg); err != nil {
			return zero, err
		}
		err = replace(ctx, &agg)
		if err == nil {
			return agg, nil
		}
		if !errors.Is(err, ErrStale) {
			return zero, err
		}
	}
	return zero, apperr.Wrap(apperr.Unavailable, "a storage error occurred", ErrStale)
}

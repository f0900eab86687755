package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStoreTimeout marks a store call that ran past its deadline. Callers may
// retry.
var ErrStoreTimeout = errors.New("store timeout")

// ErrForbidden means the authenticated user does not own the resource.
var ErrForbidden = errors.New("forbidden")

// bounded runs fn with a deadline of d. A deadline hit that belongs to this
// call, not to the caller's context, is reported as ErrStoreTimeout.
func bounded[T any](ctx context.Context, d time.Duration, op string, fn func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}
	cctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	v, err := fn(cctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || (cctx.Err() != nil && ctx.Err() == nil) {
			return v, fmt.Errorf("%s: %w: %w", op, ErrStoreTimeout, context.DeadlineExceeded)
		}
		return v, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

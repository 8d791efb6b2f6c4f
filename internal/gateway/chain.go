package gateway

import (
	"context"
	"errors"
)

// Attempt is one capability in a fallback chain.
type Attempt[T any] func(ctx context.Context) (T, error)

// FirstSuccess runs attempts in order and returns the first result without an
// error. When all fail, the errors are joined in attempt order. A cancelled
// context stops the chain before the next attempt.
func FirstSuccess[T any](ctx context.Context, attempts ...Attempt[T]) (T, error) {
	var zero T
	var errs []error
	for _, attempt := range attempts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		v, err := attempt(ctx)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return zero, errors.New("no providers attempted")
	}
	return zero, errors.Join(errs...)
}

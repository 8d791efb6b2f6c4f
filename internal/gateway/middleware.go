package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Middleware decorates a Provider with a cross-cutting concern.
type Middleware func(Provider) Provider

// Wrap applies middlewares left to right: Wrap(p, A, B) == A(B(p)).
func Wrap(inner Provider, mws ...Middleware) Provider {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

type providerFunc struct {
	name string
	fn   func(ctx context.Context, system, user string) (string, error)
}

func (p providerFunc) Name() string { return p.name }
func (p providerFunc) Complete(ctx context.Context, system, user string) (string, error) {
	return p.fn(ctx, system, user)
}

// Timeout bounds every call to d and abandons it once the deadline passes.
// d <= 0 disables the bound.
func Timeout(d time.Duration) Middleware {
	return func(next Provider) Provider {
		if d <= 0 {
			return next
		}
		return providerFunc{name: next.Name(), fn: func(ctx context.Context, system, user string) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			text, err := next.Complete(ctx, system, user)
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", &ServiceError{
					Provider: next.Name(),
					Message:  fmt.Sprintf("timed out after %s", d),
					Err:      err,
				}
			}
			return text, err
		}}
	}
}

// RateLimit throttles calls with a token bucket. rps <= 0 disables it.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Provider) Provider {
		if rps <= 0 {
			return next
		}
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(rps), burst)
		return providerFunc{name: next.Name(), fn: func(ctx context.Context, system, user string) (string, error) {
			if err := limiter.Wait(ctx); err != nil {
				return "", &ServiceError{Provider: next.Name(), Message: "rate limit wait aborted", Err: err}
			}
			return next.Complete(ctx, system, user)
		}}
	}
}

// Logging records provider, latency and outcome of each call.
func Logging(logger *zap.Logger) Middleware {
	return func(next Provider) Provider {
		if logger == nil {
			return next
		}
		return providerFunc{name: next.Name(), fn: func(ctx context.Context, system, user string) (string, error) {
			start := time.Now()
			text, err := next.Complete(ctx, system, user)
			fields := []zap.Field{
				zap.String("provider", next.Name()),
				zap.Duration("latency", time.Since(start)),
				zap.Int("prompt_chars", len(system)+len(user)),
			}
			if err != nil {
				logger.Warn("llm call failed", append(fields, zap.Error(err))...)
				return "", err
			}
			logger.Debug("llm call completed", append(fields, zap.Int("response_chars", len(text)))...)
			return text, nil
		}}
	}
}

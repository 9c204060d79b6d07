package context

import (
	"context"
)

type viewSessionKey struct{}

// NewContextWithViewSession stores the per-browser view session value.
func NewContextWithViewSession[T any](ctx context.Context, session T) context.Context {
	return context.WithValue(ctx, viewSessionKey{}, session)
}

// GetViewSessionFromContext returns the view session stored for type T.
func GetViewSessionFromContext[T any](ctx context.Context) (T, bool) {
	s, ok := ctx.Value(viewSessionKey{}).(T)
	return s, ok
}

package graphql

import (
	"context"

	"focolog/app"
)

type contextKey string

const CtxKeyApp contextKey = "app"

// WithApp attaches the service container for extension resolvers.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, CtxKeyApp, a)
}

// AppFromContext returns the container set by WithApp, or nil.
func AppFromContext(ctx context.Context) *app.App {
	if a, ok := ctx.Value(CtxKeyApp).(*app.App); ok {
		return a
	}
	return nil
}

package cli

import (
	"context"

	"github.com/thenoetrevino/corkboard/internal/app"
)

type contextKey string

const appKey contextKey = "app"

// WithApp returns a context carrying an already open app.
// Commands executed with it use that app instead of opening the configured store.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// GetCLIFromContext returns a CLI over the app carried by ctx, or opens a new one.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx)
}

package utils

import "context"

type contextKey string

const usernameKey contextKey = "username"

// WithUsername stores the authenticated username in ctx
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsernameFromContext returns the username set by the basic auth middleware
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}

package middleware

import "context"

type contextKey string

const userIDContextKey contextKey = "user_id"

// WithUserID injects the authenticated identity into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated identity, or "".
func UserIDFromContext(ctx context.Context) string {
	v := ctx.Value(userIDContextKey)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

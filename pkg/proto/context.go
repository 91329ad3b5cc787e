package proto

import "context"

type userKey struct{}

// WithUserContext attaches the authenticated user to ctx.
func WithUserContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the authenticated user, or nil for an anonymous
// request.
func UserFromContext(ctx context.Context) User {
	u, _ := ctx.Value(userKey{}).(User)
	return u
}

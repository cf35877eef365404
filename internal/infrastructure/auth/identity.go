package auth

import "context"

type contextKey string

const userNameKey contextKey = "user_name"

// WithUserName attaches the authenticated user's display name to the context.
func WithUserName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, userNameKey, name)
}

// UserNameFromContext extracts the authenticated user's display name, if any.
func UserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(userNameKey).(string)
	return name, ok && name != ""
}

// ContextIdentity implements usecase.IdentityProvider by reading the user
// placed on the request context by the HTTP middleware. It returns the empty
// string for unauthenticated requests; the unit of work falls back to the
// anonymous sentinel.
type ContextIdentity struct{}

// NewContextIdentity creates a new ContextIdentity.
func NewContextIdentity() *ContextIdentity {
	return &ContextIdentity{}
}

// UserName returns the acting user's display name, or "" when anonymous.
func (ContextIdentity) UserName(ctx context.Context) string {
	name, _ := UserNameFromContext(ctx)
	return name
}

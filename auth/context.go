package auth

import "context"

type tokenKey struct{}

// WithToken returns a copy of ctx carrying the caller's raw session token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the raw session token carried by ctx, or "".
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// CookieName is the cookie carrying the session token.
const CookieName = "session"

package auth

import "context"

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// WithClaims returns a child context carrying the verified claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFrom extracts the verified claims set by the RequireAuth middleware.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

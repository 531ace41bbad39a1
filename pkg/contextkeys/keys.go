package contextkeys

import (
	"context"

	"solicitation-system/pkg/session"
)

type contextKey string

const ClaimsKey contextKey = "Claims"

func WithClaims(ctx context.Context, claims *session.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

func ClaimsFrom(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*session.Claims)
	return claims, ok && claims != nil
}

package jwt

import (
	"context"
	"fmt"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

// String returns the name of the context key.
func (c contextKey) String() string { return c.name }

var (
	tokenContextKey   = &contextKey{name: "jwt"}
	payloadContextKey = &contextKey{name: "jwt_payload"}
)

// SetToken sets the raw token string in the context.
func SetToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// SetPayload sets the verified payload in the context.
func SetPayload(ctx context.Context, payload Payload) context.Context {
	return context.WithValue(ctx, payloadContextKey, payload)
}

// GetToken returns the raw token string from the context.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

// GetPayload returns the verified payload from the context.
func GetPayload(ctx context.Context) (Payload, bool) {
	payload, ok := ctx.Value(payloadContextKey).(Payload)
	return payload, ok
}

// GetClaimsAs decodes the verified payload from the context into claims.
func GetClaimsAs[T any](ctx context.Context, claims *T) error {
	if claims == nil {
		return fmt.Errorf("failed to unmarshal claims: %w", ErrMissingPayload)
	}

	payload, ok := GetPayload(ctx)
	if !ok {
		return ErrMissingPayload
	}
	return payload.Decode(claims)
}

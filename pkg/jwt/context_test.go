package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtlab/pkg/jwt"
)

func TestGetToken(t *testing.T) {
	t.Parallel()

	t.Run("TokenExists", func(t *testing.T) {
		ctx := jwt.SetToken(context.Background(), goldenSHA256)
		token, ok := jwt.GetToken(ctx)
		assert.True(t, ok)
		assert.Equal(t, goldenSHA256, token)
	})

	t.Run("TokenNotFound", func(t *testing.T) {
		token, ok := jwt.GetToken(context.Background())
		assert.False(t, ok)
		assert.Empty(t, token)
	})
}

func TestGetPayload(t *testing.T) {
	t.Parallel()

	t.Run("PayloadExists", func(t *testing.T) {
		want := mustPayload(t, goldenPayload)
		ctx := jwt.SetPayload(context.Background(), want)

		got, ok := jwt.GetPayload(ctx)
		require.True(t, ok)
		assert.True(t, want.Equal(got))
	})

	t.Run("PayloadNotFound", func(t *testing.T) {
		_, ok := jwt.GetPayload(context.Background())
		assert.False(t, ok)
	})

	t.Run("TokenAndPayloadAreSeparate", func(t *testing.T) {
		ctx := jwt.SetToken(context.Background(), goldenSHA256)
		_, ok := jwt.GetPayload(ctx)
		assert.False(t, ok)
	})
}

func TestGetClaimsAs(t *testing.T) {
	t.Parallel()

	ctx := jwt.SetPayload(context.Background(), mustPayload(t, `{"username":"alice","admin":true}`))

	t.Run("Struct", func(t *testing.T) {
		var u user
		require.NoError(t, jwt.GetClaimsAs(ctx, &u))
		assert.Equal(t, user{Username: "alice", Admin: true}, u)
	})

	t.Run("Map", func(t *testing.T) {
		var m map[string]any
		require.NoError(t, jwt.GetClaimsAs(ctx, &m))
		assert.Equal(t, true, m["admin"])
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		var wrong struct {
			Admin string `json:"admin"`
		}
		require.ErrorIs(t, jwt.GetClaimsAs(ctx, &wrong), jwt.ErrInvalidPayload)
	})

	t.Run("NilTarget", func(t *testing.T) {
		require.ErrorIs(t, jwt.GetClaimsAs[user](ctx, nil), jwt.ErrMissingPayload)
	})

	t.Run("NoPayload", func(t *testing.T) {
		var u user
		require.ErrorIs(t, jwt.GetClaimsAs(context.Background(), &u), jwt.ErrMissingPayload)
	})
}

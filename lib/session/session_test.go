package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"vms-console/models"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiry(t *testing.T) {
	fallback := time.Now().Add(24 * time.Hour)

	t.Run("opaque token uses fallback", func(t *testing.T) {
		require.Equal(t, fallback, TokenExpiry("opaque", fallback))
	})

	t.Run("earlier exp wins", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		token := signed(t, jwt.MapClaims{"exp": exp.Unix()})
		require.True(t, exp.Equal(TokenExpiry(token, fallback)))
	})

	t.Run("later exp capped by fallback", func(t *testing.T) {
		token := signed(t, jwt.MapClaims{"exp": time.Now().Add(72 * time.Hour).Unix()})
		require.Equal(t, fallback, TokenExpiry(token, fallback))
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := New(models.AdminRole, "admin", "opaque", time.Hour)
	require.NotEmpty(t, s.ID)
	require.Equal(t, "opaque", s.AccessToken())
	require.Equal(t, s.ID, s.SessionID())
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, "admin", got.Username)
	require.True(t, got.Role.IsAdmin())

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)

	expired := New(models.VendorRole, "v1", "opaque", time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Second)
	live := New(models.VendorRole, "v2", "opaque", time.Hour)
	require.NoError(t, store.Save(ctx, expired))
	require.NoError(t, store.Save(ctx, live))

	ids, err := store.Sweep(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, []string{expired.ID}, ids)
	_, err = store.Get(ctx, live.ID)
	require.NoError(t, err)
	_, err = store.Get(ctx, expired.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

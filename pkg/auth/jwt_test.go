package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService("secret", time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingJWTKey)

	svc, err := NewJWTService("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, svc.Expiration())
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(t)

	token, err := svc.GenerateToken(Operator{UserID: "u1", TenantID: "t1", Name: "Ana", Role: "admin"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "t1", claims.TenantID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestValidateRejects(t *testing.T) {
	svc := newService(t)

	t.Run("expired", func(t *testing.T) {
		expired := newService(t)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := expired.GenerateToken(Operator{UserID: "u1"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTService("other", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateToken(Operator{UserID: "u1"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		claims := JWTClaims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user", func(t *testing.T) {
		token, err := svc.GenerateToken(Operator{TenantID: "t1"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshToken(t *testing.T) {
	svc := newService(t)

	t.Run("expired token is renewed", func(t *testing.T) {
		old := newService(t)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := old.GenerateToken(Operator{UserID: "u1", TenantID: "t1"})
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(token)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(refreshed)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "t1", claims.TenantID)
	})

	t.Run("forged token is refused", func(t *testing.T) {
		other, err := NewJWTService("other", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateToken(Operator{UserID: "u1"})
		require.NoError(t, err)

		_, err = svc.RefreshToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

package auth_test

import (
	"context"
	"testing"
	"time"
	"todoApi/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestSecretVerifier_Verify(t *testing.T) {
	verifier := auth.NewSecretVerifier(testSecret)
	ctx := context.Background()

	t.Run("success - valid token", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"sub":   "user-123",
			"email": "user@example.com",
			"name":  "Test User",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		identity, err := verifier.Verify(ctx, tokenString)
		require.NoError(t, err)
		assert.Equal(t, "user-123", identity.UserID)
		assert.Equal(t, "user@example.com", identity.Email)
		assert.Equal(t, "Test User", identity.Name)
	})

	t.Run("success - email and name optional", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		identity, err := verifier.Verify(ctx, tokenString)
		require.NoError(t, err)
		assert.Equal(t, "user-123", identity.UserID)
		assert.Empty(t, identity.Email)
		assert.Empty(t, identity.Name)
	})

	t.Run("success - audience is not verified", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-123",
			"aud": "some-other-service",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := verifier.Verify(ctx, tokenString)
		assert.NoError(t, err)
	})

	t.Run("error - expired token", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := verifier.Verify(ctx, tokenString)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("error - wrong secret", func(t *testing.T) {
		tokenString := signToken(t, "another-secret", jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := verifier.Verify(ctx, tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("error - missing sub claim", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"email": "user@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		_, err := verifier.Verify(ctx, tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("error - malformed token", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("error - unexpected signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "user-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestEnforceUserAccess(t *testing.T) {
	tests := []struct {
		name     string
		identity *auth.Identity
		userID   string
		wantErr  error
	}{
		{
			name:     "success - exact match",
			identity: &auth.Identity{UserID: "user-1"},
			userID:   "user-1",
			wantErr:  nil,
		},
		{
			name:     "error - different user",
			identity: &auth.Identity{UserID: "user-1"},
			userID:   "user-2",
			wantErr:  auth.ErrAccessDenied,
		},
		{
			name:     "error - no normalization, case matters",
			identity: &auth.Identity{UserID: "User-1"},
			userID:   "user-1",
			wantErr:  auth.ErrAccessDenied,
		},
		{
			name:     "error - nil identity",
			identity: nil,
			userID:   "user-1",
			wantErr:  auth.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.EnforceUserAccess(tt.identity, tt.userID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

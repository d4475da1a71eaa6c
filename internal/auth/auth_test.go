package auth

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	user := &models.User{ID: "u-1", Email: "ada@example.com"}

	t.Run("round trip", func(t *testing.T) {
		tm := NewTokenManager("secret", time.Hour)
		token, err := tm.Generate(user)
		require.NoError(t, err)

		claims, err := tm.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenManager("secret", time.Hour).Generate(user)
		require.NoError(t, err)

		_, err = NewTokenManager("other", time.Hour).Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tm := NewTokenManager("secret", time.Minute)
		tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := tm.Generate(user)
		require.NoError(t, err)

		_, err = tm.Validate(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewTokenManager("secret", time.Hour).Validate("not-a-token")
		assert.Error(t, err)
	})
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher()
	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)

	assert.NoError(t, h.Verify(hash, "s3cret!"))
	assert.ErrorIs(t, h.Verify(hash, "wrong"), ErrInvalidPassword)
	assert.ErrorIs(t, h.Verify("", "s3cret!"), ErrInvalidPassword)
}

func TestGenerateOTP(t *testing.T) {
	code, err := GenerateOTP(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}

	_, err = GenerateOTP(0)
	assert.Error(t, err)
}

func TestOTPMatches(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(2 * time.Minute)

	assert.True(t, OTPMatches("123456", "123456", &expiry, now))
	assert.False(t, OTPMatches("123456", "654321", &expiry, now))
	assert.False(t, OTPMatches("123456", "123456", &expiry, now.Add(3*time.Minute)))
	assert.False(t, OTPMatches("", "", &expiry, now))
	assert.False(t, OTPMatches("123456", "123456", nil, now))
}

func TestDisabledProviders(t *testing.T) {
	ctx := context.Background()

	_, err := NewGoogleOAuth(config.GoogleConfig{}).Exchange(ctx, "code")
	assert.ErrorIs(t, err, ErrProviderDisabled)

	_, err = NewFirebaseVerifier(nil).VerifyIDToken(ctx, "token")
	assert.ErrorIs(t, err, ErrProviderDisabled)
}

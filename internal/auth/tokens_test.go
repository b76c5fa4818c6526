package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savethecatapp/savethecat-server/internal/domain"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func testUser() *domain.User {
	return &domain.User{
		Model:    domain.Model{ID: "user_abc123"},
		Email:    "mike@example.com",
		Nickname: "mike",
	}
}

func TestNewTokenService_RejectsBadKeys(t *testing.T) {
	_, err := NewTokenService("tooshort", time.Minute, time.Hour)
	assert.Error(t, err)

	// Right length, not hex.
	_, err = NewTokenService("zz"+testKeyHex[2:], time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user_abc123", claims.UserID)
	assert.Equal(t, "mike@example.com", claims.Email)
	assert.Equal(t, "mike", claims.Nickname)
	assert.Equal(t, "user_abc123", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.Expiration, 5*time.Second)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Minute, time.Hour)
	require.NoError(t, err)

	otherHex := "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"
	other, err := NewTokenService(otherHex, time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, -time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken("v4.local.not-a-real-token")
	assert.Error(t, err)
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Minute, time.Hour)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for range 100 {
		token, err := svc.GenerateRefreshToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "refresh token collision")
		seen[token] = true
	}
}

func TestHashRefreshToken_Deterministic(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateRefreshToken()
	require.NoError(t, err)

	first := HashRefreshToken(token)
	second := HashRefreshToken(token)

	assert.Equal(t, first, second)
	assert.NotEqual(t, token, first)
	assert.Len(t, first, 64) // 32 bytes as hex
}

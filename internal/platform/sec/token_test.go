// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentora/dentora/internal/platform/sec"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(
		"access-secret", "refresh-secret", "dentora.test",
		15*time.Minute, 24*time.Hour,
	)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_Validation checks the constructor guards: empty or
identical secrets and non-positive lifetimes are configuration errors.
*/
func TestNewTokenService_Validation(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
		accessTTL     time.Duration
		refreshTTL    time.Duration
	}{
		{"empty_access_secret", "", "refresh", time.Minute, time.Hour},
		{"empty_refresh_secret", "access", "", time.Minute, time.Hour},
		{"identical_secrets", "same", "same", time.Minute, time.Hour},
		{"zero_access_ttl", "access", "refresh", 0, time.Hour},
		{"negative_refresh_ttl", "access", "refresh", time.Minute, -time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService(tt.accessSecret, tt.refreshSecret, "dentora.test", tt.accessTTL, tt.refreshTTL)
			assert.Error(t, err)
		})
	}
}

/*
TestAccessToken_RoundTrip generates and verifies an access token, checking
every embedded claim.
*/
func TestAccessToken_RoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "tenant-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "dentora.test", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

/*
TestRefreshToken_RoundTrip verifies the refresh claims, including the unique
jti that logout revocation keys on.
*/
func TestRefreshToken_RoundTrip(t *testing.T) {
	service := newTokenService(t)

	first, err := service.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	second, err := service.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	firstClaims, err := service.VerifyRefreshToken(first)
	require.NoError(t, err)
	secondClaims, err := service.VerifyRefreshToken(second)
	require.NoError(t, err)

	assert.Equal(t, "user-1", firstClaims.UserID)
	assert.NotEmpty(t, firstClaims.ID)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID, "every refresh token must carry a fresh jti")
}

/*
TestTokenFamilies_AreNotInterchangeable pins the dual-secret property: a
token from one family never verifies as the other.
*/
func TestTokenFamilies_AreNotInterchangeable(t *testing.T) {
	service := newTokenService(t)

	accessToken, err := service.GenerateAccessToken("user-1", "tenant-1")
	require.NoError(t, err)
	refreshToken, err := service.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = service.VerifyRefreshToken(accessToken)
	assert.Error(t, err)

	_, err = service.VerifyAccessToken(refreshToken)
	assert.Error(t, err)
}

/*
TestVerify_RejectsForeignAndExpiredTokens covers bad signatures and expiry.
*/
func TestVerify_RejectsForeignAndExpiredTokens(t *testing.T) {
	service := newTokenService(t)

	t.Run("foreign_signature", func(t *testing.T) {
		other, err := sec.NewTokenService("other-access", "other-refresh", "dentora.test", time.Minute, time.Hour)
		require.NoError(t, err)

		token, err := other.GenerateAccessToken("user-1", "tenant-1")
		require.NoError(t, err)

		_, err = service.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		shortLived, err := sec.NewTokenService("access-secret", "refresh-secret", "dentora.test", time.Nanosecond, time.Hour)
		require.NoError(t, err)

		token, err := shortLived.GenerateAccessToken("user-1", "tenant-1")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = shortLived.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyAccessToken("not.a.jwt")
		assert.Error(t, err)
	})
}

/*
TestHashPassword covers the bcrypt helpers used by the login path.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, sec.CheckPasswordHash("s3cret-password", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
}

// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces (e.g. the auth service's TokenCodec).
//
// Two independent token families exist, each signed with its own HMAC secret:
//
//   - Access tokens: short-lived, carry {user id, tenant id}. Verified on
//     every protected request without touching the database.
//   - Refresh tokens: longer-lived, carry {user id} plus a unique jti so a
//     single token can be revoked on logout. The tenant binding is
//     deliberately absent and re-derived from the user record at refresh time.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the UserID and TenantID directly inside the JWT, the session
// middleware can reconstruct the active identity WITHOUT querying the
// database on every single API request.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	TenantID string `json:"tid"`
}

// RefreshClaims is the payload embedded inside a JWT refresh token.
//
// It intentionally omits the tenant id: the tenant is resolved from the
// user's current record when the token is exchanged, so a user moved between
// tenants never mints access tokens with a stale binding.
type RefreshClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
}

// TokenService generates and verifies both token families using HS256.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService from the two signing secrets.
//
// The secrets must be non-empty and distinct from each other; otherwise a
// refresh token would verify as an access token and vice versa.
func NewTokenService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("sec: token signing secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("sec: access and refresh signing secrets must be distinct")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("sec: token lifetimes must be positive")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTokenTTL returns the configured access token lifetime.
func (service *TokenService) AccessTokenTTL() time.Duration { return service.accessTTL }

// # Access Tokens

// GenerateAccessToken creates a signed access token for the given identity.
func (service *TokenService) GenerateAccessToken(userID, tenantID string) (string, error) {
	currentTime := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.accessTTL)),
		},
		UserID:   userID,
		TenantID: tenantID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	return signedToken, nil
}

// VerifyAccessToken checks the signature and validity of an access token string.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := service.verify(tokenString, claims, service.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// # Refresh Tokens

// GenerateRefreshToken creates a signed refresh token for the given user.
//
// Each token gets a unique jti (ID claim) so that logout can revoke exactly
// one token without a server-side session table.
func (service *TokenService) GenerateRefreshToken(userID string) (string, error) {
	currentTime := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.refreshTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return signedToken, nil
}

// VerifyRefreshToken checks the signature and validity of a refresh token string.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := service.verify(tokenString, claims, service.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// verify parses a token string against the given secret and claims target.
func (service *TokenService) verify(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return fmt.Errorf("sec: invalid token: %w", err)
	}

	if !token.Valid {
		return errors.New("sec: invalid token claims")
	}

	return nil
}

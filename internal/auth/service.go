// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dentora/dentora/internal/platform/apperr"
	"github.com/dentora/dentora/internal/platform/ctxutil"
	"github.com/dentora/dentora/internal/platform/dberr"
	"github.com/dentora/dentora/internal/platform/sec"
)

// # Sentinel Errors

var (
	// ErrTenantNotFound is returned when no tenant matches the submitted tax id.
	ErrTenantNotFound = apperr.Unauthorized("Company not found")

	// ErrSubscriptionTerminated is returned when the tenant's deactivation
	// date lies strictly in the past.
	ErrSubscriptionTerminated = apperr.Unauthorized("Subscription terminated")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are deliberately indistinguishable so a caller
	// cannot enumerate valid usernames inside a tenant.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid credentials")

	// ErrInvalidRefreshToken covers every refresh failure: bad signature,
	// expiry, revocation, or a deleted user. Collapsed for the same
	// anti-enumeration reason.
	ErrInvalidRefreshToken = apperr.Forbidden("Invalid or expired refresh token")
)

// # Contracts & Types

// TokenCodec defines the contract for minting and verifying security tokens.
type TokenCodec interface {
	// GenerateAccessToken creates a signed access token binding a user to the
	// tenant they authenticated under.
	GenerateAccessToken(userID, tenantID string) (string, error)

	// GenerateRefreshToken creates a signed refresh token carrying only the
	// user identity plus a unique jti.
	GenerateRefreshToken(userID string) (string, error)

	// VerifyRefreshToken validates a refresh token string and returns its claims.
	VerifyRefreshToken(token string) (*sec.RefreshClaims, error)
}

// Service implements the tenant-aware authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any change to the login ordering,
// credential comparison, or token issuance must be reviewed by the security
// team.
type Service struct {
	tenants TenantDirectory
	users   UserRepository
	people  PersonDirectory
	revoked TokenRevocationList
	codec   TokenCodec
}

// NewService constructs a new authentication [Service] with its dependencies.
func NewService(
	tenants TenantDirectory,
	users UserRepository,
	people PersonDirectory,
	revoked TokenRevocationList,
	codec TokenCodec,
) *Service {
	return &Service{
		tenants: tenants,
		users:   users,
		people:  people,
		revoked: revoked,
		codec:   codec,
	}
}

// # Login Flow

// LoginInput defines the credentials for an authentication attempt.
type LoginInput struct {
	TaxID    string
	Username string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken  string
	RefreshToken string
	User         UserSummary
}

/*
Authenticate validates tenant-scoped credentials and issues a token pair.

Description: The checks run in a fixed order — tenant existence, subscription
state, credential match — and each failure maps to its own sentinel error, so
"Company not found" never masks a terminated subscription and vice versa.
Unknown username and wrong password intentionally share one error.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready token pair and identity summary
  - error: ErrTenantNotFound, ErrSubscriptionTerminated, ErrInvalidCredentials,
    or internal failures
*/
func (service *Service) Authenticate(ctx context.Context, input LoginInput) (*LoginSession, error) {
	logger := ctxutil.GetLogger(ctx)

	// ── 1. Resolve the tenant by tax id ──
	tenant, err := service.tenants.FindByTaxID(ctx, input.TaxID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("auth_service_tenant_lookup_failed: %w", err)
	}

	// ── 2. Gate on subscription state before touching credentials ──
	if tenant.IsTerminated(time.Now()) {
		return nil, ErrSubscriptionTerminated
	}

	// ── 3. Look up the credential inside the tenant ──
	user, err := service.users.FindByUsername(ctx, tenant.ID, input.Username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_user_lookup_failed: %w", err)
	}

	// ── 4. Constant-time password comparison via bcrypt ──
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// ── 5. Mint the token pair ──
	accessToken, err := service.codec.GenerateAccessToken(user.ID, user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.codec.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// ── 6. Stamp last login. Best effort: a bookkeeping failure must never
	// reject an otherwise valid login. ──
	if err := service.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.WarnContext(ctx, "auth_last_login_update_failed",
			"user_id", user.ID,
			"error", err,
		)
	}

	// ── 7. Resolve the display email. Also best effort. ──
	email := ""
	if person, err := service.people.FindByID(ctx, user.PersonID); err == nil {
		email = person.Email
	} else {
		logger.WarnContext(ctx, "auth_person_lookup_failed",
			"user_id", user.ID,
			"person_id", user.PersonID,
			"error", err,
		)
	}

	logger.InfoContext(ctx, "auth_login_succeeded",
		"user_id", user.ID,
		"tenant_id", user.TenantID,
	)

	return &LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    email,
			TenantID: user.TenantID,
		},
	}, nil
}

// # Refresh Flow

/*
Refresh exchanges a valid refresh token for a brand new access token.

Description: The refresh token itself is never rotated; the same token keeps
working until it expires or the user logs out. The tenant binding of the new
access token comes from the user's current database record, not from any
previously issued token.

Parameters:
  - ctx: context.Context
  - refreshToken: string

Returns:
  - string: Newly minted access token
  - error: ErrInvalidRefreshToken or internal failures
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	// ── 1. Verify signature and expiry ──
	claims, err := service.codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	// ── 2. Reject tokens revoked by an explicit logout ──
	revoked, err := service.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("auth_service_revocation_check_failed: %w", err)
	}
	if revoked {
		return "", ErrInvalidRefreshToken
	}

	// ── 3. Resolve the user's current record ──
	user, err := service.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("auth_service_refresh_user_lookup_failed: %w", err)
	}

	// ── 4. Mint a fresh access token with the user's current tenant ──
	accessToken, err := service.codec.GenerateAccessToken(user.ID, user.TenantID)
	if err != nil {
		return "", fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	return accessToken, nil
}

// # Logout Flow

/*
Logout invalidates a refresh token ahead of its natural expiry.

Description: Idempotent. An already-invalid, already-revoked, or expired token
is treated as a success, since the caller's goal — that the token no longer
works — is already met.

Parameters:
  - ctx: context.Context
  - refreshToken: string

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := service.codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if err := service.revoked.Revoke(ctx, claims.ID, remaining); err != nil {
		return fmt.Errorf("auth_service_logout_revoke_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "auth_logout_succeeded",
		"user_id", claims.UserID,
	)

	return nil
}

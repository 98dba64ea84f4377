// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package auth

import (
	"context"
	"time"
)

// # Storage Contracts

// TenantDirectory resolves tenants by their public tax identifier.
type TenantDirectory interface {
	// FindByTaxID returns the tenant registered under taxID, or
	// [dberr.ErrNotFound] when no such tenant exists.
	FindByTaxID(ctx context.Context, taxID string) (*Tenant, error)
}

// UserRepository provides credential lookups and login bookkeeping.
type UserRepository interface {
	// FindByUsername returns the user with the given username inside a single
	// tenant. Usernames are only unique per tenant, so the tenant id is part
	// of the lookup key.
	FindByUsername(ctx context.Context, tenantID, username string) (*User, error)

	// FindByID returns a user by primary key, across all tenants. Used by the
	// refresh flow, where the tenant is re-derived from the user record.
	FindByID(ctx context.Context, userID string) (*User, error)

	// UpdateLastLogin stamps the user's last successful login time.
	UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error
}

// PersonDirectory resolves the person profile linked to a credential.
type PersonDirectory interface {
	FindByID(ctx context.Context, personID string) (*Person, error)
}

// TokenRevocationList tracks refresh tokens invalidated before their natural
// expiry. Entries are keyed by the token's jti claim and live exactly as long
// as the token itself would have.
type TokenRevocationList interface {
	// Revoke marks the token id as revoked for the given remaining lifetime.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token id has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

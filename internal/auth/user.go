// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

/*
Package auth implements the multi-tenant authentication core.

It defines the credential-side view of the domain (Tenant, Person, User) and
the login/refresh/logout flows that turn a tenant identifier plus credentials
into a signed access/refresh token pair.

# Architecture

  - Service: Orchestrates tenant resolution, subscription gating, credential
    verification, and token issuance.
  - Repositories: Abstracted interfaces over Postgres (tenants, people,
    users) and Redis (revoked refresh tokens).
  - Security: Bcrypt password verification and dual-secret HS256 tokens,
    both injected from internal/platform/sec.

The service holds no mutable state of its own; every login or refresh is an
independent, stateless orchestration over the stores.
*/
package auth

import "time"

// # Domain Entities

// Tenant is the credential-side view of a customer organization.
//
// The Authenticator only reads tenants; creation and deactivation belong to
// the administrative CRUD flows.
type Tenant struct {
	ID     string `json:"id"`
	TaxID  string `json:"tax_id"`
	Name   string `json:"name"`
	// DeactivatedAt, once strictly in the past, terminates the subscription
	// and blocks every new login for the tenant.
	DeactivatedAt *time.Time `json:"deactivated_at"`
}

// IsTerminated reports whether the tenant's subscription has ended as of now.
//
// A deactivation date in the future — or exactly equal to now — still counts
// as active; only a strictly past date blocks logins.
func (t *Tenant) IsTerminated(now time.Time) bool {
	return t.DeactivatedAt != nil && t.DeactivatedAt.Before(now)
}

// Person is the human profile linked to a credential. The authentication
// core only needs it for the display email in the login response.
type Person struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
}

// User is a login credential bound to exactly one tenant and one person.
// Usernames are unique per tenant, not globally.
type User struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenant_id"`
	PersonID     string     `json:"person_id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	LastLogin    *time.Time `json:"last_login"`
}

// UserSummary is the client-facing identity block returned by a login.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldTaxID        = "tax_id"
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldRefreshToken = "refreshToken"
	FieldAccessToken  = "accessToken"
	FieldUser         = "user"
	FieldMessage      = "message"
)

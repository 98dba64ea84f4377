// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentora/dentora/internal/platform/database/schema"
	"github.com/dentora/dentora/internal/platform/dberr"
)

// # Tenant Directory

// PostgresTenantDirectory implements the TenantDirectory interface using pgx.
type PostgresTenantDirectory struct {
	pool *pgxpool.Pool
}

// NewTenantDirectory creates a new PostgreSQL implementation of the TenantDirectory.
func NewTenantDirectory(pool *pgxpool.Pool) *PostgresTenantDirectory {
	return &PostgresTenantDirectory{pool: pool}
}

/*
FindByTaxID retrieves a tenant record by its public tax identifier.

Description: Resolves the organization a login attempt is aimed at. The
deactivation timestamp is loaded so the caller can gate on subscription state.

Parameters:
  - ctx: context.Context
  - taxID: string

Returns:
  - *Tenant: Hydrated tenant entity
  - error: dberr.ErrNotFound or execution errors
*/
func (directory *PostgresTenantDirectory) FindByTaxID(ctx context.Context, taxID string) (*Tenant, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Tenant.ID, schema.Tenant.TaxID, schema.Tenant.Name, schema.Tenant.DeactivatedAt,
		schema.Tenant.Table,
		schema.Tenant.TaxID,
	)

	tenant := &Tenant{}
	err := directory.pool.QueryRow(ctx, query, taxID).Scan(
		&tenant.ID,
		&tenant.TaxID,
		&tenant.Name,
		&tenant.DeactivatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "tenant_directory_find_by_tax_id")
	}

	return tenant, nil
}

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
FindByUsername retrieves a credential by (tenant, username).

Description: Usernames are only unique inside a tenant, so the tenant id is a
mandatory part of the lookup key. This is the hot path of every login.

Parameters:
  - ctx: context.Context
  - tenantID: string
  - username: string

Returns:
  - *User: Hydrated credential entity including the password hash
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, tenantID, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.User.ID, schema.User.TenantID, schema.User.PersonID,
		schema.User.Username, schema.User.PasswordHash, schema.User.LastLogin,
		schema.User.Table,
		schema.User.TenantID, schema.User.Username,
	)

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, tenantID, username).Scan(
		&user.ID,
		&user.TenantID,
		&user.PersonID,
		&user.Username,
		&user.PasswordHash,
		&user.LastLogin,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "user_repo_find_by_username")
	}

	return user, nil
}

/*
FindByID retrieves a credential by primary key, across all tenants.

Description: Used by the refresh flow, where the tenant binding is re-derived
from the user's current record rather than trusted from the old token.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *User: Hydrated credential entity
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.User.ID, schema.User.TenantID, schema.User.PersonID,
		schema.User.Username, schema.User.PasswordHash, schema.User.LastLogin,
		schema.User.Table,
		schema.User.ID,
	)

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.TenantID,
		&user.PersonID,
		&user.Username,
		&user.PasswordHash,
		&user.LastLogin,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "user_repo_find_by_id")
	}

	return user, nil
}

/*
UpdateLastLogin stamps the user's last successful authentication time.

Parameters:
  - ctx: context.Context
  - userID: string
  - loginTime: time.Time

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2 WHERE %s = $1",
		schema.User.Table, schema.User.LastLogin, schema.User.ID,
	)

	if _, err := repository.pool.Exec(ctx, query, userID, loginTime); err != nil {
		return dberr.Wrap(err, "user_repo_update_last_login")
	}

	return nil
}

// # Person Directory

// PostgresPersonDirectory implements the PersonDirectory interface using pgx.
type PostgresPersonDirectory struct {
	pool *pgxpool.Pool
}

// NewPersonDirectory creates a new PostgreSQL implementation of the PersonDirectory.
func NewPersonDirectory(pool *pgxpool.Pool) *PostgresPersonDirectory {
	return &PostgresPersonDirectory{pool: pool}
}

/*
FindByID retrieves the person profile linked to a credential.

Description: Only the fields needed by the login response are loaded.

Parameters:
  - ctx: context.Context
  - personID: string

Returns:
  - *Person: Hydrated profile entity
  - error: dberr.ErrNotFound or execution errors
*/
func (directory *PostgresPersonDirectory) FindByID(ctx context.Context, personID string) (*Person, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, '')
		FROM %s
		WHERE %s = $1`,
		schema.Person.ID, schema.Person.TenantID, schema.Person.Email,
		schema.Person.Table,
		schema.Person.ID,
	)

	person := &Person{}
	err := directory.pool.QueryRow(ctx, query, personID).Scan(
		&person.ID,
		&person.TenantID,
		&person.Email,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "person_directory_find_by_id")
	}

	return person, nil
}

// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentora/dentora/internal/auth"
	"github.com/dentora/dentora/internal/platform/dberr"
	"github.com/dentora/dentora/internal/platform/sec"
	"github.com/dentora/dentora/pkg/pointer"
)

// # In-Memory Stubs

type stubTenantDirectory struct {
	tenants map[string]*auth.Tenant // keyed by tax id
	err     error
}

func (s *stubTenantDirectory) FindByTaxID(_ context.Context, taxID string) (*auth.Tenant, error) {
	if s.err != nil {
		return nil, s.err
	}
	tenant, ok := s.tenants[taxID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return tenant, nil
}

type stubUserRepository struct {
	users        map[string]*auth.User // keyed by tenantID + "/" + username
	byID         map[string]*auth.User
	lastLoginID  string
	lastLoginAt  time.Time
	lastLoginErr error
}

func (s *stubUserRepository) FindByUsername(_ context.Context, tenantID, username string) (*auth.User, error) {
	user, ok := s.users[tenantID+"/"+username]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return user, nil
}

func (s *stubUserRepository) FindByID(_ context.Context, userID string) (*auth.User, error) {
	user, ok := s.byID[userID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return user, nil
}

func (s *stubUserRepository) UpdateLastLogin(_ context.Context, userID string, loginTime time.Time) error {
	if s.lastLoginErr != nil {
		return s.lastLoginErr
	}
	s.lastLoginID = userID
	s.lastLoginAt = loginTime
	return nil
}

type stubPersonDirectory struct {
	people map[string]*auth.Person
}

func (s *stubPersonDirectory) FindByID(_ context.Context, personID string) (*auth.Person, error) {
	person, ok := s.people[personID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return person, nil
}

type stubRevocationList struct {
	revoked map[string]time.Duration
	err     error
}

func (s *stubRevocationList) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	if s.revoked == nil {
		s.revoked = map[string]time.Duration{}
	}
	s.revoked[tokenID] = ttl
	return nil
}

func (s *stubRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}

// # Fixture

type fixture struct {
	service *auth.Service
	tenants *stubTenantDirectory
	users   *stubUserRepository
	people  *stubPersonDirectory
	revoked *stubRevocationList
	codec   *sec.TokenService
}

const testPassword = "correct-horse-battery"

func newFixture(t *testing.T) *fixture {
	t.Helper()

	codec, err := sec.NewTokenService(
		"test-access-secret", "test-refresh-secret", "dentora.test",
		15*time.Minute, 24*time.Hour,
	)
	require.NoError(t, err)

	hash, err := sec.HashPassword(testPassword)
	require.NoError(t, err)

	user := &auth.User{
		ID:           "user-1",
		TenantID:     "tenant-1",
		PersonID:     "person-1",
		Username:     "jdoe",
		PasswordHash: hash,
	}

	tenants := &stubTenantDirectory{tenants: map[string]*auth.Tenant{
		"20123456789": {ID: "tenant-1", TaxID: "20123456789", Name: "Smile Clinic"},
	}}
	users := &stubUserRepository{
		users: map[string]*auth.User{"tenant-1/jdoe": user},
		byID:  map[string]*auth.User{"user-1": user},
	}
	people := &stubPersonDirectory{people: map[string]*auth.Person{
		"person-1": {ID: "person-1", TenantID: "tenant-1", Email: "jdoe@smile.example"},
	}}
	revoked := &stubRevocationList{}

	return &fixture{
		service: auth.NewService(tenants, users, people, revoked, codec),
		tenants: tenants,
		users:   users,
		people:  people,
		revoked: revoked,
		codec:   codec,
	}
}

func validLogin() auth.LoginInput {
	return auth.LoginInput{TaxID: "20123456789", Username: "jdoe", Password: testPassword}
}

// # Login Tests

/*
TestAuthenticate_Success verifies the happy path end to end: both tokens are
verifiable, carry the right bindings, and the identity summary is complete.
*/
func TestAuthenticate_Success(t *testing.T) {
	f := newFixture(t)
	before := time.Now()

	session, err := f.service.Authenticate(context.Background(), validLogin())
	require.NoError(t, err)

	accessClaims, err := f.codec.VerifyAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", accessClaims.UserID)
	assert.Equal(t, "tenant-1", accessClaims.TenantID)

	refreshClaims, err := f.codec.VerifyRefreshToken(session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
	assert.NotEmpty(t, refreshClaims.ID, "refresh token must carry a jti")

	assert.Equal(t, auth.UserSummary{
		ID:       "user-1",
		Username: "jdoe",
		Email:    "jdoe@smile.example",
		TenantID: "tenant-1",
	}, session.User)

	// Last login is stamped with a time no earlier than the call itself.
	assert.Equal(t, "user-1", f.users.lastLoginID)
	assert.False(t, f.users.lastLoginAt.Before(before))
}

/*
TestAuthenticate_TenantNotFound checks that an unknown tax id fails before any
credential is even considered.
*/
func TestAuthenticate_TenantNotFound(t *testing.T) {
	f := newFixture(t)

	input := validLogin()
	input.TaxID = "99999999999"

	_, err := f.service.Authenticate(context.Background(), input)
	assert.ErrorIs(t, err, auth.ErrTenantNotFound)
}

/*
TestAuthenticate_SubscriptionState covers the strictly-in-the-past rule for
tenant deactivation: a future date still allows logins.
*/
func TestAuthenticate_SubscriptionState(t *testing.T) {
	tests := []struct {
		name          string
		deactivatedAt *time.Time
		wantErr       error
	}{
		{"never_deactivated", nil, nil},
		{"deactivated_in_past", pointer.To(time.Now().Add(-time.Hour)), auth.ErrSubscriptionTerminated},
		{"deactivation_scheduled_in_future", pointer.To(time.Now().Add(time.Hour)), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.tenants.tenants["20123456789"].DeactivatedAt = tt.deactivatedAt

			_, err := f.service.Authenticate(context.Background(), validLogin())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestAuthenticate_InvalidCredentials asserts that an unknown username and a
wrong password produce the exact same error value, so responses cannot be
used to enumerate usernames.
*/
func TestAuthenticate_InvalidCredentials(t *testing.T) {
	f := newFixture(t)

	unknownUser := validLogin()
	unknownUser.Username = "nobody"
	_, errUnknown := f.service.Authenticate(context.Background(), unknownUser)

	wrongPassword := validLogin()
	wrongPassword.Password = "wrong"
	_, errWrong := f.service.Authenticate(context.Background(), wrongPassword)

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown, errWrong)
	assert.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
}

/*
TestAuthenticate_CheckOrdering pins the fixed evaluation order: subscription
state is reported even when the credentials are also wrong, and an unknown
tenant wins over everything else.
*/
func TestAuthenticate_CheckOrdering(t *testing.T) {
	t.Run("termination_masks_bad_password", func(t *testing.T) {
		f := newFixture(t)
		f.tenants.tenants["20123456789"].DeactivatedAt = pointer.To(time.Now().Add(-time.Minute))

		input := validLogin()
		input.Password = "wrong"

		_, err := f.service.Authenticate(context.Background(), input)
		assert.ErrorIs(t, err, auth.ErrSubscriptionTerminated)
	})

	t.Run("unknown_tenant_masks_everything", func(t *testing.T) {
		f := newFixture(t)

		input := auth.LoginInput{TaxID: "00000000000", Username: "nobody", Password: "wrong"}
		_, err := f.service.Authenticate(context.Background(), input)
		assert.ErrorIs(t, err, auth.ErrTenantNotFound)
	})
}

/*
TestAuthenticate_BestEffortSideEffects verifies that neither a failed
last-login stamp nor a missing person profile rejects an otherwise valid login.
*/
func TestAuthenticate_BestEffortSideEffects(t *testing.T) {
	t.Run("last_login_update_failure", func(t *testing.T) {
		f := newFixture(t)
		f.users.lastLoginErr = errors.New("connection reset")

		session, err := f.service.Authenticate(context.Background(), validLogin())
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
	})

	t.Run("missing_person_profile", func(t *testing.T) {
		f := newFixture(t)
		delete(f.people.people, "person-1")

		session, err := f.service.Authenticate(context.Background(), validLogin())
		require.NoError(t, err)
		assert.Empty(t, session.User.Email)
		assert.Equal(t, "jdoe", session.User.Username)
	})
}

// # Refresh Tests

/*
TestRefresh_Success exchanges a fresh refresh token for a new access token
and verifies the identity binding.
*/
func TestRefresh_Success(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Authenticate(context.Background(), validLogin())
	require.NoError(t, err)

	accessToken, err := f.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)

	claims, err := f.codec.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
}

/*
TestRefresh_Rejections covers the collapsed failure modes: garbage tokens,
revoked tokens, and tokens whose user no longer exists all map to one error.
*/
func TestRefresh_Rejections(t *testing.T) {
	t.Run("garbage_token", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Refresh(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("access_token_in_refresh_slot", func(t *testing.T) {
		f := newFixture(t)
		session, err := f.service.Authenticate(context.Background(), validLogin())
		require.NoError(t, err)

		// Signed with the access secret, so it must fail refresh verification.
		_, err = f.service.Refresh(context.Background(), session.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("revoked_by_logout", func(t *testing.T) {
		f := newFixture(t)
		session, err := f.service.Authenticate(context.Background(), validLogin())
		require.NoError(t, err)

		require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))

		_, err = f.service.Refresh(context.Background(), session.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("deleted_user", func(t *testing.T) {
		f := newFixture(t)
		session, err := f.service.Authenticate(context.Background(), validLogin())
		require.NoError(t, err)

		delete(f.users.byID, "user-1")

		_, err = f.service.Refresh(context.Background(), session.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})
}

/*
TestRefresh_UsesCurrentTenantBinding checks that a user moved to a different
tenant after login receives access tokens for the new tenant, never the one
embedded at login time.
*/
func TestRefresh_UsesCurrentTenantBinding(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Authenticate(context.Background(), validLogin())
	require.NoError(t, err)

	f.users.byID["user-1"].TenantID = "tenant-2"

	accessToken, err := f.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)

	claims, err := f.codec.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "tenant-2", claims.TenantID)
}

/*
TestRefresh_AfterTenantDeactivation pins current behavior: refresh does not
re-check subscription state, so a token issued before deactivation keeps
minting access tokens until it expires or is revoked.
*/
func TestRefresh_AfterTenantDeactivation(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Authenticate(context.Background(), validLogin())
	require.NoError(t, err)

	f.tenants.tenants["20123456789"].DeactivatedAt = pointer.To(time.Now().Add(-time.Second))

	_, err = f.service.Refresh(context.Background(), session.RefreshToken)
	assert.NoError(t, err)
}

/*
TestRefresh_DoesNotRotate confirms the same refresh token can be exchanged
repeatedly: no rotation, no single-use semantics.
*/
func TestRefresh_DoesNotRotate(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Authenticate(context.Background(), validLogin())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.service.Refresh(context.Background(), session.RefreshToken)
		require.NoError(t, err)
	}

	assert.Empty(t, f.revoked.revoked, "refresh must never revoke the presented token")
}

// # Logout Tests

/*
TestLogout covers idempotency and the revocation TTL: the entry must not
outlive the token it blocks.
*/
func TestLogout(t *testing.T) {
	t.Run("revokes_token_jti", func(t *testing.T) {
		f := newFixture(t)
		session, err := f.service.Authenticate(context.Background(), validLogin())
		require.NoError(t, err)

		claims, err := f.codec.VerifyRefreshToken(session.RefreshToken)
		require.NoError(t, err)

		require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))

		ttl, ok := f.revoked.revoked[claims.ID]
		require.True(t, ok)
		assert.LessOrEqual(t, ttl, 24*time.Hour)
		assert.Greater(t, ttl, 23*time.Hour)
	})

	t.Run("idempotent_on_garbage", func(t *testing.T) {
		f := newFixture(t)
		assert.NoError(t, f.service.Logout(context.Background(), "not.a.token"))
		assert.Empty(t, f.revoked.revoked)
	})

	t.Run("idempotent_on_double_logout", func(t *testing.T) {
		f := newFixture(t)
		session, err := f.service.Authenticate(context.Background(), validLogin())
		require.NoError(t, err)

		require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))
		assert.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))
	})
}

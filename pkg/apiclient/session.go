// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

/*
Package apiclient is the Go client for the Dentora API.

It manages the full session lifecycle on behalf of the caller: login stores
the token pair, every request carries the bearer token, and a rejected access
token triggers exactly one silent refresh before the request is retried. When
the refresh itself is rejected the session is cleared and the caller sees
[ErrSessionExpired] — the programmatic equivalent of being sent back to the
login screen.
*/
package apiclient

import "sync"

// User is the identity block cached from a successful login.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

// Session holds the client-side authentication state.
//
// # Concurrency
//
// All accessors are safe for concurrent use; the Client refreshes tokens from
// multiple goroutines at once.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         *User
}

// set installs a fresh token pair after login.
func (s *Session) set(accessToken, refreshToken string, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.user = user
}

// setAccessToken swaps only the access token after a refresh.
func (s *Session) setAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// Clear wipes the session. Idempotent: clearing an empty session is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
}

// AccessToken returns the current access token, or "" when logged out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token, or "" when logged out.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the cached identity, or nil when logged out.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a login has succeeded and not been cleared.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != ""
}

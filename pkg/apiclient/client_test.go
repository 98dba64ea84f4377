// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentora/dentora/pkg/apiclient"
)

// fakeAPI simulates the server-side session contract: a login issues token
// pair #1, each refresh issues the next access token, and data requests only
// accept the latest access token.
type fakeAPI struct {
	mu            sync.Mutex
	currentAccess string
	refreshCalls  atomic.Int32
	refreshFails  bool
	dataCalls     atomic.Int32
}

func (api *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	// Go 1.21's ServeMux has no method-prefixed patterns, so each route
	// enforces its method explicitly.
	requireMethod := func(method string, next http.HandlerFunc) http.HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) {
			if request.Method != method {
				http.Error(writer, "Method Not Allowed", http.StatusMethodNotAllowed)
				return
			}
			next(writer, request)
		}
	}

	mux.HandleFunc("/api/auth/login", requireMethod(http.MethodPost, func(writer http.ResponseWriter, request *http.Request) {
		api.mu.Lock()
		api.currentAccess = "access-1"
		api.mu.Unlock()

		writeJSON(writer, http.StatusOK, map[string]interface{}{
			"message":      "Login successful",
			"accessToken":  "access-1",
			"refreshToken": "refresh-1",
			"user": map[string]string{
				"id": "user-1", "username": "jdoe", "email": "jdoe@smile.example", "tenant_id": "tenant-1",
			},
		})
	}))

	mux.HandleFunc("/api/auth/refresh", requireMethod(http.MethodPost, func(writer http.ResponseWriter, request *http.Request) {
		count := api.refreshCalls.Add(1)

		if api.refreshFails {
			writeJSON(writer, http.StatusForbidden, map[string]string{
				"message": "Invalid or expired refresh token", "code": "FORBIDDEN",
			})
			return
		}

		next := "access-refreshed-" + strconv.Itoa(int(count))
		api.mu.Lock()
		api.currentAccess = next
		api.mu.Unlock()

		writeJSON(writer, http.StatusOK, map[string]string{"accessToken": next})
	}))

	mux.HandleFunc("/api/auth/logout", requireMethod(http.MethodPost, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("/api/data", requireMethod(http.MethodGet, func(writer http.ResponseWriter, request *http.Request) {
		api.dataCalls.Add(1)

		bearer := strings.TrimPrefix(request.Header.Get("Authorization"), "Bearer ")
		api.mu.Lock()
		valid := bearer != "" && bearer == api.currentAccess
		api.mu.Unlock()

		if !valid {
			writeJSON(writer, http.StatusUnauthorized, map[string]string{
				"message": "Invalid or expired token", "code": "UNAUTHORIZED",
			})
			return
		}

		writeJSON(writer, http.StatusOK, map[string]string{"value": "ok"})
	}))

	return mux
}

// expireAccess invalidates the current access token, as server-side expiry would.
func (api *fakeAPI) expireAccess() {
	api.mu.Lock()
	api.currentAccess = "rotated-away"
	api.mu.Unlock()
}

func writeJSON(writer http.ResponseWriter, status int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}

func newLoggedInClient(t *testing.T, api *fakeAPI) *apiclient.Client {
	t.Helper()

	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)

	client := apiclient.New(server.URL)
	require.NoError(t, client.Login(context.Background(), "20123456789", "jdoe", "secret"))
	require.True(t, client.Session().IsAuthenticated())

	return client
}

/*
TestClient_LoginAndDo checks the basic authenticated round-trip and the
cached identity.
*/
func TestClient_LoginAndDo(t *testing.T) {
	api := &fakeAPI{}
	client := newLoggedInClient(t, api)

	user := client.Session().User()
	require.NotNil(t, user)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "tenant-1", user.TenantID)

	var out map[string]string
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/api/data", nil, &out))
	assert.Equal(t, "ok", out["value"])
	assert.Zero(t, api.refreshCalls.Load(), "a valid token must not trigger a refresh")
}

/*
TestClient_SilentRefreshRetry expires the access token and verifies the 401
is absorbed by one refresh plus one retry, invisible to the caller.
*/
func TestClient_SilentRefreshRetry(t *testing.T) {
	api := &fakeAPI{}
	client := newLoggedInClient(t, api)

	api.expireAccess()

	var out map[string]string
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/api/data", nil, &out))
	assert.Equal(t, "ok", out["value"])

	assert.Equal(t, int32(1), api.refreshCalls.Load())
	assert.Equal(t, int32(2), api.dataCalls.Load(), "expected original attempt plus one retry")
	assert.True(t, client.Session().IsAuthenticated())
}

/*
TestClient_RefreshFailureClearsSession verifies the logged-out end state when
the refresh token is rejected: ErrSessionExpired and an empty session.
*/
func TestClient_RefreshFailureClearsSession(t *testing.T) {
	api := &fakeAPI{refreshFails: true}
	client := newLoggedInClient(t, api)

	api.expireAccess()

	err := client.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)
	assert.ErrorIs(t, err, apiclient.ErrSessionExpired)
	assert.False(t, client.Session().IsAuthenticated())
	assert.Empty(t, client.Session().RefreshToken())

	// A follow-up request short-circuits: no refresh token, no server calls.
	refreshCallsBefore := api.refreshCalls.Load()
	err = client.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)
	assert.Error(t, err)
	assert.Equal(t, refreshCallsBefore, api.refreshCalls.Load())
}

/*
TestClient_RetryNeverRefreshesTwice pins the single-retry contract: when the
retried request is rejected again, its 401 surfaces directly instead of
looping through another refresh.
*/
func TestClient_RetryNeverRefreshesTwice(t *testing.T) {
	var refreshCalls, dataCalls atomic.Int32

	// A stubborn server: login and refresh succeed, but the data endpoint
	// rejects every token it ever sees.
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/auth/login":
			writeJSON(writer, http.StatusOK, map[string]interface{}{
				"message":      "Login successful",
				"accessToken":  "access-1",
				"refreshToken": "refresh-1",
				"user":         map[string]string{"id": "user-1", "username": "jdoe", "tenant_id": "tenant-1"},
			})
		case "/api/auth/refresh":
			refreshCalls.Add(1)
			writeJSON(writer, http.StatusOK, map[string]string{"accessToken": "access-2"})
		default:
			dataCalls.Add(1)
			writeJSON(writer, http.StatusUnauthorized, map[string]string{
				"message": "Invalid or expired token", "code": "UNAUTHORIZED",
			})
		}
	}))
	t.Cleanup(server.Close)

	client := apiclient.New(server.URL)
	require.NoError(t, client.Login(context.Background(), "20123456789", "jdoe", "secret"))

	err := client.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)

	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	assert.Equal(t, int32(1), refreshCalls.Load(), "exactly one refresh per failed request")
	assert.Equal(t, int32(2), dataCalls.Load(), "exactly one retry, then give up")
}

/*
TestClient_ConcurrentRequestsShareOneRefresh launches many requests against
an expired token and asserts the singleflight group collapses their refreshes
into a single server round-trip.
*/
func TestClient_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	api := &fakeAPI{}
	client := newLoggedInClient(t, api)

	api.expireAccess()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			errs[slot] = client.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), api.refreshCalls.Load(), "concurrent 401s must share one refresh")
}

/*
TestClient_Logout verifies the session is cleared locally regardless of the
server's answer.
*/
func TestClient_Logout(t *testing.T) {
	api := &fakeAPI{}
	client := newLoggedInClient(t, api)

	require.NoError(t, client.Logout(context.Background()))
	assert.False(t, client.Session().IsAuthenticated())
	assert.Nil(t, client.Session().User())

	// Idempotent: logging out again is a no-op.
	assert.NoError(t, client.Logout(context.Background()))
}

/*
TestClient_APIErrorDecoding checks that non-401 failures surface as APIError
without any refresh attempt.
*/
func TestClient_APIErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusNotFound, map[string]string{
			"message": "Resource not found", "code": "NOT_FOUND",
		})
	}))
	t.Cleanup(server.Close)

	client := apiclient.New(server.URL)
	err := client.Do(context.Background(), http.MethodGet, "/api/missing", nil, nil)

	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Resource not found", apiErr.Message)
}

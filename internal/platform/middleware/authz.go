// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package middleware

import (
	"net/http"
	"strings"

	"github.com/dentora/dentora/internal/platform/apperr"
	"github.com/dentora/dentora/internal/platform/ctxutil"
	"github.com/dentora/dentora/internal/platform/respond"
	"github.com/dentora/dentora/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.AccessClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous ([RequireAuth] gates later).
//  3. If present but malformed, abort with 401.
//  4. If present, verify the token via [TokenVerifier]. Signature and expiry
//     failures are collapsed into one outward message so a caller cannot
//     tell which check failed.
//  5. Inject the [*sec.AccessClaims] identity {user id, tenant id} into the
//     request context. No database round-trip happens here — the claims are
//     trusted because they are signed.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyAccessToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authorization header missing"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetIdentity retrieves the authenticated [*sec.AccessClaims] from a request context.
//
// # Returns
//   - The verified claims if the request is authenticated.
//   - nil if the request is anonymous.
func GetIdentity(request *http.Request) *sec.AccessClaims {
	return ctxutil.GetIdentity(request.Context())
}

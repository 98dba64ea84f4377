// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dentora/dentora/internal/platform/apperr"
	"github.com/dentora/dentora/internal/platform/ctxutil"
	"github.com/dentora/dentora/internal/platform/sec"
	"github.com/dentora/dentora/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID retrieves a named URL parameter (UUID) from the request.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Identity extracts the authenticated identity claims from the request context.
//
// Returns nil if the request is not authenticated.
func Identity(request *http.Request) *sec.AccessClaims {
	return ctxutil.GetIdentity(request.Context())
}

// RequiredIdentity ensures the request is authenticated and returns the claims.
func RequiredIdentity(request *http.Request) (*sec.AccessClaims, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}

// RequiredTenantID returns the tenant binding of the current session.
//
// Every tenant-scoped query MUST take its tenant id from here, never from
// client-supplied input, so one tenant can never read another's rows.
func RequiredTenantID(request *http.Request) (string, error) {
	identity, err := RequiredIdentity(request)
	if err != nil {
		return "", err
	}
	return identity.TenantID, nil
}

// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/dentora/dentora/internal/platform/ctxutil"
	"github.com/dentora/dentora/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that access claims can be stored in context.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()
	claims := &sec.AccessClaims{
		UserID:   "user-123",
		TenantID: "tenant-456",
	}

	// 1. Initially should be nil (anonymous)
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithIdentity(ctx, claims)
	retrieved := ctxutil.GetIdentity(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "tenant-456", retrieved.TenantID)
}

/*
TestContext_Locale verifies the negotiated language round-trip and its
English fallback.
*/
func TestContext_Locale(t *testing.T) {
	ctx := context.Background()

	// 1. Defaults to English when never negotiated
	assert.Equal(t, language.English, ctxutil.GetLocale(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLocale(ctx, language.Spanish)
	assert.Equal(t, language.Spanish, ctxutil.GetLocale(ctx))
}

// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/dentora/dentora/internal/platform/ctxkey"
	"github.com/dentora/dentora/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithIdentity returns a new context carrying the verified access claims.
func WithIdentity(ctx context.Context, identity *sec.AccessClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity retrieves the [*sec.AccessClaims] from the [context.Context].
// Returns nil for anonymous requests.
func GetIdentity(ctx context.Context) *sec.AccessClaims {
	claims, ok := ctx.Value(ctxkey.KeyIdentity).(*sec.AccessClaims)
	if !ok {
		return nil
	}
	return claims
}

// # Localization

// WithLocale returns a new context carrying the negotiated response language.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLocale, tag)
}

// GetLocale retrieves the negotiated language tag, defaulting to English.
func GetLocale(ctx context.Context) language.Tag {
	tag, ok := ctx.Value(ctxkey.KeyLocale).(language.Tag)
	if !ok {
		return language.English
	}
	return tag
}

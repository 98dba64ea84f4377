// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

/*
Package i18n localizes the handful of user-facing API messages.

The administrative frontend is used by Spanish- and English-speaking staff, so
responses that surface directly in the UI (login confirmation, generic
failures) are translated server-side based on the Accept-Language header.

Scope is deliberately tiny: field-level validation details and error codes are
machine-readable and stay in English.
*/
package i18n

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/dentora/dentora/internal/platform/constants"
)

// supported lists the languages the catalog covers. The first entry is the
// fallback when negotiation fails.
var supported = []language.Tag{
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// Message keys known to the catalog.
const (
	MsgLoginSuccessful     = "login_successful"
	MsgInternalServerError = "internal_server_error"
	MsgValidationError     = "validation_error"
)

var catalog = map[language.Tag]map[string]string{
	language.English: {
		MsgLoginSuccessful:     "Login successful",
		MsgInternalServerError: "Internal server error",
		MsgValidationError:     "Validation error",
	},
	language.Spanish: {
		MsgLoginSuccessful:     "Inicio de sesión exitoso",
		MsgInternalServerError: "Error interno del servidor",
		MsgValidationError:     "Error de validación",
	},
}

// Negotiate resolves the best supported language for an incoming request.
func Negotiate(request *http.Request) language.Tag {
	accept := request.Header.Get(constants.HeaderAcceptLanguage)
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}

	_, index, _ := matcher.Match(tags...)
	return supported[index]
}

// T returns the translation of key for the given language tag.
// Unknown keys fall back to the key itself so a missing entry is visible
// rather than silent.
func T(tag language.Tag, key string) string {
	messages, ok := catalog[tag]
	if !ok {
		messages = catalog[supported[0]]
	}

	if msg, ok := messages[key]; ok {
		return msg
	}
	return key
}

// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dentora/dentora/internal/platform/apperr"
	"github.com/dentora/dentora/internal/platform/ctxutil"
	"github.com/dentora/dentora/internal/platform/i18n"
	requestutil "github.com/dentora/dentora/internal/platform/request"
	"github.com/dentora/dentora/internal/platform/respond"
	"github.com/dentora/dentora/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// Strictly a transport layer: decode, validate shape, delegate to [Service],
// encode. All ordering and security decisions live in the service.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login   : Authenticates tenant-scoped credentials.
//   - POST /refresh : Exchanges a refresh token for a new access token.
//   - POST /logout  : Revokes a refresh token. Idempotent.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	return router
}

// # Request & Response Payloads

type loginRequest struct {
	TaxID    string `json:"tax_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is intentionally flat (no data envelope): the SPA's session
// bootstrap reads the tokens straight off the top-level object.
type loginResponse struct {
	Message      string      `json:"message"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         UserSummary `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

/*
Login authenticates a user within a tenant.

POST /api/auth/login

Description: Validates the credential triple, then delegates to the service's
ordered tenant/subscription/credential checks.

Request:
  - Body: loginRequest (tax_id, username, password)

Response:
  - 200: loginResponse with both tokens and the identity summary
  - 400: Validation failure (missing fields, bad JSON)
  - 401: Company not found / Subscription terminated / Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTaxID, input.TaxID).
		Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Authenticate(request.Context(), LoginInput{
		TaxID:    input.TaxID,
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	locale := ctxutil.GetLocale(request.Context())
	respond.JSON(writer, http.StatusOK, loginResponse{
		Message:      i18n.T(locale, i18n.MsgLoginSuccessful),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         session.User,
	})
}

/*
Refresh exchanges a refresh token for a brand new access token.

POST /api/auth/refresh

Description: A missing token field is a malformed request (401), while a
present-but-invalid token is a rejected credential (403). The split lets the
client session manager distinguish "fix the request" from "log out".

Request:
  - Body: refreshRequest (refreshToken)

Response:
  - 200: refreshResponse with the new access token
  - 401: Refresh token field absent
  - 403: Token invalid, expired, or revoked
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.RefreshToken == "" {
		respond.Error(writer, request, apperr.Unauthorized("Refresh token required"))
		return
	}

	accessToken, err := handler.authService.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, refreshResponse{AccessToken: accessToken})
}

/*
Logout revokes a refresh token ahead of its natural expiry.

POST /api/auth/logout

Description: Idempotent by design. A missing, malformed, or already-dead token
still yields 204, since the desired end state is already true.

Request:
  - Body: logoutRequest (refreshToken), optional

Response:
  - 204: Token revoked (or was already unusable)
  - 500: Revocation store failure
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var input logoutRequest

	// A body that fails to decode carries no token to revoke; that is still a
	// successful logout from the client's point of view.
	if err := requestutil.DecodeJSON(request, &input); err != nil || input.RefreshToken == "" {
		respond.NoContent(writer)
		return
	}

	if err := handler.authService.Logout(request.Context(), input.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

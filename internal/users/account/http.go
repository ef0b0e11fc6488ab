// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
HTTP delivery layer for account profile, administration, and session security.

# Architecture

The handler exposes two route groups on the same router:
  - /me: Self-service endpoints available to any authenticated account.
  - /: Administration endpoints restricted to the ADMIN allow-list.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mandresy/fiangonana/internal/platform/middleware"
	requestutil "github.com/mandresy/fiangonana/internal/platform/request"
	"github.com/mandresy/fiangonana/internal/platform/respond"
	"github.com/mandresy/fiangonana/internal/platform/sec"
	"github.com/mandresy/fiangonana/internal/platform/validate"
	"github.com/mandresy/fiangonana/pkg/pagination"
)

// JSON field identifiers used in validation messages.
const (
	FieldRole       = "role"
	FieldAdherentID = "adherent_id"
)

// Handler implements account-related HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account routes.
//
// # Endpoints
//   - GET    /me                       : Session bootstrap profile.
//   - GET    /me/sessions              : Active devices of the caller.
//   - DELETE /me/sessions/{sessionID}  : Revoke one of the caller's sessions.
//   - DELETE /me/sessions              : Revoke all of the caller's sessions.
//   - GET    /                         : List accounts (ADMIN).
//   - PATCH  /{userID}/role            : Change an account's role (ADMIN).
//   - PATCH  /{userID}/adherent        : Link or unlink a registry member (ADMIN).
//   - DELETE /{userID}                 : Deactivate an account (ADMIN).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Get("/me/sessions", handler.listSessions)
		r.Delete("/me/sessions", handler.revokeAllSessions)
		r.Delete("/me/sessions/{sessionID}", handler.revokeSession)
	})

	// Administration endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireAnyRole(sec.RoleAdmin))
		r.Get("/", handler.listUsers)
		r.Patch("/{userID}/role", handler.updateRole)
		r.Patch("/{userID}/adherent", handler.linkAdherent)
		r.Delete("/{userID}", handler.deactivateUser)
	})

	return router
}

// # Request Payloads

type updateRoleRequest struct {
	Role string `json:"role"`
}

type linkAdherentRequest struct {
	AdherentID *string `json:"adherent_id"`
}

/*
GetMe returns the session bootstrap payload of the authenticated account.

GET /api/v1/users/me

Response:
  - 200: Profile: Account, optional registry summary, permissions, and menu
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetMe(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
ListSessions returns the active devices of the authenticated account.

GET /api/v1/users/me/sessions

Response:
  - 200: []SessionInfo: Active sessions, newest first
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
RevokeSession terminates one of the caller's own sessions.

DELETE /api/v1/users/me/sessions/{sessionID}

Response:
  - 204: No Content: Session revoked
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.ID(request, "sessionID")
	if err := handler.accountService.RevokeSession(request.Context(), userID, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
RevokeAllSessions terminates every session of the caller.

DELETE /api/v1/users/me/sessions

Response:
  - 204: No Content: All sessions revoked
*/
func (handler *Handler) revokeAllSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.RevokeAllSessions(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
ListUsers returns a page of accounts for the administration screen.

GET /api/v1/users

Response:
  - 200: []auth.Utilisateur: Page of accounts with pagination metadata
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	role := sec.UserRole(request.URL.Query().Get(FieldRole))

	users, total, err := handler.accountService.ListUsers(request.Context(), role, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
UpdateRole changes the authorization level of a target account.

PATCH /api/v1/users/{userID}/role

Request:
  - Body: updateRoleRequest (Role)

Response:
  - 204: No Content: Role updated
  - 400: ErrInvalidJSON: Unknown role
  - 403: ErrForbidden: Self-demotion attempt
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldRole, input.Role).
		OneOf(FieldRole, input.Role, string(sec.RoleAdmin), string(sec.RoleResponsable), string(sec.RoleUtilisateur))

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.ID(request, "userID")
	if err := handler.accountService.UpdateRole(request.Context(), actorID, targetID, sec.UserRole(input.Role)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
LinkAdherent attaches or detaches the registry member linked to an account.

PATCH /api/v1/users/{userID}/adherent

Request:
  - Body: linkAdherentRequest (AdherentID, null clears the link)

Response:
  - 204: No Content: Link updated
  - 404: ErrNotFound: Unknown account
  - 422: ErrUnprocessable: Linked adherent does not exist
*/
func (handler *Handler) linkAdherent(writer http.ResponseWriter, request *http.Request) {
	var input linkAdherentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.AdherentID != nil {
		v := &validate.Validator{}
		v.UUID(FieldAdherentID, *input.AdherentID)
		if err := v.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	targetID := requestutil.ID(request, "userID")
	if err := handler.accountService.LinkAdherent(request.Context(), targetID, input.AdherentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DeactivateUser logically deletes a target account.

DELETE /api/v1/users/{userID}

Response:
  - 204: No Content: Account deactivated and sessions revoked
  - 403: ErrForbidden: Self-deactivation attempt
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) deactivateUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.ID(request, "userID")
	if err := handler.accountService.DeactivateUser(request.Context(), actorID, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

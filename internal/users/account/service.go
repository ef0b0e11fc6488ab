// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mandresy/fiangonana/internal/platform/apperr"
	"github.com/mandresy/fiangonana/internal/platform/sec"
	"github.com/mandresy/fiangonana/internal/users/auth"
	"github.com/mandresy/fiangonana/pkg/pagination"
)

// Service orchestrates profile resolution, account administration, and
// session security.
type Service struct {
	accountRepo AccountRepository
	adherents   AdherentReader
	sessionRepo SessionRepository
	logger      *slog.Logger
}

// NewService constructs an account [Service] with its dependencies.
func NewService(
	accountRepo AccountRepository,
	adherents AdherentReader,
	sessionRepo SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		adherents:   adherents,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// # Profile Resolution

/*
GetMe assembles the session bootstrap payload for the authenticated account.

Description: The three blocks of the profile are resolved independently. The
account itself is mandatory; the registry summary is best-effort and degrades
to nil on any failure, so a broken registry link never locks a user out of
the console.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Account, optional registry summary, permissions, and menu
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetMe(context context.Context, userID string) (*Profile, error) {

	// 1. Load the account record (mandatory)
	user, err := service.accountRepo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		User:        user,
		Permissions: permissionsFor(user.Role),
		Menu:        menuFor(user.Role),
	}

	// 2. Resolve the linked registry member (best-effort)
	if user.AdherentID != nil {
		summary, err := service.adherents.FindSummary(context, *user.AdherentID)
		if err != nil {
			service.logger.Warn("account_adherent_resolution_failed",
				slog.String("user_id", user.ID),
				slog.String("adherent_id", *user.AdherentID),
				slog.String("error", err.Error()),
			)
		} else {
			profile.Adherent = summary
		}
	}

	return profile, nil
}

// permissionsFor maps a role onto the console's screen permission flags.
func permissionsFor(role sec.UserRole) map[string]bool {
	return map[string]bool{
		"can_manage_adherents":    role.CanManageAdherents(),
		"can_manage_groupes":      role.CanManageGroupes(),
		"can_view_stats":          role.CanViewStats(),
		"can_manage_utilisateurs": role.CanManageUtilisateurs(),
	}
}

// menuFor builds the navigation entries visible to a role.
//
// The dashboard, registry and group lists are visible to every authenticated
// account since their read endpoints are open to all roles; the remaining
// screens follow their allow-lists. Group mutations stay gated by the
// permission map.
func menuFor(role sec.UserRole) []MenuItem {
	menu := []MenuItem{
		{Label: "Tableau de bord", Path: "/dashboard"},
		{Label: "Adhérents", Path: "/adherents"},
		{Label: "Groupes", Path: "/groupes"},
	}

	if role.CanViewStats() {
		menu = append(menu, MenuItem{Label: "Statistiques", Path: "/statistiques"})
	}
	if role.CanManageUtilisateurs() {
		menu = append(menu, MenuItem{Label: "Utilisateurs", Path: "/utilisateurs"})
	}

	return menu
}

// # Account Administration

/*
ListUsers returns a page of active accounts for the administration screen.

Parameters:
  - context: context.Context
  - role: sec.UserRole (optional filter, empty for all)
  - params: pagination.Params

Returns:
  - []auth.Utilisateur: Page of accounts
  - int: Total active account count
  - error: apperr.ValidationError on an unknown role filter, or retrieval failures
*/
func (service *Service) ListUsers(context context.Context, role sec.UserRole, params pagination.Params) ([]auth.Utilisateur, int, error) {
	if role != "" && !role.IsValid() {
		return nil, 0, apperr.ValidationError("Invalid role filter", apperr.FieldError{
			Field:   "role",
			Message: "Unknown role",
		})
	}
	return service.accountRepo.List(context, string(role), params)
}

/*
UpdateRole changes the authorization level of a target account.

Description: The role must belong to the closed set of known levels, and an
administrator cannot change their own role. Self-demotion would otherwise
allow the last administrator to lock everyone out of account administration.

Parameters:
  - context: context.Context
  - actorID: string (the administrator performing the change)
  - targetID: string
  - role: sec.UserRole

Returns:
  - error: apperr.ValidationError, apperr.Forbidden, apperr.NotFound, or write failures
*/
func (service *Service) UpdateRole(context context.Context, actorID, targetID string, role sec.UserRole) error {

	// 1. Reject unknown roles before touching storage
	if !role.IsValid() {
		return apperr.ValidationError("Invalid role", apperr.FieldError{
			Field:   "role",
			Message: fmt.Sprintf("Role must be one of %s, %s, %s", sec.RoleAdmin, sec.RoleResponsable, sec.RoleUtilisateur),
		})
	}

	// 2. An administrator never edits their own role
	if actorID == targetID {
		return apperr.Forbidden("You cannot change your own role")
	}

	// 3. Persist the new level
	if err := service.accountRepo.UpdateRole(context, targetID, string(role)); err != nil {
		return err
	}

	service.logger.Info("account_role_updated",
		slog.String("actor_id", actorID),
		slog.String("target_id", targetID),
		slog.String("role", string(role)),
	)

	return nil
}

/*
LinkAdherent attaches or detaches the registry member linked to an account.

Description: Passing a nil adherentID clears the link. When an id is given,
the member is resolved first so the caller gets a clean 422 instead of a raw
constraint violation.

Parameters:
  - context: context.Context
  - targetID: string
  - adherentID: *string

Returns:
  - error: apperr.NotFound, apperr.Unprocessable, or write failures
*/
func (service *Service) LinkAdherent(context context.Context, targetID string, adherentID *string) error {

	// 1. Verify the registry member exists before linking
	if adherentID != nil {
		if _, err := service.adherents.FindSummary(context, *adherentID); err != nil {
			if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
				return apperr.Unprocessable("Linked adherent does not exist")
			}
			return err
		}
	}

	// 2. Persist the link
	return service.accountRepo.UpdateAdherentLink(context, targetID, adherentID)
}

/*
DeactivateUser logically deletes a target account and kills its sessions.

Description: Deactivation is preferred over a hard delete so that historical
data keeps its author. All refresh sessions are revoked immediately, which
forces the account out at the next token refresh.

Parameters:
  - context: context.Context
  - actorID: string
  - targetID: string

Returns:
  - error: apperr.Forbidden, apperr.NotFound, or write failures
*/
func (service *Service) DeactivateUser(context context.Context, actorID, targetID string) error {

	// 1. An administrator never deactivates their own account
	if actorID == targetID {
		return apperr.Forbidden("You cannot deactivate your own account")
	}

	// 2. Ensure the target exists and is still active
	if _, err := service.accountRepo.FindByID(context, targetID); err != nil {
		return err
	}

	// 3. Deactivate, then revoke every session
	if err := service.accountRepo.Deactivate(context, targetID); err != nil {
		return fmt.Errorf("account_deactivate_failed: %w", err)
	}

	if err := service.sessionRepo.RevokeAll(context, targetID); err != nil {
		service.logger.Error("account_deactivate_revoke_sessions_failed",
			slog.String("target_id", targetID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("account_deactivated",
		slog.String("actor_id", actorID),
		slog.String("target_id", targetID),
	)

	return nil
}

// # Session Security

/*
ListSessions returns the active devices of the authenticated account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []SessionInfo: Active sessions, newest first
  - error: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID string) ([]SessionInfo, error) {
	return service.sessionRepo.FindActiveByUserID(context, userID)
}

/*
RevokeSession terminates one of the authenticated account's own sessions.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	return service.sessionRepo.Revoke(context, userID, sessionID)
}

/*
RevokeAllSessions terminates every session of the authenticated account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) RevokeAllSessions(context context.Context, userID string) error {
	return service.sessionRepo.RevokeAll(context, userID)
}

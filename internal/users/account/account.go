// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
Package account handles account profile resolution, administration, and
session security.

It provides the "who am I" endpoint that the console boots from, and the
administration surface where an ADMIN manages roles and registry links.

# Architecture

  - Entities: Profile, AdherentSummary, SessionInfo (DTOs).
  - Domain: This package depends on the auth package for the Utilisateur entity.
  - Security: Provides session transparency and revocation mechanisms.
*/
package account

import (
	"context"
	"time"

	"github.com/mandresy/fiangonana/internal/users/auth"
	"github.com/mandresy/fiangonana/pkg/pagination"
)

// # Domain Entities

// AdherentSummary is the condensed registry view attached to a profile.
//
// It deliberately carries only the fields the console header and dashboards
// need; the full registry record lives in the core domain.
type AdherentSummary struct {
	ID             string  `json:"id"`
	Nom            string  `json:"nom"`
	Prenom         string  `json:"prenom"`
	Sexe           string  `json:"sexe"`
	Quartier       *string `json:"quartier,omitempty"`
	FonctionEglise *string `json:"fonction_eglise,omitempty"`
}

// MenuItem is a navigation entry of the console, filtered by role.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Profile is the complete session bootstrap payload for an account.
//
// The Adherent block is best-effort: a registry lookup failure degrades to
// nil instead of failing the whole profile.
type Profile struct {
	User        *auth.Utilisateur `json:"user"`
	Adherent    *AdherentSummary  `json:"adherent,omitempty"`
	Permissions map[string]bool   `json:"permissions"`
	Menu        []MenuItem        `json:"menu"`
}

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// # Repository Contracts

// AccountRepository defines the persistence contract for utilisateur accounts.
type AccountRepository interface {
	/*
		FindByID retrieves an account record by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.Utilisateur: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.Utilisateur, error)

	/*
		List returns a page of accounts ordered by creation time.

		Parameters:
		  - context: context.Context
		  - role: string (optional role filter, empty for all)
		  - params: pagination.Params

		Returns:
		  - []auth.Utilisateur: Page of accounts
		  - int: Total account count
		  - error: Retrieval failures
	*/
	List(context context.Context, role string, params pagination.Params) ([]auth.Utilisateur, int, error)

	/*
		UpdateRole replaces the authorization level of an account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - role: string

		Returns:
		  - error: Storage or constraint failures
	*/
	UpdateRole(context context.Context, userID, role string) error

	/*
		UpdateAdherentLink sets or clears the registry member linked to an account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - adherentID: *string (nil clears the link)

		Returns:
		  - error: Storage or constraint failures
	*/
	UpdateAdherentLink(context context.Context, userID string, adherentID *string) error

	/*
		Deactivate flags an account as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	Deactivate(context context.Context, id string) error
}

// AdherentReader resolves the registry summary linked to an account.
type AdherentReader interface {
	/*
		FindSummary retrieves the condensed registry view of a member.

		Parameters:
		  - context: context.Context
		  - adherentID: string

		Returns:
		  - *AdherentSummary: Condensed registry record
		  - error: apperr.NotFound or storage failures
	*/
	FindSummary(context context.Context, adherentID string) (*AdherentSummary, error)
}

// SessionRepository defines the visibility and revocation contract for user sessions.
type SessionRepository interface {
	/*
		FindActiveByUserID lists all valid, non-expired sessions for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []SessionInfo: List of active devices
		  - error: Retrieval errors
	*/
	FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error)

	/*
		Revoke marks a specific session as revoked.

		Parameters:
		  - context: context.Context
		  - userID: string (Security constraint: owner validation)
		  - sessionID: string

		Returns:
		  - error: Revocation failures
	*/
	Revoke(context context.Context, userID, sessionID string) error

	/*
		RevokeAll terminates every session for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Revocation failures
	*/
	RevokeAll(context context.Context, userID string) error
}

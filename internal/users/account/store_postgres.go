// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
Package account (Postgres) implements the storage layer for account
administration and session auditing.

# Schema Table Mapping
  - users.utilisateur: Master identity, role, and registry link.
  - core.adherent: Condensed registry view for profile resolution.
  - users.session: Active device sessions and security metadata.
*/
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mandresy/fiangonana/internal/platform/apperr"
	"github.com/mandresy/fiangonana/internal/platform/database/schema"
	"github.com/mandresy/fiangonana/internal/platform/dberr"
	"github.com/mandresy/fiangonana/internal/users/auth"
	"github.com/mandresy/fiangonana/pkg/pagination"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for account administration.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// PostgresAdherentReader implements [AdherentReader] using pgx.
type PostgresAdherentReader struct {
	pool *pgxpool.Pool
}

// NewAdherentReader creates a new Postgres implementation for registry summary lookups.
func NewAdherentReader(pool *pgxpool.Pool) *PostgresAdherentReader {
	return &PostgresAdherentReader{pool: pool}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// # AccountRepository Methods

/*
FindByID retrieves an account record from the users.utilisateur table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.Utilisateur: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.Utilisateur, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = TRUE`,
		schema.Utilisateur.ID, schema.Utilisateur.Username, schema.Utilisateur.Email,
		schema.Utilisateur.Password, schema.Utilisateur.Role, schema.Utilisateur.AdherentID,
		schema.Utilisateur.IsVerified, schema.Utilisateur.LastLoginAt,
		schema.Utilisateur.CreatedAt, schema.Utilisateur.UpdatedAt,
		schema.Utilisateur.Table, schema.Utilisateur.ID, schema.Utilisateur.IsActive,
	)

	user := &auth.Utilisateur{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.AdherentID,
		&user.IsVerified,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
List returns a page of active accounts ordered by creation time.

Description: Uses a window function (COUNT(*) OVER()) to fetch the total
row count alongside the page in a single round trip.

Parameters:
  - context: context.Context
  - role: string (optional role filter, empty for all)
  - params: pagination.Params

Returns:
  - []auth.Utilisateur: Page of accounts
  - int: Total active account count
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, role string, params pagination.Params) ([]auth.Utilisateur, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE %s = TRUE AND ($1 = '' OR %s = $1)
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		schema.Utilisateur.ID, schema.Utilisateur.Username, schema.Utilisateur.Email,
		schema.Utilisateur.Role, schema.Utilisateur.AdherentID, schema.Utilisateur.IsVerified,
		schema.Utilisateur.LastLoginAt, schema.Utilisateur.CreatedAt, schema.Utilisateur.UpdatedAt,
		schema.Utilisateur.Table, schema.Utilisateur.IsActive, schema.Utilisateur.Role,
		schema.Utilisateur.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, role, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var users []auth.Utilisateur
	var total int
	for rows.Next() {
		var user auth.Utilisateur
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.Role,
			&user.AdherentID,
			&user.IsVerified,
			&user.LastLoginAt,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}

	return users, total, nil
}

/*
UpdateRole replaces the authorization level of an account.

Parameters:
  - context: context.Context
  - userID: string
  - role: string

Returns:
  - error: apperr.NotFound when no active account matches, or write failures
*/
func (repository *PostgresAccountRepository) UpdateRole(context context.Context, userID, role string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s = TRUE`,
		schema.Utilisateur.Table, schema.Utilisateur.Role, schema.Utilisateur.UpdatedAt,
		schema.Utilisateur.ID, schema.Utilisateur.IsActive)

	tag, err := repository.pool.Exec(context, query, userID, role)
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_update_role_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
UpdateAdherentLink sets or clears the registry member linked to an account.

Description: A nil adherentID writes NULL and detaches the account from the
registry. The foreign key constraint rejects dangling member ids.

Parameters:
  - context: context.Context
  - userID: string
  - adherentID: *string

Returns:
  - error: apperr.NotFound, apperr.Unprocessable (unknown member), or write failures
*/
func (repository *PostgresAccountRepository) UpdateAdherentLink(context context.Context, userID string, adherentID *string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s = TRUE`,
		schema.Utilisateur.Table, schema.Utilisateur.AdherentID, schema.Utilisateur.UpdatedAt,
		schema.Utilisateur.ID, schema.Utilisateur.IsActive)

	tag, err := repository.pool.Exec(context, query, userID, adherentID)
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_update_adherent_link_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
Deactivate flags an account as logically deleted.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresAccountRepository) Deactivate(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = NOW() WHERE %s = $1`,
		schema.Utilisateur.Table, schema.Utilisateur.IsActive, schema.Utilisateur.UpdatedAt,
		schema.Utilisateur.ID)
	_, err := repository.pool.Exec(context, query, id)
	return err
}

// # AdherentReader Methods

/*
FindSummary retrieves the condensed registry view of a member.

Parameters:
  - context: context.Context
  - adherentID: string

Returns:
  - *AdherentSummary: Condensed registry record
  - error: apperr.NotFound or retrieval failures
*/
func (reader *PostgresAdherentReader) FindSummary(context context.Context, adherentID string) (*AdherentSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Adherent.ID, schema.Adherent.Nom, schema.Adherent.Prenom,
		schema.Adherent.Sexe, schema.Adherent.Quartier, schema.Adherent.FonctionEglise,
		schema.Adherent.Table, schema.Adherent.ID,
	)

	summary := &AdherentSummary{}
	err := reader.pool.QueryRow(context, query, adherentID).Scan(
		&summary.ID,
		&summary.Nom,
		&summary.Prenom,
		&summary.Sexe,
		&summary.Quartier,
		&summary.FonctionEglise,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Adherent")
		}
		return nil, fmt.Errorf("postgres_adherent_reader_find_summary_failed: %w", err)
	}

	return summary, nil
}

// # SessionRepository Methods

/*
FindActiveByUserID retrieves all valid device sessions for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []SessionInfo: Collection of active devices
  - error: Database retrieval failures
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()
		ORDER BY %s DESC`,
		schema.UserSession.ID, schema.UserSession.UserAgent, schema.UserSession.IPAddress,
		schema.UserSession.CreatedAt, schema.UserSession.ExpiresAt,
		schema.UserSession.Table,
		schema.UserSession.UserID, schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt,
		schema.UserSession.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_active_failed: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var sess SessionInfo
		var ip interface{}
		if err := rows.Scan(&sess.ID, &sess.UserAgent, &ip, &sess.CreatedAt, &sess.ExpiresAt); err != nil {
			return nil, err
		}
		if ip != nil {
			sess.IPAddress = fmt.Sprintf("%v", ip)
		}
		sessions = append(sessions, sess)
	}

	return sessions, nil
}

/*
Revoke marks a single session as permanently revoked.

Parameters:
  - context: context.Context
  - userID: string (Security: validation of ownership)
  - sessionID: string

Returns:
  - error: Update failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = $2`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.ID, schema.UserSession.UserID)
	_, err := repository.pool.Exec(context, query, sessionID, userID)
	return err
}

/*
RevokeAll terminates every session for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch update failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = FALSE`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.UserID, schema.UserSession.IsRevoked)
	_, err := repository.pool.Exec(context, query, userID)
	return err
}

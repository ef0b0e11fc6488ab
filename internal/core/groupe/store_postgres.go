// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package groupe

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mandresy/fiangonana/internal/platform/apperr"
	"github.com/mandresy/fiangonana/internal/platform/database/schema"
	"github.com/mandresy/fiangonana/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed group store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Group Retrieval

/*
List returns groups ordered by nom.

Description: Uses COUNT(*) OVER() for total metadata. A non-positive limit
fetches every row, which the service layer needs when its accent-folding
filter must see all groups.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Groupe: Groups
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Groupe, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		ORDER BY %s ASC
	`,
		strings.Join(schema.Groupe.Columns(), ", "),
		schema.Groupe.Table, schema.Groupe.Nom,
	)

	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_groupes")
	}
	defer rows.Close()

	var groupes []*Groupe
	var total int
	for rows.Next() {
		grp := &Groupe{}
		err := rows.Scan(&grp.ID, &grp.Nom, &grp.Description, &grp.MembreCount, &grp.CreatedAt, &grp.UpdatedAt, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_groupe")
		}
		groupes = append(groupes, grp)
	}

	return groupes, total, nil
}

/*
FindByID retrieves a single group by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Groupe: Hydrated entity
  - error: ErrNotFound if missing, or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Groupe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`,
		strings.Join(schema.Groupe.Columns(), ", "),
		schema.Groupe.Table, schema.Groupe.ID,
	)

	grp := &Groupe{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&grp.ID, &grp.Nom, &grp.Description, &grp.MembreCount, &grp.CreatedAt, &grp.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_groupe_by_id")
	}
	return grp, nil
}

// # Group Mutation

/*
Create inserts a new group record.

Parameters:
  - context: context.Context
  - groupe: *Groupe

Returns:
  - error: ErrConflict on a duplicate nom, or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, groupe *Groupe) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Groupe.Table, schema.Groupe.ID, schema.Groupe.Nom, schema.Groupe.Description,
		schema.Groupe.CreatedAt, schema.Groupe.UpdatedAt,
		schema.Groupe.CreatedAt, schema.Groupe.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		groupe.ID, groupe.Nom, groupe.Description,
	).Scan(&groupe.CreatedAt, &groupe.UpdatedAt)

	return dberr.Wrap(err, "create_groupe")
}

/*
Update modifies group metadata fields.

Parameters:
  - context: context.Context
  - groupe: *Groupe

Returns:
  - error: ErrNotFound, ErrConflict on a duplicate nom, or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, groupe *Groupe) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Groupe.Table, schema.Groupe.Nom, schema.Groupe.Description,
		schema.Groupe.UpdatedAt, schema.Groupe.ID, schema.Groupe.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, groupe.ID, groupe.Nom, groupe.Description).Scan(&groupe.UpdatedAt)
	return dberr.Wrap(err, "update_groupe")
}

/*
Delete removes exactly one group; ON DELETE CASCADE clears its roster.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound when no row matched, or persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Groupe.Table, schema.Groupe.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_groupe")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Groupe")
	}
	return nil
}

// # Membership Implementation

/*
ListMembres retrieves the roster with denormalized member names.

Parameters:
  - context: context.Context
  - groupeID: string

Returns:
  - []*Membre: Roster rows, oldest affiliation first
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListMembres(context context.Context, groupeID string) ([]*Membre, error) {
	query := fmt.Sprintf(`
		SELECT m.%s, m.%s, a.%s, a.%s, m.%s
		FROM %s m
		JOIN %s a ON m.%s = a.%s
		WHERE m.%s = $1
		ORDER BY m.%s ASC, a.%s ASC
	`,
		schema.AdherentGroupe.GroupeID, schema.AdherentGroupe.AdherentID,
		schema.Adherent.Nom, schema.Adherent.Prenom, schema.AdherentGroupe.DateAdhesion,
		schema.AdherentGroupe.Table, schema.Adherent.Table,
		schema.AdherentGroupe.AdherentID, schema.Adherent.ID,
		schema.AdherentGroupe.GroupeID,
		schema.AdherentGroupe.DateAdhesion, schema.Adherent.Nom,
	)

	rows, err := repository.db.Query(context, query, groupeID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_groupe_membres")
	}
	defer rows.Close()

	var membres []*Membre
	for rows.Next() {
		membre := &Membre{}
		if err := rows.Scan(&membre.GroupeID, &membre.AdherentID, &membre.Nom, &membre.Prenom, &membre.DateAdhesion); err != nil {
			return nil, dberr.Wrap(err, "scan_membre")
		}
		membres = append(membres, membre)
	}

	return membres, nil
}

/*
AddMembre links an adherent to a group and bumps the roster counter.

Description: Executes within an ACID transaction to guarantee atomicity.
1. Inserts a new row into the membership table; a duplicate pair trips the
composite primary key and maps to a 409.
2. Atomically increments the group's membrecount.
Rolls back completely if any stage fails to prevent counter drift.

Parameters:
  - context: context.Context
  - membre: *Membre

Returns:
  - error: ErrConflict, ErrUnprocessable, or transactional failures
*/
func (repository *PostgresRepository) AddMembre(context context.Context, membre *Membre) error {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_add_membre_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Persist the affiliation
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, COALESCE($3, CURRENT_DATE), NOW())
		RETURNING %s
	`,
		schema.AdherentGroupe.Table, strings.Join(schema.AdherentGroupe.Columns(), ", "),
		schema.AdherentGroupe.DateAdhesion,
	)

	var adhesion any
	if !membre.DateAdhesion.IsZero() {
		adhesion = membre.DateAdhesion
	}

	err = transaction.QueryRow(context, insertQuery, membre.AdherentID, membre.GroupeID, adhesion).Scan(&membre.DateAdhesion)
	if err != nil {
		return dberr.Wrap(err, "insert_membre")
	}

	// Step 2: Atomic counter increment
	countQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.Groupe.Table, schema.Groupe.MembreCount, schema.Groupe.MembreCount, schema.Groupe.ID,
	)
	if _, err := transaction.Exec(context, countQuery, membre.GroupeID); err != nil {
		return dberr.Wrap(err, "increment_groupe_membres")
	}

	return transaction.Commit(context)
}

/*
RemoveMembre removes one membership link and decrements the counter accurately.

Description: Wraps removal and counter decrement in a transaction. Only
decrements if a row was actually removed, so duplicate requests cannot drive
the counter negative; GREATEST(0, x) guards legacy drift.

Parameters:
  - context: context.Context
  - groupeID: string
  - adherentID: string

Returns:
  - error: ErrNotFound if the pair is not linked, or transactional failures
*/
func (repository *PostgresRepository) RemoveMembre(context context.Context, groupeID, adherentID string) error {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_remove_membre_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Remove the affiliation
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.AdherentGroupe.Table, schema.AdherentGroupe.GroupeID, schema.AdherentGroupe.AdherentID,
	)
	result, err := transaction.Exec(context, deleteQuery, groupeID, adherentID)
	if err != nil {
		return dberr.Wrap(err, "delete_membre")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Membre")
	}

	// Step 2: Validated counter decrement
	decQuery := fmt.Sprintf(`UPDATE %s SET %s = GREATEST(0, %s - 1) WHERE %s = $1`,
		schema.Groupe.Table, schema.Groupe.MembreCount, schema.Groupe.MembreCount, schema.Groupe.ID,
	)
	if _, err := transaction.Exec(context, decQuery, groupeID); err != nil {
		return dberr.Wrap(err, "decrement_groupe_membres")
	}

	return transaction.Commit(context)
}

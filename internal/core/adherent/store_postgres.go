// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package adherent

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

// NewPostgresRepository constructs a PostgreSQL backed registry store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Registry Retrieval

/*
List returns member records ordered by nom.

Description: Uses COUNT(*) OVER() for total metadata in a single round trip.
A non-positive limit fetches every row, which the service layer needs when
its accent-folding filter must see the whole registry.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Adherent: Member records
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Adherent, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		ORDER BY %s ASC, %s ASC
	`,
		strings.Join(schema.Adherent.Columns(), ", "),
		schema.Adherent.Table, schema.Adherent.Nom, schema.Adherent.Prenom,
	)

	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_adherents")
	}
	defer rows.Close()

	var adherents []*Adherent
	var total int
	for rows.Next() {
		adh := &Adherent{}
		err := rows.Scan(
			&adh.ID, &adh.Nom, &adh.Prenom, &adh.Sexe, &adh.DateNaissance, &adh.Adresse, &adh.Quartier,
			&adh.Telephone, &adh.Email, &adh.FonctionEglise, &adh.DateInscription,
			&adh.CreatedAt, &adh.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_adherent")
		}
		adherents = append(adherents, adh)
	}

	return adherents, total, nil
}

/*
FindByID retrieves a single member record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Adherent: Hydrated entity
  - error: ErrNotFound if missing, or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Adherent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`,
		strings.Join(schema.Adherent.Columns(), ", "),
		schema.Adherent.Table, schema.Adherent.ID,
	)

	adh := &Adherent{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&adh.ID, &adh.Nom, &adh.Prenom, &adh.Sexe, &adh.DateNaissance, &adh.Adresse, &adh.Quartier,
		&adh.Telephone, &adh.Email, &adh.FonctionEglise, &adh.DateInscription,
		&adh.CreatedAt, &adh.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_adherent_by_id")
	}
	return adh, nil
}

// # Registry Mutation

/*
Create inserts a new member record.

Description: dateinscription defaults to the current date when the zero
value is passed, matching a registration made today.

Parameters:
  - context: context.Context
  - adherent: *Adherent

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, adherent *Adherent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, CURRENT_DATE), NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Adherent.Table, strings.Join(schema.Adherent.Columns(), ", "),
		schema.Adherent.DateInscription, schema.Adherent.CreatedAt, schema.Adherent.UpdatedAt,
	)

	var inscription any
	if !adherent.DateInscription.IsZero() {
		inscription = adherent.DateInscription
	}

	err := repository.db.QueryRow(context, query,
		adherent.ID, adherent.Nom, adherent.Prenom, adherent.Sexe, adherent.DateNaissance,
		adherent.Adresse, adherent.Quartier, adherent.Telephone, adherent.Email,
		adherent.FonctionEglise, inscription,
	).Scan(&adherent.DateInscription, &adherent.CreatedAt, &adherent.UpdatedAt)

	return dberr.Wrap(err, "create_adherent")
}

/*
Update replaces all descriptive fields of a member record.

Description: A full-row update mirroring the edit form, which submits every
field on save. The service guarantees a non-zero dateinscription.

Parameters:
  - context: context.Context
  - adherent: *Adherent

Returns:
  - error: ErrNotFound if missing, or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, adherent *Adherent) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9, %s = $10,
			%s = $11, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Adherent.Table,
		schema.Adherent.Nom, schema.Adherent.Prenom, schema.Adherent.Sexe,
		schema.Adherent.DateNaissance, schema.Adherent.Adresse,
		schema.Adherent.Quartier, schema.Adherent.Telephone, schema.Adherent.Email,
		schema.Adherent.FonctionEglise, schema.Adherent.DateInscription,
		schema.Adherent.UpdatedAt, schema.Adherent.ID, schema.Adherent.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		adherent.ID, adherent.Nom, adherent.Prenom, adherent.Sexe, adherent.DateNaissance,
		adherent.Adresse, adherent.Quartier, adherent.Telephone, adherent.Email,
		adherent.FonctionEglise, adherent.DateInscription,
	).Scan(&adherent.UpdatedAt)

	return dberr.Wrap(err, "update_adherent")
}

/*
Delete removes exactly one member record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound when no row matched, or persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Adherent.Table, schema.Adherent.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_adherent")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Adherent")
	}
	return nil
}

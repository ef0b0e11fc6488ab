// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mandresy/fiangonana/internal/platform/database/schema"
	"github.com/mandresy/fiangonana/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed aggregate store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Headline Counts

/*
CountAdherents returns total, men and women counts in one query.

Description: Uses FILTER clauses so sexe never needs a second round trip.
Sexe is mandatory, so hommes + femmes always equals total.
*/
func (repository *PostgresRepository) CountAdherents(context context.Context) (total, hommes, femmes int, err error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE %s = 'M'),
			COUNT(*) FILTER (WHERE %s = 'F')
		FROM %s
	`, schema.Adherent.Sexe, schema.Adherent.Sexe, schema.Adherent.Table)

	err = repository.db.QueryRow(context, query).Scan(&total, &hommes, &femmes)
	if err != nil {
		return 0, 0, 0, dberr.Wrap(err, "count_adherents")
	}
	return total, hommes, femmes, nil
}

// CountGroupes returns the number of groups.
func (repository *PostgresRepository) CountGroupes(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Groupe.Table)

	var count int
	if err := repository.db.QueryRow(context, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_groupes")
	}
	return count, nil
}

// CountAdhesions returns the number of membership links.
func (repository *PostgresRepository) CountAdhesions(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.AdherentGroupe.Table)

	var count int
	if err := repository.db.QueryRow(context, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_adhesions")
	}
	return count, nil
}

// # Group-by Sources

// FetchQuartiers returns every member's quartier value, nulls included.
func (repository *PostgresRepository) FetchQuartiers(context context.Context) ([]*string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, schema.Adherent.Quartier, schema.Adherent.Table)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_quartiers")
	}
	defer rows.Close()

	var quartiers []*string
	for rows.Next() {
		var quartier *string
		if err := rows.Scan(&quartier); err != nil {
			return nil, dberr.Wrap(err, "scan_quartier")
		}
		quartiers = append(quartiers, quartier)
	}
	return quartiers, nil
}

// FetchBirthDates returns every member's birth date, nulls included.
func (repository *PostgresRepository) FetchBirthDates(context context.Context) ([]*time.Time, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, schema.Adherent.DateNaissance, schema.Adherent.Table)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_birth_dates")
	}
	defer rows.Close()

	var dates []*time.Time
	for rows.Next() {
		var date *time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, dberr.Wrap(err, "scan_birth_date")
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// FetchAdhesionGroupes returns one group name per membership link.
func (repository *PostgresRepository) FetchAdhesionGroupes(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT g.%s
		FROM %s m
		JOIN %s g ON m.%s = g.%s
	`,
		schema.Groupe.Nom,
		schema.AdherentGroupe.Table, schema.Groupe.Table,
		schema.AdherentGroupe.GroupeID, schema.Groupe.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_adhesion_groupes")
	}
	defer rows.Close()

	var noms []string
	for rows.Next() {
		var nom string
		if err := rows.Scan(&nom); err != nil {
			return nil, dberr.Wrap(err, "scan_adhesion_groupe")
		}
		noms = append(noms, nom)
	}
	return noms, nil
}

// FetchInscriptionDates returns registration dates on or after the cutoff.
func (repository *PostgresRepository) FetchInscriptionDates(context context.Context, since time.Time) ([]time.Time, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s >= $1`,
		schema.Adherent.DateInscription, schema.Adherent.Table, schema.Adherent.DateInscription,
	)

	rows, err := repository.db.Query(context, query, since)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_inscription_dates")
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, dberr.Wrap(err, "scan_inscription_date")
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// # Account Aggregates

// CountUtilisateursByRole returns active account counts keyed by role.
func (repository *PostgresRepository) CountUtilisateursByRole(context context.Context) (map[string]int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM %s
		WHERE %s = TRUE
		GROUP BY %s
	`,
		schema.Utilisateur.Role, schema.Utilisateur.Table,
		schema.Utilisateur.IsActive, schema.Utilisateur.Role,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "count_utilisateurs_by_role")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_role_count")
		}
		counts[role] = count
	}
	return counts, nil
}

// FetchRecentAdherents returns the most recently registered members.
func (repository *PostgresRepository) FetchRecentAdherents(context context.Context, limit int) ([]RecentAdherent, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1
	`,
		schema.Adherent.ID, schema.Adherent.Nom, schema.Adherent.Prenom, schema.Adherent.DateInscription,
		schema.Adherent.Table,
		schema.Adherent.DateInscription, schema.Adherent.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_recent_adherents")
	}
	defer rows.Close()

	var recents []RecentAdherent
	for rows.Next() {
		var recent RecentAdherent
		if err := rows.Scan(&recent.ID, &recent.Nom, &recent.Prenom, &recent.DateInscription); err != nil {
			return nil, dberr.Wrap(err, "scan_recent_adherent")
		}
		recents = append(recents, recent)
	}
	return recents, nil
}

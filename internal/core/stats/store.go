// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package stats

import (
	"context"
	"time"
)

// # Aggregate Data Access

// Repository defines the read-only queries the aggregates fold over.
//
// Counts come back pre-aggregated from SQL; group-by sources come back as
// raw rows so the fold (and its null handling) stays in one place, the
// [groupcount] utility.
type Repository interface {

	/*
		CountAdherents returns the headline member counts in one round trip.

		Returns:
		  - int: Total members
		  - int: Men
		  - int: Women
		  - error: Retrieval failures
	*/
	CountAdherents(context context.Context) (total, hommes, femmes int, err error)

	/*
		CountGroupes returns the number of groups.
	*/
	CountGroupes(context context.Context) (int, error)

	/*
		CountAdhesions returns the number of membership links.
	*/
	CountAdhesions(context context.Context) (int, error)

	/*
		FetchQuartiers returns every member's quartier value, nulls included.
	*/
	FetchQuartiers(context context.Context) ([]*string, error)

	/*
		FetchBirthDates returns every member's birth date, nulls included.
	*/
	FetchBirthDates(context context.Context) ([]*time.Time, error)

	/*
		FetchAdhesionGroupes returns one group name per membership link.
	*/
	FetchAdhesionGroupes(context context.Context) ([]string, error)

	/*
		FetchInscriptionDates returns registration dates on or after the cutoff.
	*/
	FetchInscriptionDates(context context.Context, since time.Time) ([]time.Time, error)

	/*
		CountUtilisateursByRole returns active account counts keyed by role.
	*/
	CountUtilisateursByRole(context context.Context) (map[string]int, error)

	/*
		FetchRecentAdherents returns the most recently registered members.
	*/
	FetchRecentAdherents(context context.Context, limit int) ([]RecentAdherent, error)
}

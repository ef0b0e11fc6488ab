// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mandresy/fiangonana/internal/platform/sec"
	"github.com/mandresy/fiangonana/pkg/groupcount"
)

// # Service Layer

// Service computes the statistics and dashboard aggregates.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new aggregates [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Statistics Screen

/*
GetStatistiques runs the fixed set of aggregate queries for the statistics
screen.

Description: Each block is an independent query; nothing is cached between
requests. Quartier counts are sorted descending and truncated to the top
five; age buckets always render all six ranges, zero-filled.

Parameters:
  - context: context.Context

Returns:
  - *Statistiques: The complete statistics payload
  - error: The first retrieval failure
*/
func (service *Service) GetStatistiques(context context.Context) (*Statistiques, error) {
	total, hommes, femmes, err := service.repo.CountAdherents(context)
	if err != nil {
		return nil, err
	}

	totalGroupes, err := service.repo.CountGroupes(context)
	if err != nil {
		return nil, err
	}

	parQuartier, err := service.aggregateQuartiers(context)
	if err != nil {
		return nil, err
	}

	parGroupe, err := service.aggregateGroupes(context)
	if err != nil {
		return nil, err
	}

	parAge, err := service.aggregateAges(context)
	if err != nil {
		return nil, err
	}

	return &Statistiques{
		TotalAdherents: total,
		TotalHommes:    hommes,
		TotalFemmes:    femmes,
		TotalGroupes:   totalGroupes,
		ParQuartier:    parQuartier,
		ParGroupe:      parGroupe,
		ParAge:         parAge,
	}, nil
}

// aggregateQuartiers folds quartier values into the top-five descending list.
// Null quartiers are skipped, not bucketed as unknown.
func (service *Service) aggregateQuartiers(context context.Context) ([]groupcount.Entry, error) {
	quartiers, err := service.repo.FetchQuartiers(context)
	if err != nil {
		return nil, err
	}

	counts := groupcount.ByKey(quartiers, func(q *string) (string, bool) {
		if q == nil || *q == "" {
			return "", false
		}
		return *q, true
	})

	return groupcount.Top(groupcount.SortDesc(counts), TopQuartiers), nil
}

// aggregateGroupes counts membership links per group name, descending.
func (service *Service) aggregateGroupes(context context.Context) ([]groupcount.Entry, error) {
	noms, err := service.repo.FetchAdhesionGroupes(context)
	if err != nil {
		return nil, err
	}

	counts := groupcount.ByKey(noms, func(nom string) (string, bool) {
		return nom, true
	})

	return groupcount.SortDesc(counts), nil
}

// aggregateAges buckets members into the six fixed age ranges.
//
// Age is current-year minus birth-year; the off-by-one-year imprecision near
// birthdays is accepted. Members without a birth date are excluded, so the
// bucket sum equals the number of members with one.
func (service *Service) aggregateAges(context context.Context) ([]groupcount.Entry, error) {
	dates, err := service.repo.FetchBirthDates(context)
	if err != nil {
		return nil, err
	}

	currentYear := time.Now().Year()
	counts := groupcount.ByKey(dates, func(d *time.Time) (string, bool) {
		if d == nil {
			return "", false
		}
		return ageBucket(currentYear - d.Year()), true
	})

	return groupcount.OrderBy(counts, AgeBuckets), nil
}

// ageBucket maps an age in years onto its fixed range label.
func ageBucket(age int) string {
	switch {
	case age <= 17:
		return "0-17"
	case age <= 25:
		return "18-25"
	case age <= 35:
		return "26-35"
	case age <= 50:
		return "36-50"
	case age <= 65:
		return "51-65"
	default:
		return "65+"
	}
}

// # Dashboard Selector

/*
GetDashboard assembles the role-shaped dashboard payload.

Description: The switch over the closed role type is exhaustive; an unknown
or missing role falls through to the least-privileged UTILISATEUR shape
rather than erroring.

Parameters:
  - context: context.Context
  - role: sec.UserRole

Returns:
  - *Dashboard: Totals plus the role-specific blocks
  - error: Retrieval failures
*/
func (service *Service) GetDashboard(context context.Context, role sec.UserRole) (*Dashboard, error) {
	total, hommes, femmes, err := service.repo.CountAdherents(context)
	if err != nil {
		return nil, err
	}

	totalGroupes, err := service.repo.CountGroupes(context)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Role: role,
		Totals: Totals{
			TotalAdherents: total,
			TotalHommes:    hommes,
			TotalFemmes:    femmes,
			TotalGroupes:   totalGroupes,
		},
	}

	switch role {
	case sec.RoleAdmin:
		if err := service.fillAdminBlocks(context, dashboard); err != nil {
			return nil, err
		}

	case sec.RoleResponsable:
		if err := service.fillResponsableBlocks(context, dashboard); err != nil {
			return nil, err
		}

	case sec.RoleUtilisateur:
		// Headline totals only.

	default:
		// Unknown roles degrade to the read-only shape.
		dashboard.Role = sec.RoleUtilisateur
	}

	return dashboard, nil
}

// fillAdminBlocks adds account distribution and registration growth.
func (service *Service) fillAdminBlocks(context context.Context, dashboard *Dashboard) error {
	roleCounts, err := service.repo.CountUtilisateursByRole(context)
	if err != nil {
		return err
	}
	dashboard.UtilisateursParRole = groupcount.OrderBy(roleCounts, []string{
		string(sec.RoleAdmin), string(sec.RoleResponsable), string(sec.RoleUtilisateur),
	})

	growth, err := service.aggregateGrowth(context)
	if err != nil {
		return err
	}
	dashboard.CroissanceMensuelle = growth

	return nil
}

// fillResponsableBlocks adds membership totals and the recent registrations feed.
func (service *Service) fillResponsableBlocks(context context.Context, dashboard *Dashboard) error {
	adhesions, err := service.repo.CountAdhesions(context)
	if err != nil {
		return err
	}
	dashboard.TotalAdhesions = adhesions

	recents, err := service.repo.FetchRecentAdherents(context, 5)
	if err != nil {
		return err
	}
	dashboard.RecentAdherents = recents

	return nil
}

// aggregateGrowth folds registration dates into per-month counts over the
// last [GrowthMonths] months, oldest month first, zero-filled.
func (service *Service) aggregateGrowth(context context.Context) ([]groupcount.Entry, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(GrowthMonths - 1), 0)

	dates, err := service.repo.FetchInscriptionDates(context, start)
	if err != nil {
		return nil, err
	}

	counts := groupcount.ByKey(dates, func(d time.Time) (string, bool) {
		return monthKey(d), true
	})

	months := make([]string, 0, GrowthMonths)
	for i := 0; i < GrowthMonths; i++ {
		months = append(months, monthKey(start.AddDate(0, i, 0)))
	}

	return groupcount.OrderBy(counts, months), nil
}

// monthKey formats a date as its aggregation bucket, e.g. "2026-08".
func monthKey(d time.Time) string {
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}

// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
Package stats computes the registry aggregates behind the statistics and
dashboard screens.

Everything here is derived, never persisted: each request re-runs a fixed
set of independent queries and folds the rows with [groupcount]. Nothing is
memoized, matching the console's recompute-on-every-view behavior.

# Aggregates

  - Headline counts: total members, by sex, total groups.
  - Geographic: members per quartier, top five.
  - Organizational: members per group via the membership join.
  - Demographic: six fixed age buckets from birth year.
  - Growth: monthly registrations over the last six months (dashboard).
*/
package stats

import (
	"time"

	"github.com/mandresy/fiangonana/internal/platform/sec"
	"github.com/mandresy/fiangonana/pkg/groupcount"
)

// # Aggregate Shapes

// Statistiques is the full statistics screen payload.
type Statistiques struct {
	TotalAdherents int               `json:"total_adherents"`
	TotalHommes    int               `json:"total_hommes"`
	TotalFemmes    int               `json:"total_femmes"`
	TotalGroupes   int               `json:"total_groupes"`
	ParQuartier    []groupcount.Entry `json:"par_quartier"` // top 5, descending
	ParGroupe      []groupcount.Entry `json:"par_groupe"`   // descending
	ParAge         []groupcount.Entry `json:"par_age"`      // fixed bucket order
}

// Totals is the headline block shared by every dashboard shape.
type Totals struct {
	TotalAdherents int `json:"total_adherents"`
	TotalHommes    int `json:"total_hommes"`
	TotalFemmes    int `json:"total_femmes"`
	TotalGroupes   int `json:"total_groupes"`
}

// RecentAdherent is a condensed registry row for the dashboard feed.
type RecentAdherent struct {
	ID              string    `json:"id"`
	Nom             string    `json:"nom"`
	Prenom          string    `json:"prenom"`
	DateInscription time.Time `json:"date_inscription"`
}

// Dashboard is the role-shaped dashboard payload.
//
// The blocks beyond Totals are populated per role: ADMIN sees account and
// growth figures, RESPONSABLE sees registry activity, UTILISATEUR sees the
// headline totals only.
type Dashboard struct {
	Role   sec.UserRole `json:"role"`
	Totals Totals       `json:"totals"`

	// ADMIN
	UtilisateursParRole []groupcount.Entry `json:"utilisateurs_par_role,omitempty"`
	CroissanceMensuelle []groupcount.Entry `json:"croissance_mensuelle,omitempty"`

	// RESPONSABLE
	TotalAdhesions  int              `json:"total_adhesions,omitempty"`
	RecentAdherents []RecentAdherent `json:"recent_adherents,omitempty"`
}

// # Fixed Buckets

// AgeBuckets is the fixed age-range layout of the demographics chart.
var AgeBuckets = []string{"0-17", "18-25", "26-35", "36-50", "51-65", "65+"}

// TopQuartiers caps the geographic aggregate at the five largest quartiers.
const TopQuartiers = 5

// GrowthMonths is the window of the registration growth aggregate.
const GrowthMonths = 6

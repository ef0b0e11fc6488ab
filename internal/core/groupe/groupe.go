// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
Package groupe manages parish sub-organizations and their membership rosters.

It handles the lifecycle of groups, from creation through edits to removal,
and the many-to-many link between groups and registry members.

# Core Responsibility

  - Organization: Defines the [Groupe] entity and its metadata.
  - Membership: Manages [Membre] associations with their join dates.
  - Integrity: Group names are unique; duplicate roster entries are rejected.

Removing a group cascades its memberships; member records themselves are
never touched by group operations.
*/
package groupe

import "time"

// # Core Entities

// Groupe represents a named parish sub-organization members can join.
type Groupe struct {
	ID          string    `json:"id"` // UUIDv7
	Nom         string    `json:"nom"`
	Description *string   `json:"description,omitempty"`
	MembreCount int       `json:"membre_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Membre represents one adherent's affiliation with a group.
type Membre struct {
	GroupeID     string    `json:"groupe_id"`
	AdherentID   string    `json:"adherent_id"`
	Nom          string    `json:"nom"`    // Denormalized for roster views
	Prenom       string    `json:"prenom"` // Denormalized for roster views
	DateAdhesion time.Time `json:"date_adhesion"`
}

// # Search & Filtering

// Filter holds the group list search term, matched as a case- and
// accent-insensitive substring of nom or description.
type Filter struct {
	Query string `json:"q"`
}

// # Field Identifiers

const (
	FieldNom          = "nom"
	FieldDescription  = "description"
	FieldAdherentID   = "adherent_id"
	FieldDateAdhesion = "date_adhesion"
)

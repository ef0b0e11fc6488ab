// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
Package adherent manages the parish member registry.

It handles the lifecycle of member records, from registration through edits to
removal, and provides the filtered listings the console's registry screen is
built on.

# Core Responsibility

  - Registry: Defines the [Adherent] entity, one-to-one with core.adherent.
  - Filtering: Case- and accent-insensitive substring search over identity fields.
  - Enrollment: Creates minimal records for self-registered accounts.

A member record is civil registry data, distinct from the login identity that
may reference it.
*/
package adherent

import "time"

// # Core Entities

// Adherent represents one parish member record.
//
// Nom, Prenom and Sexe are mandatory; every other descriptive field is
// optional and stays null when unknown.
type Adherent struct {
	ID              string     `json:"id"` // UUIDv7
	Nom             string     `json:"nom"`
	Prenom          string     `json:"prenom"`
	Sexe            string     `json:"sexe"` // 'M' | 'F'
	DateNaissance   *time.Time `json:"date_naissance,omitempty"`
	Adresse         *string    `json:"adresse,omitempty"`
	Quartier        *string    `json:"quartier,omitempty"`
	Telephone       *string    `json:"telephone,omitempty"`
	Email           *string    `json:"email,omitempty"`
	FonctionEglise  *string    `json:"fonction_eglise,omitempty"`
	DateInscription time.Time  `json:"date_inscription"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// # Search & Filtering

// Filter holds the registry list search term.
//
// The term matches as a case- and accent-insensitive substring of nom,
// prenom or quartier; an empty term returns the full list.
type Filter struct {
	Query string `json:"q"`
}

// # Field Identifiers

const (
	FieldNom             = "nom"
	FieldPrenom          = "prenom"
	FieldSexe            = "sexe"
	FieldDateNaissance   = "date_naissance"
	FieldAdresse         = "adresse"
	FieldQuartier        = "quartier"
	FieldTelephone       = "telephone"
	FieldEmail           = "email"
	FieldFonctionEglise  = "fonction_eglise"
	FieldDateInscription = "date_inscription"
)

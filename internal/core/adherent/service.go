// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package adherent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mandresy/fiangonana/internal/platform/validate"
	"github.com/mandresy/fiangonana/pkg/searchnorm"
	"github.com/mandresy/fiangonana/pkg/slice"
	"github.com/mandresy/fiangonana/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the member registry.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new registry [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Registry Reads

/*
ListAdherents retrieves a page of member records with the console filter applied.

Description: Without a term, the repository page is returned as-is. With a
term, every row is fetched and the filter is applied in memory with accent
and case folding, the same comparison the console's search box previously
performed client-side; pagination then slices the filtered rows so the total
and the page agree across the whole registry, not one SQL page.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Adherent: Matching member records
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListAdherents(context context.Context, filter Filter, limit, offset int) ([]*Adherent, int, error) {
	term := strings.TrimSpace(filter.Query)
	if term == "" {
		return service.repo.List(context, limit, offset)
	}

	adherents, _, err := service.repo.List(context, 0, 0)
	if err != nil {
		return nil, 0, err
	}

	matched := slice.Filter(adherents, func(adh *Adherent) bool {
		return searchnorm.Contains(adh.Nom, term) ||
			searchnorm.Contains(adh.Prenom, term) ||
			searchnorm.ContainsAny(term, adh.Quartier)
	})

	return pageOf(matched, limit, offset), len(matched), nil
}

// pageOf slices the filtered rows to the requested page. A non-positive
// limit returns everything from offset onward.
func pageOf(rows []*Adherent, limit, offset int) []*Adherent {
	if offset >= len(rows) {
		return nil
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

/*
GetAdherent retrieves a member record by its UUID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Adherent: Hydrated entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetAdherent(context context.Context, id string) (*Adherent, error) {
	return service.repo.FindByID(context, id)
}

// # Registry Mutation

/*
CreateAdherent registers a new parish member.

Parameters:
  - context: context.Context
  - adherent: *Adherent

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) CreateAdherent(context context.Context, adherent *Adherent) error {
	if err := validateAdherent(adherent); err != nil {
		return err
	}

	adherent.ID = uuid.New()

	if err := service.repo.Create(context, adherent); err != nil {
		return err
	}

	service.logger.Info("adherent_created",
		slog.String("adherent_id", adherent.ID),
		slog.String("nom", adherent.Nom),
	)

	return nil
}

/*
UpdateAdherent replaces all descriptive fields of an existing member record.

Description: A zero DateInscription means the edit form omitted the field;
the stored registration date is carried over instead of being overwritten.

Parameters:
  - context: context.Context
  - adherent: *Adherent

Returns:
  - error: Validation, ErrNotFound, or persistence failures
*/
func (service *Service) UpdateAdherent(context context.Context, adherent *Adherent) error {
	if err := validateAdherent(adherent); err != nil {
		return err
	}

	if adherent.DateInscription.IsZero() {
		existing, err := service.repo.FindByID(context, adherent.ID)
		if err != nil {
			return err
		}
		adherent.DateInscription = existing.DateInscription
	}

	if err := service.repo.Update(context, adherent); err != nil {
		return err
	}

	service.logger.Info("adherent_updated", slog.String("adherent_id", adherent.ID))

	return nil
}

/*
DeleteAdherent removes exactly one member record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound if missing, or persistence failures
*/
func (service *Service) DeleteAdherent(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("adherent_deleted", slog.String("adherent_id", id))

	return nil
}

// # Account Enrollment

/*
Enroll creates a minimal registry record for a self-registered account.

Description: Only the mandatory civil identity is populated; dateinscription
defaults to the current date. The returned id is stored on the account as
its registry link.

Parameters:
  - context: context.Context
  - nom, prenom, sexe: string

Returns:
  - string: The new member record id
  - error: Validation or persistence failures
*/
func (service *Service) Enroll(context context.Context, nom, prenom, sexe string) (string, error) {
	adherent := &Adherent{
		Nom:    nom,
		Prenom: prenom,
		Sexe:   sexe,
	}

	if err := service.CreateAdherent(context, adherent); err != nil {
		return "", err
	}

	return adherent.ID, nil
}

// validateAdherent enforces the registry invariant: nom, prenom and sexe are
// mandatory, everything else is optional but checked for shape when present.
func validateAdherent(adherent *Adherent) error {
	validator := &validate.Validator{}
	validator.Required(FieldNom, adherent.Nom).
		MaxLen(FieldNom, adherent.Nom, 100).
		Required(FieldPrenom, adherent.Prenom).
		MaxLen(FieldPrenom, adherent.Prenom, 100).
		OneOf(FieldSexe, adherent.Sexe, "M", "F")

	if adherent.Email != nil && *adherent.Email != "" {
		validator.Email(FieldEmail, *adherent.Email)
	}

	return validator.Err()
}

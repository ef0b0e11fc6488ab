// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package groupe

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

// Service orchestrates business rules for groups and memberships.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new group [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Group Management

/*
ListGroupes retrieves a page of groups with the console filter applied.

Description: Without a term, the repository page is returned as-is. With a
term, every row is fetched and matched in memory with accent and case
folding over nom and description; pagination then slices the filtered rows
so the total and the page agree across all groups, not one SQL page.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Groupe: Matching groups
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListGroupes(context context.Context, filter Filter, limit, offset int) ([]*Groupe, int, error) {
	term := strings.TrimSpace(filter.Query)
	if term == "" {
		return service.repo.List(context, limit, offset)
	}

	groupes, _, err := service.repo.List(context, 0, 0)
	if err != nil {
		return nil, 0, err
	}

	matched := slice.Filter(groupes, func(grp *Groupe) bool {
		return searchnorm.Contains(grp.Nom, term) || searchnorm.ContainsAny(term, grp.Description)
	})

	return pageOf(matched, limit, offset), len(matched), nil
}

// pageOf slices the filtered rows to the requested page. A non-positive
// limit returns everything from offset onward.
func pageOf(rows []*Groupe, limit, offset int) []*Groupe {
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
GetGroupe retrieves a group by its UUID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Groupe: Hydrated entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetGroupe(context context.Context, id string) (*Groupe, error) {
	return service.repo.FindByID(context, id)
}

/*
CreateGroupe registers a new parish sub-organization.

Parameters:
  - context: context.Context
  - groupe: *Groupe

Returns:
  - error: Validation, ErrConflict on a duplicate nom, or persistence failures
*/
func (service *Service) CreateGroupe(context context.Context, groupe *Groupe) error {
	validator := &validate.Validator{}
	validator.Required(FieldNom, groupe.Nom).MaxLen(FieldNom, groupe.Nom, 150)

	if err := validator.Err(); err != nil {
		return err
	}

	groupe.ID = uuid.New()

	if err := service.repo.Create(context, groupe); err != nil {
		return err
	}

	service.logger.Info("groupe_created",
		slog.String("groupe_id", groupe.ID),
		slog.String("nom", groupe.Nom),
	)

	return nil
}

/*
UpdateGroupe modifies the metadata of an existing group.

Parameters:
  - context: context.Context
  - groupe: *Groupe

Returns:
  - error: Validation, ErrNotFound, ErrConflict, or persistence failures
*/
func (service *Service) UpdateGroupe(context context.Context, groupe *Groupe) error {
	validator := &validate.Validator{}
	validator.Required(FieldNom, groupe.Nom).MaxLen(FieldNom, groupe.Nom, 150)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(context, groupe); err != nil {
		return err
	}

	service.logger.Info("groupe_updated", slog.String("groupe_id", groupe.ID))

	return nil
}

/*
DeleteGroupe removes a group and its memberships.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound if missing, or persistence failures
*/
func (service *Service) DeleteGroupe(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("groupe_deleted", slog.String("groupe_id", id))

	return nil
}

// # Membership Controls

/*
ListMembres returns the roster for a specific group.

Description: The group is resolved first so an unknown id yields a 404
instead of an empty roster.

Parameters:
  - context: context.Context
  - groupeID: string

Returns:
  - []*Membre: Roster rows with denormalized member names
  - error: ErrNotFound or retrieval failures
*/
func (service *Service) ListMembres(context context.Context, groupeID string) ([]*Membre, error) {
	if _, err := service.repo.FindByID(context, groupeID); err != nil {
		return nil, err
	}

	return service.repo.ListMembres(context, groupeID)
}

/*
AddMembre links an adherent to a group's roster.

Parameters:
  - context: context.Context
  - membre: *Membre (DateAdhesion defaults to today when zero)

Returns:
  - error: ErrConflict on a duplicate pair, ErrUnprocessable on unknown
    references, or persistence failures
*/
func (service *Service) AddMembre(context context.Context, membre *Membre) error {
	if err := service.repo.AddMembre(context, membre); err != nil {
		return err
	}

	service.logger.Info("membre_added",
		slog.String("groupe_id", membre.GroupeID),
		slog.String("adherent_id", membre.AdherentID),
	)

	return nil
}

/*
RemoveMembre removes one adherent from a group's roster.

Parameters:
  - context: context.Context
  - groupeID: string (UUID)
  - adherentID: string (UUID)

Returns:
  - error: ErrNotFound if the pair is not linked, or persistence failures
*/
func (service *Service) RemoveMembre(context context.Context, groupeID, adherentID string) error {
	if err := service.repo.RemoveMembre(context, groupeID, adherentID); err != nil {
		return err
	}

	service.logger.Info("membre_removed",
		slog.String("groupe_id", groupeID),
		slog.String("adherent_id", adherentID),
	)

	return nil
}

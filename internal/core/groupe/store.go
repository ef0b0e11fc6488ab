// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package groupe

import "context"

// # Group Data Access

// Repository defines the data access contract for groups and memberships.
type Repository interface {

	/*
		List returns groups ordered by nom, and the total count.

		Parameters:
		  - context: context.Context
		  - limit: int (non-positive fetches every row)
		  - offset: int

		Returns:
		  - []*Groupe: Page of groups
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Groupe, int, error)

	/*
		FindByID retrieves a group by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Groupe: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Groupe, error)

	/*
		Create persists a new group.

		Parameters:
		  - context: context.Context
		  - groupe: *Groupe

		Returns:
		  - error: ErrConflict on a duplicate nom, or persistence failures
	*/
	Create(context context.Context, groupe *Groupe) error

	/*
		Update modifies an existing group's metadata.

		Parameters:
		  - context: context.Context
		  - groupe: *Groupe

		Returns:
		  - error: ErrNotFound, ErrConflict on a duplicate nom, or persistence failures
	*/
	Update(context context.Context, groupe *Groupe) error

	/*
		Delete removes exactly one group; the database cascades its memberships.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: ErrNotFound if missing, or persistence failures
	*/
	Delete(context context.Context, id string) error

	// # Membership Management

	/*
		ListMembres returns the roster of a group, oldest affiliation first.

		Parameters:
		  - context: context.Context
		  - groupeID: string

		Returns:
		  - []*Membre: Roster rows with denormalized member names
		  - error: Retrieval failures
	*/
	ListMembres(context context.Context, groupeID string) ([]*Membre, error)

	/*
		AddMembre links an adherent to a group.

		Parameters:
		  - context: context.Context
		  - membre: *Membre

		Returns:
		  - error: ErrConflict on a duplicate pair, ErrUnprocessable on an
		    unknown adherent or group, or persistence failures
	*/
	AddMembre(context context.Context, membre *Membre) error

	/*
		RemoveMembre removes exactly one membership link.

		Parameters:
		  - context: context.Context
		  - groupeID: string
		  - adherentID: string

		Returns:
		  - error: ErrNotFound if the pair is not linked, or persistence failures
	*/
	RemoveMembre(context context.Context, groupeID, adherentID string) error
}

// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package adherent

import "context"

// # Registry Data Access

// Repository defines the data access contract for member records.
type Repository interface {

	/*
		List returns member records ordered by nom, and the total count.

		Parameters:
		  - context: context.Context
		  - limit: int (non-positive fetches every row)
		  - offset: int

		Returns:
		  - []*Adherent: Page of member records
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Adherent, int, error)

	/*
		FindByID retrieves a member record by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Adherent: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Adherent, error)

	/*
		Create persists a new member record.

		Parameters:
		  - context: context.Context
		  - adherent: *Adherent

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, adherent *Adherent) error

	/*
		Update replaces all descriptive fields of an existing member record.

		Parameters:
		  - context: context.Context
		  - adherent: *Adherent

		Returns:
		  - error: ErrNotFound if missing, or persistence failures
	*/
	Update(context context.Context, adherent *Adherent) error

	/*
		Delete removes exactly one member record.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: ErrNotFound if missing, or persistence failures
	*/
	Delete(context context.Context, id string) error
}

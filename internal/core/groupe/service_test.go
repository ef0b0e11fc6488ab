// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package groupe_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandresy/fiangonana/internal/core/groupe"
	"github.com/mandresy/fiangonana/internal/platform/apperr"
	"github.com/mandresy/fiangonana/pkg/pointer"
)

// # Test Doubles

type membreKey struct {
	groupeID   string
	adherentID string
}

// fakeRepo is an in-memory Repository enforcing nom uniqueness and
// duplicate-pair rejection the way the database constraints do.
type fakeRepo struct {
	groupes []*groupe.Groupe
	membres map[membreKey]*groupe.Membre
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{membres: map[membreKey]*groupe.Membre{}}
}

func (r *fakeRepo) List(_ context.Context, limit, offset int) ([]*groupe.Groupe, int, error) {
	total := len(r.groupes)
	if offset >= total {
		return nil, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return r.groupes[offset:end], total, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*groupe.Groupe, error) {
	for _, grp := range r.groupes {
		if grp.ID == id {
			return grp, nil
		}
	}
	return nil, apperr.NotFound("Groupe")
}

func (r *fakeRepo) Create(_ context.Context, grp *groupe.Groupe) error {
	for _, existing := range r.groupes {
		if existing.Nom == grp.Nom {
			return apperr.Conflict("A record with these values already exists")
		}
	}
	r.groupes = append(r.groupes, grp)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, grp *groupe.Groupe) error {
	for i, existing := range r.groupes {
		if existing.ID == grp.ID {
			grp.MembreCount = existing.MembreCount
			r.groupes[i] = grp
			return nil
		}
	}
	return apperr.NotFound("Groupe")
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	for i, existing := range r.groupes {
		if existing.ID == id {
			r.groupes = append(r.groupes[:i], r.groupes[i+1:]...)
			for key := range r.membres {
				if key.groupeID == id {
					delete(r.membres, key)
				}
			}
			return nil
		}
	}
	return apperr.NotFound("Groupe")
}

func (r *fakeRepo) ListMembres(_ context.Context, groupeID string) ([]*groupe.Membre, error) {
	var membres []*groupe.Membre
	for key, membre := range r.membres {
		if key.groupeID == groupeID {
			membres = append(membres, membre)
		}
	}
	return membres, nil
}

func (r *fakeRepo) AddMembre(_ context.Context, membre *groupe.Membre) error {
	key := membreKey{membre.GroupeID, membre.AdherentID}
	if _, exists := r.membres[key]; exists {
		return apperr.Conflict("A record with these values already exists")
	}
	if membre.DateAdhesion.IsZero() {
		membre.DateAdhesion = time.Now()
	}
	r.membres[key] = membre
	for _, grp := range r.groupes {
		if grp.ID == membre.GroupeID {
			grp.MembreCount++
		}
	}
	return nil
}

func (r *fakeRepo) RemoveMembre(_ context.Context, groupeID, adherentID string) error {
	key := membreKey{groupeID, adherentID}
	if _, exists := r.membres[key]; !exists {
		return apperr.NotFound("Membre")
	}
	delete(r.membres, key)
	for _, grp := range r.groupes {
		if grp.ID == groupeID {
			grp.MembreCount--
		}
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Tests

func TestCreateGroupe_RequiresNom(t *testing.T) {
	service := groupe.NewService(newFakeRepo(), discardLogger())

	err := service.CreateGroupe(context.Background(), &groupe.Groupe{})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestCreateGroupe_DuplicateNomConflicts(t *testing.T) {
	repo := newFakeRepo()
	service := groupe.NewService(repo, discardLogger())

	require.NoError(t, service.CreateGroupe(context.Background(), &groupe.Groupe{Nom: "Chorale"}))

	err := service.CreateGroupe(context.Background(), &groupe.Groupe{Nom: "Chorale"})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Len(t, repo.groupes, 1)
}

func TestListGroupes_FilterOverNomAndDescription(t *testing.T) {
	repo := newFakeRepo()
	repo.groupes = []*groupe.Groupe{
		{ID: "g1", Nom: "Chorale", Description: pointer.To("Chants liturgiques")},
		{ID: "g2", Nom: "Jeunesse", Description: pointer.To("Activités des jeunes")},
	}
	service := groupe.NewService(repo, discardLogger())

	rows, total, err := service.ListGroupes(context.Background(), groupe.Filter{Query: "activites"}, 100, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "g2", rows[0].ID)
	assert.Equal(t, 1, total)
}

func TestListGroupes_FilterSeesBeyondTheFirstPage(t *testing.T) {
	repo := newFakeRepo()
	repo.groupes = []*groupe.Groupe{
		{ID: "g1", Nom: "Accueil"},
		{ID: "g2", Nom: "Chorale"},
		{ID: "g3", Nom: "Jeunesse", Description: pointer.To("Activités des jeunes")},
	}
	service := groupe.NewService(repo, discardLogger())

	// The match sits past page one, so a page-local filter would miss it.
	rows, total, err := service.ListGroupes(context.Background(), groupe.Filter{Query: "jeunesse"}, 2, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "g3", rows[0].ID)
	assert.Equal(t, 1, total)
}

func TestDeleteGroupe_CascadesRoster(t *testing.T) {
	repo := newFakeRepo()
	service := groupe.NewService(repo, discardLogger())

	grp := &groupe.Groupe{Nom: "Chorale"}
	require.NoError(t, service.CreateGroupe(context.Background(), grp))
	require.NoError(t, service.AddMembre(context.Background(), &groupe.Membre{GroupeID: grp.ID, AdherentID: "a1"}))

	require.NoError(t, service.DeleteGroupe(context.Background(), grp.ID))
	assert.Empty(t, repo.groupes)
	assert.Empty(t, repo.membres)

	err := service.DeleteGroupe(context.Background(), grp.ID)
	require.Error(t, err)
}

func TestAddMembre_DuplicatePairConflicts(t *testing.T) {
	repo := newFakeRepo()
	service := groupe.NewService(repo, discardLogger())

	grp := &groupe.Groupe{Nom: "Chorale"}
	require.NoError(t, service.CreateGroupe(context.Background(), grp))

	membre := &groupe.Membre{GroupeID: grp.ID, AdherentID: "a1"}
	require.NoError(t, service.AddMembre(context.Background(), membre))
	assert.False(t, membre.DateAdhesion.IsZero())
	assert.Equal(t, 1, grp.MembreCount)

	err := service.AddMembre(context.Background(), &groupe.Membre{GroupeID: grp.ID, AdherentID: "a1"})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, 1, grp.MembreCount)
}

func TestRemoveMembre_RemovesExactlyOne(t *testing.T) {
	repo := newFakeRepo()
	service := groupe.NewService(repo, discardLogger())

	grp := &groupe.Groupe{Nom: "Chorale"}
	require.NoError(t, service.CreateGroupe(context.Background(), grp))
	require.NoError(t, service.AddMembre(context.Background(), &groupe.Membre{GroupeID: grp.ID, AdherentID: "a1"}))
	require.NoError(t, service.AddMembre(context.Background(), &groupe.Membre{GroupeID: grp.ID, AdherentID: "a2"}))

	require.NoError(t, service.RemoveMembre(context.Background(), grp.ID, "a1"))
	assert.Equal(t, 1, grp.MembreCount)

	err := service.RemoveMembre(context.Background(), grp.ID, "a1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestListMembres_UnknownGroupeIs404(t *testing.T) {
	service := groupe.NewService(newFakeRepo(), discardLogger())

	_, err := service.ListMembres(context.Background(), "missing")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

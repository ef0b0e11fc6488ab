// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package adherent_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandresy/fiangonana/internal/core/adherent"
	"github.com/mandresy/fiangonana/internal/platform/apperr"
	"github.com/mandresy/fiangonana/pkg/pointer"
)

// # Test Doubles

// fakeRepo is an in-memory Repository preserving insertion order.
type fakeRepo struct {
	rows []*adherent.Adherent
}

func (r *fakeRepo) List(_ context.Context, limit, offset int) ([]*adherent.Adherent, int, error) {
	total := len(r.rows)
	if offset >= total {
		return nil, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return r.rows[offset:end], total, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*adherent.Adherent, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, apperr.NotFound("Adherent")
}

func (r *fakeRepo) Create(_ context.Context, adh *adherent.Adherent) error {
	r.rows = append(r.rows, adh)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, adh *adherent.Adherent) error {
	for i, row := range r.rows {
		if row.ID == adh.ID {
			r.rows[i] = adh
			return nil
		}
	}
	return apperr.NotFound("Adherent")
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Adherent")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedRegistry() *fakeRepo {
	return &fakeRepo{rows: []*adherent.Adherent{
		{ID: "a1", Nom: "Rakoto", Prenom: "Jean", Sexe: "M", Quartier: pointer.To("Ambohipo")},
		{ID: "a2", Nom: "Rasoa", Prenom: "Marie", Sexe: "F", Quartier: pointer.To("Ambohipo")},
		{ID: "a3", Nom: "Be", Prenom: "Paul", Sexe: "M", Quartier: pointer.To("Isotry")},
	}}
}

// # Tests

func TestListAdherents_EmptyTermReturnsAll(t *testing.T) {
	service := adherent.NewService(seedRegistry(), discardLogger())

	rows, total, err := service.ListAdherents(context.Background(), adherent.Filter{}, 100, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, 3, total)
}

func TestListAdherents_FilterMatchesNomPrenomQuartier(t *testing.T) {
	service := adherent.NewService(seedRegistry(), discardLogger())

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"by nom substring", "rak", []string{"a1"}},
		{"by prenom", "marie", []string{"a2"}},
		{"by quartier", "isotry", []string{"a3"}},
		{"shared quartier", "ambohipo", []string{"a1", "a2"}},
		{"no match", "antananarivo", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, total, err := service.ListAdherents(context.Background(), adherent.Filter{Query: tt.term}, 100, 0)
			require.NoError(t, err)

			var ids []string
			for _, row := range rows {
				ids = append(ids, row.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), total)
		})
	}
}

func TestListAdherents_FilterFoldsAccentsAndCase(t *testing.T) {
	repo := &fakeRepo{rows: []*adherent.Adherent{
		{ID: "a1", Nom: "Rabe", Prenom: "Jérôme", Sexe: "M", Quartier: pointer.To("Andoharanofotsy")},
	}}
	service := adherent.NewService(repo, discardLogger())

	rows, _, err := service.ListAdherents(context.Background(), adherent.Filter{Query: "JEROME"}, 100, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a1", rows[0].ID)
}

func TestListAdherents_FilterSeesBeyondTheFirstPage(t *testing.T) {
	repo := &fakeRepo{rows: []*adherent.Adherent{
		{ID: "a1", Nom: "Andria", Prenom: "Hery", Sexe: "M"},
		{ID: "a2", Nom: "Bema", Prenom: "Fara", Sexe: "F"},
		{ID: "a3", Nom: "Rakoto", Prenom: "Jean", Sexe: "M"},
	}}
	service := adherent.NewService(repo, discardLogger())

	// The match sits past page one, so a page-local filter would miss it.
	rows, total, err := service.ListAdherents(context.Background(), adherent.Filter{Query: "rakoto"}, 2, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a3", rows[0].ID)
	assert.Equal(t, 1, total)
}

func TestListAdherents_FilteredResultsArePaginated(t *testing.T) {
	repo := &fakeRepo{rows: []*adherent.Adherent{
		{ID: "a1", Nom: "Rakoto", Prenom: "Jean", Sexe: "M"},
		{ID: "a2", Nom: "Rakotobe", Prenom: "Paul", Sexe: "M"},
		{ID: "a3", Nom: "Rakotomalala", Prenom: "Fara", Sexe: "F"},
	}}
	service := adherent.NewService(repo, discardLogger())

	rows, total, err := service.ListAdherents(context.Background(), adherent.Filter{Query: "rakoto"}, 2, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 3, total)

	rows, total, err = service.ListAdherents(context.Background(), adherent.Filter{Query: "rakoto"}, 2, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a3", rows[0].ID)
	assert.Equal(t, 3, total)
}

func TestCreateAdherent_MandatoryFields(t *testing.T) {
	service := adherent.NewService(&fakeRepo{}, discardLogger())

	tests := []struct {
		name  string
		input adherent.Adherent
		field string
	}{
		{"missing nom", adherent.Adherent{Prenom: "Jean", Sexe: "M"}, adherent.FieldNom},
		{"missing prenom", adherent.Adherent{Nom: "Rakoto", Sexe: "M"}, adherent.FieldPrenom},
		{"invalid sexe", adherent.Adherent{Nom: "Rakoto", Prenom: "Jean", Sexe: "X"}, adherent.FieldSexe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			err := service.CreateAdherent(context.Background(), &input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			var fields []string
			for _, detail := range ae.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestCreateAdherent_MinimalRecord(t *testing.T) {
	repo := &fakeRepo{}
	service := adherent.NewService(repo, discardLogger())

	adh := &adherent.Adherent{Nom: "Rakoto", Prenom: "Jean", Sexe: "M"}
	require.NoError(t, service.CreateAdherent(context.Background(), adh))
	assert.NotEmpty(t, adh.ID)
	require.Len(t, repo.rows, 1)
	assert.Nil(t, repo.rows[0].Quartier)
}

func TestUpdateAdherent_ValidatesBeforeWrite(t *testing.T) {
	repo := seedRegistry()
	service := adherent.NewService(repo, discardLogger())

	err := service.UpdateAdherent(context.Background(), &adherent.Adherent{ID: "a1", Nom: "", Prenom: "Jean", Sexe: "M"})
	require.Error(t, err)
	assert.Equal(t, "Rakoto", repo.rows[0].Nom)
}

func TestUpdateAdherent_KeepsDateInscriptionWhenOmitted(t *testing.T) {
	registered := time.Date(2023, 5, 14, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{rows: []*adherent.Adherent{
		{ID: "a1", Nom: "Rakoto", Prenom: "Jean", Sexe: "M", DateInscription: registered},
	}}
	service := adherent.NewService(repo, discardLogger())

	err := service.UpdateAdherent(context.Background(), &adherent.Adherent{ID: "a1", Nom: "Rakoto", Prenom: "Jean Marie", Sexe: "M"})
	require.NoError(t, err)
	assert.Equal(t, "Jean Marie", repo.rows[0].Prenom)
	assert.Equal(t, registered, repo.rows[0].DateInscription)
}

func TestDeleteAdherent_RemovesExactlyOne(t *testing.T) {
	repo := seedRegistry()
	service := adherent.NewService(repo, discardLogger())

	require.NoError(t, service.DeleteAdherent(context.Background(), "a2"))
	assert.Len(t, repo.rows, 2)

	_, err := service.GetAdherent(context.Background(), "a2")
	require.Error(t, err)

	err = service.DeleteAdherent(context.Background(), "a2")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestEnroll_CreatesMinimalLinkedRecord(t *testing.T) {
	repo := &fakeRepo{}
	service := adherent.NewService(repo, discardLogger())

	id, err := service.Enroll(context.Background(), "Rasoa", "Marie", "F")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	adh, err := service.GetAdherent(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Rasoa", adh.Nom)
	assert.Equal(t, "F", adh.Sexe)
	assert.Nil(t, adh.DateNaissance)
}

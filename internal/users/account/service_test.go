// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package account_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandresy/fiangonana/internal/platform/apperr"
	"github.com/mandresy/fiangonana/internal/platform/sec"
	"github.com/mandresy/fiangonana/internal/users/account"
	"github.com/mandresy/fiangonana/internal/users/auth"
	"github.com/mandresy/fiangonana/pkg/pagination"
)

// # Test Doubles

// fakeAccountRepo is an in-memory AccountRepository.
type fakeAccountRepo struct {
	byID map[string]*auth.Utilisateur
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: map[string]*auth.Utilisateur{}}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id string) (*auth.Utilisateur, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("Account")
}

func (r *fakeAccountRepo) List(_ context.Context, role string, _ pagination.Params) ([]auth.Utilisateur, int, error) {
	var users []auth.Utilisateur
	for _, u := range r.byID {
		if role != "" && string(u.Role) != role {
			continue
		}
		users = append(users, *u)
	}
	return users, len(users), nil
}

func (r *fakeAccountRepo) UpdateRole(_ context.Context, userID, role string) error {
	u, ok := r.byID[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	u.Role = sec.UserRole(role)
	return nil
}

func (r *fakeAccountRepo) UpdateAdherentLink(_ context.Context, userID string, adherentID *string) error {
	u, ok := r.byID[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	u.AdherentID = adherentID
	return nil
}

func (r *fakeAccountRepo) Deactivate(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

// fakeAdherentReader resolves registry summaries from a map, or always fails.
type fakeAdherentReader struct {
	byID map[string]*account.AdherentSummary
	err  error
}

func (r *fakeAdherentReader) FindSummary(_ context.Context, id string) (*account.AdherentSummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("Adherent")
}

// fakeSessionRepo counts revocations.
type fakeSessionRepo struct {
	revokedAll []string
	revoked    []string
}

func (r *fakeSessionRepo) FindActiveByUserID(_ context.Context, _ string) ([]account.SessionInfo, error) {
	return nil, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, _, sessionID string) error {
	r.revoked = append(r.revoked, sessionID)
	return nil
}

func (r *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	r.revokedAll = append(r.revokedAll, userID)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// # Tests

func TestGetMe_LinkedAdherent(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u1"] = &auth.Utilisateur{
		ID:         "u1",
		Username:   "rakoto",
		Role:       sec.RoleResponsable,
		AdherentID: strPtr("a1"),
	}
	adherents := &fakeAdherentReader{byID: map[string]*account.AdherentSummary{
		"a1": {ID: "a1", Nom: "Rakoto", Prenom: "Jean", Sexe: "M"},
	}}

	service := account.NewService(repo, adherents, &fakeSessionRepo{}, discardLogger())

	profile, err := service.GetMe(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, profile.Adherent)
	assert.Equal(t, "Rakoto", profile.Adherent.Nom)
	assert.True(t, profile.Permissions["can_manage_adherents"])
	assert.True(t, profile.Permissions["can_view_stats"])
	assert.False(t, profile.Permissions["can_manage_groupes"])
	assert.False(t, profile.Permissions["can_manage_utilisateurs"])
}

func TestGetMe_AdherentLookupFailureDegradesToNil(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u1"] = &auth.Utilisateur{
		ID:         "u1",
		Role:       sec.RoleUtilisateur,
		AdherentID: strPtr("gone"),
	}
	adherents := &fakeAdherentReader{err: errors.New("registry unavailable")}

	service := account.NewService(repo, adherents, &fakeSessionRepo{}, discardLogger())

	profile, err := service.GetMe(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, profile.Adherent)
}

func TestGetMe_MenuPerRole(t *testing.T) {
	adherents := &fakeAdherentReader{}
	sessions := &fakeSessionRepo{}

	paths := func(items []account.MenuItem) []string {
		var out []string
		for _, item := range items {
			out = append(out, item.Path)
		}
		return out
	}

	tests := []struct {
		role sec.UserRole
		want []string
	}{
		{sec.RoleAdmin, []string{"/dashboard", "/adherents", "/groupes", "/statistiques", "/utilisateurs"}},
		{sec.RoleResponsable, []string{"/dashboard", "/adherents", "/groupes", "/statistiques"}},
		{sec.RoleUtilisateur, []string{"/dashboard", "/adherents", "/groupes"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			repo := newFakeAccountRepo()
			repo.byID["u1"] = &auth.Utilisateur{ID: "u1", Role: tt.role}

			service := account.NewService(repo, adherents, sessions, discardLogger())
			profile, err := service.GetMe(context.Background(), "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(profile.Menu))
		})
	}
}

func TestUpdateRole_RejectsUnknownRole(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u2"] = &auth.Utilisateur{ID: "u2", Role: sec.RoleUtilisateur}

	service := account.NewService(repo, &fakeAdherentReader{}, &fakeSessionRepo{}, discardLogger())

	err := service.UpdateRole(context.Background(), "u1", "u2", sec.UserRole("SUPERADMIN"))
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, sec.RoleUtilisateur, repo.byID["u2"].Role)
}

func TestUpdateRole_RejectsSelfChange(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u1"] = &auth.Utilisateur{ID: "u1", Role: sec.RoleAdmin}

	service := account.NewService(repo, &fakeAdherentReader{}, &fakeSessionRepo{}, discardLogger())

	err := service.UpdateRole(context.Background(), "u1", "u1", sec.RoleUtilisateur)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
	assert.Equal(t, sec.RoleAdmin, repo.byID["u1"].Role)
}

func TestUpdateRole_Promotes(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u2"] = &auth.Utilisateur{ID: "u2", Role: sec.RoleUtilisateur}

	service := account.NewService(repo, &fakeAdherentReader{}, &fakeSessionRepo{}, discardLogger())

	err := service.UpdateRole(context.Background(), "u1", "u2", sec.RoleResponsable)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleResponsable, repo.byID["u2"].Role)
}

func TestLinkAdherent_UnknownMember(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u2"] = &auth.Utilisateur{ID: "u2", Role: sec.RoleUtilisateur}

	service := account.NewService(repo, &fakeAdherentReader{}, &fakeSessionRepo{}, discardLogger())

	err := service.LinkAdherent(context.Background(), "u2", strPtr("missing"))
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNPROCESSABLE", ae.Code)
	assert.Nil(t, repo.byID["u2"].AdherentID)
}

func TestLinkAdherent_SetAndClear(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u2"] = &auth.Utilisateur{ID: "u2", Role: sec.RoleUtilisateur}
	adherents := &fakeAdherentReader{byID: map[string]*account.AdherentSummary{
		"a1": {ID: "a1", Nom: "Rasoa", Prenom: "Marie", Sexe: "F"},
	}}

	service := account.NewService(repo, adherents, &fakeSessionRepo{}, discardLogger())

	require.NoError(t, service.LinkAdherent(context.Background(), "u2", strPtr("a1")))
	require.NotNil(t, repo.byID["u2"].AdherentID)
	assert.Equal(t, "a1", *repo.byID["u2"].AdherentID)

	require.NoError(t, service.LinkAdherent(context.Background(), "u2", nil))
	assert.Nil(t, repo.byID["u2"].AdherentID)
}

func TestDeactivateUser_RevokesSessions(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u2"] = &auth.Utilisateur{ID: "u2", Role: sec.RoleUtilisateur}
	sessions := &fakeSessionRepo{}

	service := account.NewService(repo, &fakeAdherentReader{}, sessions, discardLogger())

	err := service.DeactivateUser(context.Background(), "u1", "u2")
	require.NoError(t, err)
	assert.NotContains(t, repo.byID, "u2")
	assert.Equal(t, []string{"u2"}, sessions.revokedAll)
}

func TestListUsers_RejectsUnknownRoleFilter(t *testing.T) {
	service := account.NewService(newFakeAccountRepo(), &fakeAdherentReader{}, &fakeSessionRepo{}, discardLogger())

	_, _, err := service.ListUsers(context.Background(), sec.UserRole("MYSTERY"), pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestDeactivateUser_RejectsSelf(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byID["u1"] = &auth.Utilisateur{ID: "u1", Role: sec.RoleAdmin}

	service := account.NewService(repo, &fakeAdherentReader{}, &fakeSessionRepo{}, discardLogger())

	err := service.DeactivateUser(context.Background(), "u1", "u1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
	assert.Contains(t, repo.byID, "u1")
}

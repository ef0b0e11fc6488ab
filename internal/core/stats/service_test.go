// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package stats_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandresy/fiangonana/internal/core/stats"
	"github.com/mandresy/fiangonana/internal/platform/sec"
	"github.com/mandresy/fiangonana/pkg/groupcount"
	"github.com/mandresy/fiangonana/pkg/pointer"
)

// # Test Doubles

// fakeRepo serves canned aggregate sources.
type fakeRepo struct {
	total, hommes, femmes int
	groupes               int
	adhesions             int
	quartiers             []*string
	birthDates            []*time.Time
	adhesionGroupes       []string
	inscriptions          []time.Time
	roleCounts            map[string]int
	recents               []stats.RecentAdherent
}

func (r *fakeRepo) CountAdherents(_ context.Context) (int, int, int, error) {
	return r.total, r.hommes, r.femmes, nil
}

func (r *fakeRepo) CountGroupes(_ context.Context) (int, error)   { return r.groupes, nil }
func (r *fakeRepo) CountAdhesions(_ context.Context) (int, error) { return r.adhesions, nil }

func (r *fakeRepo) FetchQuartiers(_ context.Context) ([]*string, error) { return r.quartiers, nil }

func (r *fakeRepo) FetchBirthDates(_ context.Context) ([]*time.Time, error) {
	return r.birthDates, nil
}

func (r *fakeRepo) FetchAdhesionGroupes(_ context.Context) ([]string, error) {
	return r.adhesionGroupes, nil
}

func (r *fakeRepo) FetchInscriptionDates(_ context.Context, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	for _, d := range r.inscriptions {
		if !d.Before(since) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

func (r *fakeRepo) CountUtilisateursByRole(_ context.Context) (map[string]int, error) {
	return r.roleCounts, nil
}

func (r *fakeRepo) FetchRecentAdherents(_ context.Context, limit int) ([]stats.RecentAdherent, error) {
	if limit < len(r.recents) {
		return r.recents[:limit], nil
	}
	return r.recents, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// yearsAgo builds a birth date producing an exact year difference from now.
func yearsAgo(years int) *time.Time {
	return pointer.To(time.Now().AddDate(-years, 0, 0))
}

// # Tests

func TestGetStatistiques_WorkedExample(t *testing.T) {
	// Rakoto/Jean/M/Ambohipo, Rasoa/Marie/F/Ambohipo, Be/Paul/M/Isotry.
	repo := &fakeRepo{
		total: 3, hommes: 2, femmes: 1,
		groupes: 1,
		quartiers: []*string{
			pointer.To("Ambohipo"), pointer.To("Ambohipo"), pointer.To("Isotry"),
		},
	}
	service := stats.NewService(repo, discardLogger())

	result, err := service.GetStatistiques(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalAdherents)
	assert.Equal(t, 2, result.TotalHommes)
	assert.Equal(t, 1, result.TotalFemmes)
	assert.Equal(t, result.TotalAdherents, result.TotalHommes+result.TotalFemmes)

	assert.Equal(t, []groupcount.Entry{
		{Key: "Ambohipo", Count: 2},
		{Key: "Isotry", Count: 1},
	}, result.ParQuartier)
}

func TestGetStatistiques_QuartierTopFiveSkipsNulls(t *testing.T) {
	repo := &fakeRepo{quartiers: []*string{
		pointer.To("A"), pointer.To("A"), pointer.To("A"),
		pointer.To("B"), pointer.To("B"),
		pointer.To("C"), pointer.To("D"), pointer.To("E"), pointer.To("F"),
		nil, nil,
	}}
	service := stats.NewService(repo, discardLogger())

	result, err := service.GetStatistiques(context.Background())
	require.NoError(t, err)

	require.Len(t, result.ParQuartier, 5)
	assert.Equal(t, groupcount.Entry{Key: "A", Count: 3}, result.ParQuartier[0])
	assert.Equal(t, groupcount.Entry{Key: "B", Count: 2}, result.ParQuartier[1])
}

func TestGetStatistiques_AgeBucketsSumToKnownBirthDates(t *testing.T) {
	repo := &fakeRepo{birthDates: []*time.Time{
		yearsAgo(5), yearsAgo(17),
		yearsAgo(20),
		yearsAgo(30),
		yearsAgo(40),
		yearsAgo(60),
		yearsAgo(80),
		nil, nil, // members without a birth date are excluded
	}}
	service := stats.NewService(repo, discardLogger())

	result, err := service.GetStatistiques(context.Background())
	require.NoError(t, err)

	require.Len(t, result.ParAge, len(stats.AgeBuckets))

	sum := 0
	byKey := map[string]int{}
	for _, entry := range result.ParAge {
		sum += entry.Count
		byKey[entry.Key] = entry.Count
	}
	assert.Equal(t, 7, sum)
	assert.Equal(t, 2, byKey["0-17"])
	assert.Equal(t, 1, byKey["18-25"])
	assert.Equal(t, 1, byKey["26-35"])
	assert.Equal(t, 1, byKey["36-50"])
	assert.Equal(t, 1, byKey["51-65"])
	assert.Equal(t, 1, byKey["65+"])
}

func TestGetStatistiques_ParGroupeViaMembershipJoin(t *testing.T) {
	repo := &fakeRepo{adhesionGroupes: []string{"Chorale", "Chorale", "Jeunesse"}}
	service := stats.NewService(repo, discardLogger())

	result, err := service.GetStatistiques(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []groupcount.Entry{
		{Key: "Chorale", Count: 2},
		{Key: "Jeunesse", Count: 1},
	}, result.ParGroupe)
}

func TestGetDashboard_AdminShape(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		total: 10, hommes: 6, femmes: 4, groupes: 2,
		roleCounts:   map[string]int{"ADMIN": 1, "UTILISATEUR": 9},
		inscriptions: []time.Time{now, now.AddDate(0, -1, 0)},
	}
	service := stats.NewService(repo, discardLogger())

	dashboard, err := service.GetDashboard(context.Background(), sec.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, sec.RoleAdmin, dashboard.Role)
	require.Len(t, dashboard.UtilisateursParRole, 3)
	assert.Equal(t, groupcount.Entry{Key: "ADMIN", Count: 1}, dashboard.UtilisateursParRole[0])
	assert.Equal(t, groupcount.Entry{Key: "RESPONSABLE", Count: 0}, dashboard.UtilisateursParRole[1])

	require.Len(t, dashboard.CroissanceMensuelle, stats.GrowthMonths)
	assert.Equal(t, 1, dashboard.CroissanceMensuelle[stats.GrowthMonths-1].Count)
}

func TestGetDashboard_ResponsableShape(t *testing.T) {
	repo := &fakeRepo{
		total: 10, hommes: 6, femmes: 4, groupes: 2, adhesions: 7,
		recents: []stats.RecentAdherent{
			{ID: "a1", Nom: "Rakoto", Prenom: "Jean"},
			{ID: "a2", Nom: "Rasoa", Prenom: "Marie"},
		},
	}
	service := stats.NewService(repo, discardLogger())

	dashboard, err := service.GetDashboard(context.Background(), sec.RoleResponsable)
	require.NoError(t, err)

	assert.Equal(t, 7, dashboard.TotalAdhesions)
	assert.Len(t, dashboard.RecentAdherents, 2)
	assert.Empty(t, dashboard.UtilisateursParRole)
}

func TestGetDashboard_UnknownRoleDegradesToUtilisateur(t *testing.T) {
	repo := &fakeRepo{total: 10, hommes: 6, femmes: 4, groupes: 2}
	service := stats.NewService(repo, discardLogger())

	dashboard, err := service.GetDashboard(context.Background(), sec.UserRole("MYSTERY"))
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUtilisateur, dashboard.Role)
	assert.Equal(t, 10, dashboard.Totals.TotalAdherents)
	assert.Empty(t, dashboard.UtilisateursParRole)
	assert.Empty(t, dashboard.RecentAdherents)
}

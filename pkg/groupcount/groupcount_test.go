// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package groupcount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandresy/fiangonana/pkg/groupcount"
)

type row struct {
	nom      string
	sexe     string
	quartier string
}

/*
TestByKey_Quartier folds a small registry into quartier counts.
*/
func TestByKey_Quartier(t *testing.T) {
	rows := []row{
		{nom: "Rakoto", sexe: "M", quartier: "Ambohipo"},
		{nom: "Rasoa", sexe: "F", quartier: "Ambohipo"},
		{nom: "Be", sexe: "M", quartier: "Isotry"},
	}

	counts := groupcount.ByKey(rows, func(r row) (string, bool) {
		return r.quartier, r.quartier != ""
	})

	entries := groupcount.SortDesc(counts)
	require.Len(t, entries, 2)
	assert.Equal(t, groupcount.Entry{Key: "Ambohipo", Count: 2}, entries[0])
	assert.Equal(t, groupcount.Entry{Key: "Isotry", Count: 1}, entries[1])
}

/*
TestByKey_Sexe verifies the sex aggregate on the same registry.
*/
func TestByKey_Sexe(t *testing.T) {
	rows := []row{
		{nom: "Rakoto", sexe: "M"},
		{nom: "Rasoa", sexe: "F"},
		{nom: "Be", sexe: "M"},
	}

	counts := groupcount.ByKey(rows, func(r row) (string, bool) {
		return r.sexe, true
	})

	assert.Equal(t, 2, counts["M"])
	assert.Equal(t, 1, counts["F"])
	assert.Equal(t, len(rows), counts["M"]+counts["F"])
}

/*
TestByKey_SkipsRejectedRows ensures rows rejected by the extractor never count.
*/
func TestByKey_SkipsRejectedRows(t *testing.T) {
	rows := []row{
		{quartier: "Ambohipo"},
		{quartier: ""},
		{quartier: ""},
	}

	counts := groupcount.ByKey(rows, func(r row) (string, bool) {
		return r.quartier, r.quartier != ""
	})

	assert.Len(t, counts, 1)
	assert.Equal(t, 1, counts["Ambohipo"])
}

/*
TestSortDesc_TieBreak checks deterministic ordering on equal counts.
*/
func TestSortDesc_TieBreak(t *testing.T) {
	entries := groupcount.SortDesc(map[string]int{
		"Isotry":   1,
		"Ambohipo": 1,
		"Analakely": 3,
	})

	require.Len(t, entries, 3)
	assert.Equal(t, "Analakely", entries[0].Key)
	assert.Equal(t, "Ambohipo", entries[1].Key)
	assert.Equal(t, "Isotry", entries[2].Key)
}

/*
TestOrderBy emits every bucket of a fixed layout, including empty ones.
*/
func TestOrderBy(t *testing.T) {
	order := []string{"0-17", "18-25", "26-35"}
	entries := groupcount.OrderBy(map[string]int{"18-25": 4}, order)

	require.Len(t, entries, 3)
	assert.Equal(t, groupcount.Entry{Key: "0-17", Count: 0}, entries[0])
	assert.Equal(t, groupcount.Entry{Key: "18-25", Count: 4}, entries[1])
	assert.Equal(t, groupcount.Entry{Key: "26-35", Count: 0}, entries[2])
}

/*
TestTop truncates to the requested leading entries.
*/
func TestTop(t *testing.T) {
	entries := []groupcount.Entry{
		{Key: "Ambohipo", Count: 9},
		{Key: "Isotry", Count: 4},
		{Key: "Analakely", Count: 1},
	}

	assert.Len(t, groupcount.Top(entries, 2), 2)
	assert.Len(t, groupcount.Top(entries, 5), 3)
	assert.Equal(t, entries, groupcount.Top(entries, -1))
}

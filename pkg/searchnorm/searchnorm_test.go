// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package searchnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mandresy/fiangonana/pkg/pointer"
	"github.com/mandresy/fiangonana/pkg/searchnorm"
)

/*
TestFold verifies accent and case folding.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain_ascii", "Rakoto", "rakoto"},
		{"acute_accents", "Père Andrianaivo", "pere andrianaivo"},
		{"mixed_case", "AMBOHIPO", "ambohipo"},
		{"cedilla", "Français", "francais"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, searchnorm.Fold(tt.input))
		})
	}
}

/*
TestContains checks the case- and accent-insensitive substring semantics
used by the adherent and groupe list filters.
*/
func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		matches  bool
	}{
		{"exact", "Rakoto", "Rakoto", true},
		{"case_insensitive", "Rakoto", "rAkOtO", true},
		{"substring", "Rasoanandrasana", "nandra", true},
		{"accent_in_data", "Père", "pere", true},
		{"accent_in_query", "Pere", "père", true},
		{"empty_needle_matches_all", "anything", "", true},
		{"no_match", "Isotry", "Ambohipo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, searchnorm.Contains(tt.haystack, tt.needle))
		})
	}
}

/*
TestContainsAny covers matching across several optional fields.
*/
func TestContainsAny(t *testing.T) {
	quartier := pointer.To("Ambohipo")

	assert.True(t, searchnorm.ContainsAny("ambo", nil, quartier))
	assert.False(t, searchnorm.ContainsAny("isotry", nil, quartier))

	// Empty search term returns the full unfiltered list.
	assert.True(t, searchnorm.ContainsAny("", nil, nil))
}

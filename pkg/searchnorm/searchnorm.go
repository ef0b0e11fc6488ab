// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

// Package searchnorm implements the normalization used by registry list filters.
//
// # Usage
//
// The console filters adherents by typing fragments of a name or quartier.
// Registry data mixes French and Malagasy spellings ("Rasoanandrasana",
// "Andoharanofotsy", "Père"), so a raw strings.Contains comparison misses
// accented variants. This package folds accents and case before matching.
package searchnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes a string for filter comparison.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		// Malformed input falls back to plain lowercasing.
		return strings.ToLower(s)
	}
	return strings.ToLower(result)
}

// Contains reports whether needle occurs in haystack after folding both sides.
// An empty needle matches everything, mirroring an empty search box.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// ContainsAny reports whether needle occurs in any of the given values.
// Nil pointers are skipped, matching optional registry fields.
func ContainsAny(needle string, values ...*string) bool {
	if needle == "" {
		return true
	}
	for _, v := range values {
		if v != nil && Contains(*v, needle) {
			return true
		}
	}
	return false
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
Package groupcount provides a generic "group rows by key, count" fold.

The statistics screens aggregate the same way everywhere: take fetched rows,
bucket them by an extracted key (quartier, groupe name, age range, month),
count per bucket, and render sorted {key, count} pairs. This package is the
single parameterized implementation behind all of those aggregates.
*/
package groupcount

import "sort"

// Entry is one aggregated bucket.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ByKey folds rows into counts keyed by the extractor.
//
// Rows for which keep returns false are skipped entirely (e.g. null
// quartier values). The result order is unspecified; use [SortDesc] or
// [OrderBy] for presentation.
func ByKey[T any](rows []T, key func(T) (string, bool)) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		counts[k]++
	}
	return counts
}

// SortDesc converts a count map into entries sorted by descending count.
// Ties break alphabetically by key so the output is deterministic.
func SortDesc(counts map[string]int) []Entry {
	entries := make([]Entry, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, Entry{Key: k, Count: c})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})

	return entries
}

// OrderBy converts a count map into entries following an explicit key order.
// Keys absent from the map are emitted with a zero count, so fixed bucket
// layouts (age ranges) always render every bucket.
func OrderBy(counts map[string]int, order []string) []Entry {
	entries := make([]Entry, 0, len(order))
	for _, k := range order {
		entries = append(entries, Entry{Key: k, Count: counts[k]})
	}
	return entries
}

// Top returns at most n leading entries.
func Top(entries []Entry, n int) []Entry {
	if n < 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

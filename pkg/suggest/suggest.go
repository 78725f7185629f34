// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package suggest ranks known command paths by edit distance for
// unknown-command recovery.
package suggest

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

const (
	// DefaultLimit is the maximum number of suggestions returned.
	DefaultLimit = 3
	// DefaultDistance is the maximum edit distance considered close
	// enough to offer.
	DefaultDistance = 3
	// longInput is the input length beyond which the quadratic distance
	// computation is replaced by a length-difference heuristic.
	longInput = 256
)

// Suggest returns up to DefaultLimit candidates within DefaultDistance
// of input.
func Suggest(input string, candidates []string) []string {
	return SuggestN(input, candidates, DefaultLimit, DefaultDistance)
}

// SuggestN returns up to limit candidates whose edit distance to input
// is at most maxDist and strictly less than the input length, sorted by
// ascending distance with ties broken by enumeration order.
func SuggestN(input string, candidates []string, limit, maxDist int) []string {
	if input == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		value string
		dist  int
		index int
	}

	var matches []scored
	for i, candidate := range candidates {
		d := distance(input, candidate)
		if d <= maxDist && d < len([]rune(input)) {
			matches = append(matches, scored{value: candidate, dist: d, index: i})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].index < matches[j].index
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	var out []string
	for _, m := range matches {
		out = append(out, m.value)
	}
	return out
}

// distance computes the Levenshtein distance, degrading to the length
// difference for very long inputs to bound the quadratic cost.
func distance(a, b string) int {
	la, lb := len([]rune(a)), len([]rune(b))
	if la > longInput || lb > longInput {
		if la > lb {
			return la - lb
		}
		return lb - la
	}
	return levenshtein.ComputeDistance(a, b)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match scores candidate titles against a query title using
// token-set similarity and applies per-tier acceptance thresholds.
package match

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/pdiddy/bibgen/internal/extract"
)

// Score returns the token-set similarity of two titles in [0, 100].
// Both strings are normalized first (lowercased, punctuation stripped,
// whitespace collapsed), making the score robust to word reordering and
// formatting differences.
func Score(a, b string) int {
	return fuzzy.TokenSetRatio(extract.Normalize(a), extract.Normalize(b))
}

// Best scores every candidate title against query and returns the index
// of the highest-scoring one together with its score. Ties keep the
// first-seen candidate. When the maximum score is below threshold the
// index is -1 but the score is still the maximum seen, so callers can
// report how close the best rejected candidate came. With no candidates
// the result is (-1, -1).
func Best(query string, titles []string, threshold int) (int, int) {
	best, bestScore := -1, -1
	for i, t := range titles {
		if s := Score(query, t); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 || bestScore < threshold {
		return -1, bestScore
	}
	return best, bestScore
}

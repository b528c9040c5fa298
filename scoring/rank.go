// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"slices"

	"github.com/danielhkuo/project-judge/models"
)

// Ranker classifies total scores into badge tiers relative to a set
type Ranker struct {
	sorted []int64 // descending, duplicates kept
}

// NewRanker builds a ranker over every entry's total score. The input slice
// is not modified.
func NewRanker(totals []int64) *Ranker {
	sorted := slices.Clone(totals)
	slices.SortFunc(sorted, func(a, b int64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	return &Ranker{sorted: sorted}
}

// Classify compares score against positions 0, 1, 2 and n-1 of the sorted
// totals, in that order, and returns the first tier that matches. Tiers are
// matched by value at a position, not by distinct rank, so tied scores share
// a tier and a single-entry set is "first". Missing positions never match.
func (r *Ranker) Classify(score int64) models.BadgeTier {
	n := len(r.sorted)
	checks := []struct {
		pos  int
		tier models.BadgeTier
	}{
		{0, models.BadgeFirst},
		{1, models.BadgeSecond},
		{2, models.BadgeThird},
		{n - 1, models.BadgeLast},
	}

	for _, c := range checks {
		if c.pos < 0 || c.pos >= n {
			continue
		}
		if score == r.sorted[c.pos] {
			return c.tier
		}
	}
	return models.BadgeNone
}

// BadgePath returns the badge image path for a score under base
func (r *Ranker) BadgePath(base string, score int64) string {
	return BadgeImage(base, r.Classify(score))
}

// BadgeImage maps a tier to its image file under base
func BadgeImage(base string, tier models.BadgeTier) string {
	if tier == models.BadgeNone || tier == "" {
		return base + "blank.png"
	}
	return base + string(tier) + ".png"
}

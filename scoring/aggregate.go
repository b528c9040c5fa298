// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"github.com/danielhkuo/project-judge/models"
)

// Score is the aggregated result for a single entry
type Score struct {
	Total     int64   `json:"total"`
	SubTotals []int64 `json:"sub_totals"` // aligned to the criteria order
}

// Aggregate computes total and per-criterion sub-totals for every entry from
// the grouped (entry, criterion) sums. Every entry gets a Score, including
// entries nobody voted on. Rows naming an entry or criterion outside the
// inputs are skipped.
func Aggregate(entries []models.Entry, criteria []models.Criterion, rows []models.SubTotalRow) map[int64]Score {
	column := make(map[int64]int, len(criteria))
	for i, c := range criteria {
		column[c.ID] = i
	}

	scores := make(map[int64]Score, len(entries))
	for _, e := range entries {
		scores[e.ID] = Score{SubTotals: make([]int64, len(criteria))}
	}

	for _, row := range rows {
		score, ok := scores[row.EntryID]
		if !ok {
			continue
		}
		i, ok := column[row.CriterionID]
		if !ok {
			continue
		}
		score.SubTotals[i] += row.Sum
		score.Total += row.Sum
		scores[row.EntryID] = score
	}

	return scores
}

// Totals returns the total score of each entry in entry order
func Totals(entries []models.Entry, scores map[int64]Score) []int64 {
	totals := make([]int64, 0, len(entries))
	for _, e := range entries {
		totals = append(totals, scores[e.ID].Total)
	}
	return totals
}

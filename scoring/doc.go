// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring aggregates votes, ranks entries, and validates ballots.

# Aggregation

Aggregate turns the grouped (entry, criterion) sums returned by the store
into one Score per entry:

	scores := scoring.Aggregate(entries, criteria, rows)
	scores[entryID].Total      // sum of every sub-score for the entry
	scores[entryID].SubTotals  // one value per criterion, in criteria order

Total is always the sum of SubTotals. Entries without votes score 0.

# Ranking

NewRanker sorts all totals of a set descending and Classify matches a score
against positions 0, 1, 2 and n-1 of that slice:

	r := scoring.NewRanker(scoring.Totals(entries, scores))
	r.Classify(30) // models.BadgeFirst

Ties share a tier. Missing positions (sets with fewer than four entries)
never match.

# Ballots

ValidateVotes rejects a submission unless every vote names an entry of the
set and scores every criterion within range. It is all-or-nothing.
*/
package scoring

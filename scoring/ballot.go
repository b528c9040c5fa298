// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/project-judge/models"
)

// ErrInvalidVote wraps every reason a ballot is rejected
var ErrInvalidVote = errors.New("invalid vote")

// Range bounds accepted sub-score values, inclusive
type Range struct {
	Min int64
	Max int64
}

// ValidateVotes checks a submission against the set's entries and criteria.
// Every vote must target an entry of the set and carry exactly one value per
// criterion. A single bad vote rejects the whole submission.
func ValidateVotes(entries []models.Entry, criteria []models.Criterion, votes []models.VoteInput, bounds Range) error {
	if len(votes) == 0 {
		return fmt.Errorf("%w: no votes submitted", ErrInvalidVote)
	}
	if len(criteria) == 0 {
		return fmt.Errorf("%w: set has no criteria", ErrInvalidVote)
	}

	known := make(map[int64]bool, len(entries))
	for _, e := range entries {
		known[e.ID] = true
	}

	seen := make(map[int64]bool, len(votes))
	for _, v := range votes {
		if !known[v.EntryID] {
			return fmt.Errorf("%w: entry %d is not part of this set", ErrInvalidVote, v.EntryID)
		}
		if seen[v.EntryID] {
			return fmt.Errorf("%w: entry %d voted more than once", ErrInvalidVote, v.EntryID)
		}
		seen[v.EntryID] = true

		for _, c := range criteria {
			value, ok := v.Scores[c.ID]
			if !ok {
				return fmt.Errorf("%w: entry %d is missing a score for %q", ErrInvalidVote, v.EntryID, c.Name)
			}
			if value < bounds.Min || value > bounds.Max {
				return fmt.Errorf("%w: score for %q must be between %d and %d", ErrInvalidVote, c.Name, bounds.Min, bounds.Max)
			}
		}
		if len(v.Scores) != len(criteria) {
			return fmt.Errorf("%w: entry %d has scores for unknown criteria", ErrInvalidVote, v.EntryID)
		}
	}

	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists project sets, entries, criteria, and votes.

# Reads

The entry table renderer only needs four reads:

	state, err := s.GetSetState(ctx, name)       // lifecycle flags
	criteria, err := s.ListCriteria(ctx, name)   // declaration order
	entries, err := s.ListEntries(ctx, name)     // sort_order, then id
	rows, err := s.SumSubresults(ctx, name)      // one GROUP BY query

Handlers also use GetSet, SetExists, CurrentSetName, ListSets, GetEntry
and CountVotes.

# Writes

CreateSet, UpdateSetState, AddCriterion, AddEntry, UpdateEntry, DeleteEntry,
MoveEntry and InsertVotes. Multi-row writes run in a single transaction;
InsertVotes is all-or-nothing.

# Errors

	ErrSetNotFound    the named set does not exist
	ErrSetExists      CreateSet with a taken name
	ErrEntryNotFound  the entry is not part of the set
	ErrStorage        any driver failure; callers abort, no retries

All errors are wrapped; test with errors.Is.
*/
package store

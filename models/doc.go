// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - ProjectSet: a cohort of entries sharing one voting lifecycle
  - SetState: the votingOpen / resultsVisible / archived flags
  - Criterion: a named scoring dimension, ordered by id
  - Entry: a judged project, ordered by (Order, ID)
  - Vote: one voter's submission for one entry
  - VoteSubresult: one criterion's value inside a vote
  - SubTotalRow: one (entry, criterion) sum from the aggregation query

# Lifecycle

SetState.Phase maps the three flags onto the linear lifecycle:

	not_started → open → published → archived

Any other flag combination reports PhaseInconsistent.

# Request Types

  - CreateSetRequest: name
  - AddCriterionRequest: name
  - EntryRequest: name, url, description, sensitive
  - SubmitVotesRequest: votes (entry_id + scores map[criterion_id]value)

Request structs carry validator tags checked by the handlers.

# Badge Tiers

	BadgeFirst, BadgeSecond, BadgeThird, BadgeLast, BadgeNone
*/
package models

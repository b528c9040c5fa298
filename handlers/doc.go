// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the project-judge API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - SetHandler: Set lifecycle and criteria
  - EntryHandler: Entry editing and display order
  - VoteHandler: Ballot submission
  - TableHandler: Entry table variants (archive, admin, ballot)

Handlers are created via constructor functions that accept *store.SQLStore and Config:

	setHandler := handlers.NewSetHandler(s, cfg)

# Set Lifecycle

Sets move through four phases: not_started → open → published → archived

	POST /sets                  → CreateSet (returns admin_key)
	POST /sets/{name}/criteria  → AddCriterion (not_started only)
	POST /sets/{name}/open      → OpenVoting (needs a criterion and an entry)
	POST /sets/{name}/close     → CloseVoting (results become visible)
	POST /sets/{name}/archive   → ArchiveSet (entries become read-only)

Admin operations require the X-Admin-Key header.

# Voting Flow

	GET  /sets/{name}/ballot → GetBallot (issues X-Voter-Token when absent)
	POST /sets/{name}/votes  → SubmitVotes (JSON or form post)

A submission is validated as a whole and stored in one transaction, so a
ballot is either fully recorded or not at all.

# Errors

writeError maps store and entrytable sentinels to status codes. Anything
unrecognised is logged and answered with 500.
*/
package handlers

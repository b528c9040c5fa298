// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the project-judge API server.

project-judge runs judged project showcases: admins register entries and
scoring criteria in a project set, voters score every entry on a signed
slider per criterion, and once voting closes the entries are ranked by
total score and the top three and the last place receive badges.

# Starting the Server

The server reads a .env file when present, then environment variables,
then CLI flags:

	DATABASE_URL=judge.db ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --admin-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - CONFIG_FILE (-c): YAML file with the same keys plus render options
  - VOTE_RATE, VOTE_BURST: Per-client vote submission limit (default: 1/s, burst 5)
  - TRUST_PROXY: Charge votes to the X-Forwarded-For client (default: false)

# Architecture

  - handlers: HTTP request handlers (sets, entries, votes, tables)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - entrytable: Entry table generation and its variants
  - scoring: Vote validation, aggregation and badge ranking
  - store: SQL persistence
  - models: Domain and request/response types
  - auth: Admin keys, voter tokens, viewer roles
  - db: Connection and schema creation
  - cliparse: Configuration parsing

The judgectl command in cmd/judgectl prints sets and tables from the
same database.
*/
package main

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Backends

Two backends are supported, chosen by DATABASE_TYPE:

  - sqlite (default): modernc.org/sqlite, pure Go
  - postgres: github.com/lib/pq

	conn, err := db.Open(ctx, db.DialectSQLite, "file:judge.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, dialect); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - project_set: set name, creation time, lifecycle flags
  - entry: judged projects with display order (sort_order)
  - criterion: scoring dimensions per set
  - vote: one row per submitted vote
  - vote_subresult: one value per (vote, criterion)

# Relationships

	project_set 1──* entry
	project_set 1──* criterion
	entry 1──* vote
	vote 1──* vote_subresult
	criterion 1──* vote_subresult

All foreign keys use ON DELETE CASCADE. Open turns on foreign key
enforcement for sqlite, which leaves it off by default. Criterion names are
unique per set regardless of case.

# Constraint Errors

IsUniqueViolation and IsForeignKeyViolation classify driver errors from
either backend so the store can map them to its own sentinels.

# Placeholders

Queries are written with ? placeholders. Rebind converts them to $1, $2, ...
for postgres and leaves them alone for sqlite.
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	var schema string
	switch dialect {
	case DialectPostgres:
		schema = postgresSchema
	case DialectSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Project sets
CREATE TABLE IF NOT EXISTS project_set (
    name TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    voting_open BOOLEAN NOT NULL DEFAULT FALSE,
    results_visible BOOLEAN NOT NULL DEFAULT FALSE,
    archived BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_project_set_created_at ON project_set(created_at);

-- Entries
CREATE TABLE IF NOT EXISTS entry (
    id BIGSERIAL PRIMARY KEY,
    set_name TEXT NOT NULL REFERENCES project_set(name) ON DELETE CASCADE,
    name TEXT NOT NULL,
    url TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    sensitive BOOLEAN NOT NULL DEFAULT FALSE,
    sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entry_set_name ON entry(set_name, sort_order, id);

-- Criteria
CREATE TABLE IF NOT EXISTS criterion (
    id BIGSERIAL PRIMARY KEY,
    set_name TEXT NOT NULL REFERENCES project_set(name) ON DELETE CASCADE,
    name TEXT NOT NULL,
    UNIQUE (set_name, name)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_criterion_name_ci ON criterion(set_name, lower(name));

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    entry_id BIGINT NOT NULL REFERENCES entry(id) ON DELETE CASCADE,
    voter_token TEXT NOT NULL,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_entry_id ON vote(entry_id);

-- Vote subresults
CREATE TABLE IF NOT EXISTS vote_subresult (
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    criterion_id BIGINT NOT NULL REFERENCES criterion(id) ON DELETE CASCADE,
    value INTEGER NOT NULL,
    PRIMARY KEY (vote_id, criterion_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_subresult_criterion_id ON vote_subresult(criterion_id);
`

const sqliteSchema = `
-- Project sets
CREATE TABLE IF NOT EXISTS project_set (
    name TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    voting_open BOOLEAN NOT NULL DEFAULT 0,
    results_visible BOOLEAN NOT NULL DEFAULT 0,
    archived BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_project_set_created_at ON project_set(created_at);

-- Entries
CREATE TABLE IF NOT EXISTS entry (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    set_name TEXT NOT NULL REFERENCES project_set(name) ON DELETE CASCADE,
    name TEXT NOT NULL,
    url TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    sensitive BOOLEAN NOT NULL DEFAULT 0,
    sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entry_set_name ON entry(set_name, sort_order, id);

-- Criteria
CREATE TABLE IF NOT EXISTS criterion (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    set_name TEXT NOT NULL REFERENCES project_set(name) ON DELETE CASCADE,
    name TEXT NOT NULL,
    UNIQUE (set_name, name)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_criterion_name_ci ON criterion(set_name, name COLLATE NOCASE);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    entry_id INTEGER NOT NULL REFERENCES entry(id) ON DELETE CASCADE,
    voter_token TEXT NOT NULL,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_entry_id ON vote(entry_id);

-- Vote subresults
CREATE TABLE IF NOT EXISTS vote_subresult (
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    criterion_id INTEGER NOT NULL REFERENCES criterion(id) ON DELETE CASCADE,
    value INTEGER NOT NULL,
    PRIMARY KEY (vote_id, criterion_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_subresult_criterion_id ON vote_subresult(criterion_id);
`

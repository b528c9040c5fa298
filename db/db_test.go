// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite untouched", DialectSQLite, "SELECT * FROM entry WHERE id = ?", "SELECT * FROM entry WHERE id = ?"},
		{"postgres numbered", DialectPostgres, "UPDATE entry SET name = ? WHERE id = ?", "UPDATE entry SET name = $1 WHERE id = $2"},
		{"postgres skips string literals", DialectPostgres, "SELECT '?' FROM entry WHERE id = ?", "SELECT '?' FROM entry WHERE id = $1"},
		{"no placeholders", DialectPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rebind(tt.dialect, tt.query); got != tt.want {
				t.Errorf("Rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"sqlite", DialectSQLite, false},
		{"postgres", DialectPostgres, false},
		{"PostgreSQL", DialectPostgres, false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDialect) {
					t.Fatalf("expected ErrUnknownDialect, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDialect() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDialect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.db")
	conn, err := Open(context.Background(), DialectSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn, DialectSQLite); err != nil {
			t.Fatalf("CreateSchema() pass %d error = %v", i+1, err)
		}
	}

	var count int
	err = conn.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('project_set', 'entry', 'criterion', 'vote', 'vote_subresult')
	`).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count tables: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 tables, got %d", count)
	}
}

func TestCreateSchema_UnknownDialect(t *testing.T) {
	if err := CreateSchema(nil, Dialect("oracle")); !errors.Is(err, ErrUnknownDialect) {
		t.Errorf("expected ErrUnknownDialect, got %v", err)
	}
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"judge.db", "judge.db?_pragma=foreign_keys(1)"},
		{"file:judge.db", "file:judge.db?_pragma=foreign_keys(1)"},
		{"file:judge.db?_pragma=busy_timeout(5000)", "file:judge.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"},
		{"file:judge.db?_pragma=foreign_keys(0)", "file:judge.db?_pragma=foreign_keys(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := withForeignKeys(tt.url); got != tt.want {
				t.Errorf("withForeignKeys() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fk.db")
	conn, err := Open(context.Background(), DialectSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()
	if err := CreateSchema(conn, DialectSQLite); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	var enabled int
	if err := conn.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("expected foreign_keys = 1, got %d", enabled)
	}

	_, err = conn.Exec(`INSERT INTO vote (id, entry_id, voter_token) VALUES ('v1', 42, 'tok')`)
	if err == nil {
		t.Fatal("expected orphan vote insert to fail")
	}
	if !IsForeignKeyViolation(err) {
		t.Errorf("expected a foreign key violation, got %v", err)
	}
	if IsUniqueViolation(err) {
		t.Errorf("foreign key error classified as unique violation: %v", err)
	}
}

func TestConstraintHelpers_OtherErrors(t *testing.T) {
	for _, err := range []error{nil, errors.New("boom"), ErrUnknownDialect} {
		if IsUniqueViolation(err) || IsForeignKeyViolation(err) {
			t.Errorf("%v classified as a constraint violation", err)
		}
	}
}

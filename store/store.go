// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/project-judge/db"
	"github.com/danielhkuo/project-judge/models"
)

var (
	ErrSetNotFound     = errors.New("project set not found")
	ErrSetExists       = errors.New("project set already exists")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrCriterionExists = errors.New("criterion already exists")
	ErrStorage         = errors.New("unrecoverable storage error")
)

// SQLStore reads and writes project sets through database/sql
type SQLStore struct {
	db      *sql.DB
	dialect db.Dialect
}

func New(conn *sql.DB, dialect db.Dialect) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

func (s *SQLStore) q(query string) string {
	return db.Rebind(s.dialect, query)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Sets -----------------------------------------------------------------------

// GetSet returns the named set or ErrSetNotFound
func (s *SQLStore) GetSet(ctx context.Context, name string) (models.ProjectSet, error) {
	var set models.ProjectSet
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT name, created_at, voting_open, results_visible, archived
		FROM project_set
		WHERE name = ?
	`), name).Scan(
		&set.Name, &set.CreatedAt,
		&set.State.VotingOpen, &set.State.ResultsVisible, &set.State.Archived,
	)
	if err == sql.ErrNoRows {
		return models.ProjectSet{}, fmt.Errorf("%w: %q", ErrSetNotFound, name)
	}
	if err != nil {
		return models.ProjectSet{}, storageErr("query set", err)
	}
	return set, nil
}

// GetSetState returns the lifecycle flags of the named set
func (s *SQLStore) GetSetState(ctx context.Context, name string) (models.SetState, error) {
	set, err := s.GetSet(ctx, name)
	if err != nil {
		return models.SetState{}, err
	}
	return set.State, nil
}

// SetExists reports whether a set with this name exists
func (s *SQLStore) SetExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM project_set WHERE name = ?)
	`), name).Scan(&exists)
	if err != nil {
		return false, storageErr("check set exists", err)
	}
	return exists, nil
}

// CurrentSetName returns the most recently created set
func (s *SQLStore) CurrentSetName(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM project_set ORDER BY created_at DESC, name DESC LIMIT 1
	`).Scan(&name)
	if err == sql.ErrNoRows {
		return "", ErrSetNotFound
	}
	if err != nil {
		return "", storageErr("query current set", err)
	}
	return name, nil
}

// ListSets returns every set, newest first
func (s *SQLStore) ListSets(ctx context.Context) ([]models.ProjectSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, created_at, voting_open, results_visible, archived
		FROM project_set
		ORDER BY created_at DESC, name DESC
	`)
	if err != nil {
		return nil, storageErr("query sets", err)
	}
	defer rows.Close()

	sets := []models.ProjectSet{}
	for rows.Next() {
		var set models.ProjectSet
		if err := rows.Scan(
			&set.Name, &set.CreatedAt,
			&set.State.VotingOpen, &set.State.ResultsVisible, &set.State.Archived,
		); err != nil {
			return nil, storageErr("scan set", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate sets", err)
	}
	return sets, nil
}

// CreateSet inserts a new set in the not-started state
func (s *SQLStore) CreateSet(ctx context.Context, name string, createdAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM project_set WHERE name = ?)
	`), name).Scan(&exists)
	if err != nil {
		return storageErr("check set exists", err)
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrSetExists, name)
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO project_set (name, created_at, voting_open, results_visible, archived)
		VALUES (?, ?, ?, ?, ?)
	`), name, createdAt.UTC(), false, false, false)
	if err != nil {
		return storageErr("insert set", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit set", err)
	}
	return nil
}

// UpdateSetState overwrites the lifecycle flags of a set
func (s *SQLStore) UpdateSetState(ctx context.Context, name string, state models.SetState) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE project_set
		SET voting_open = ?, results_visible = ?, archived = ?
		WHERE name = ?
	`), state.VotingOpen, state.ResultsVisible, state.Archived, name)
	if err != nil {
		return storageErr("update set state", err)
	}
	return requireAffected(res, fmt.Errorf("%w: %q", ErrSetNotFound, name))
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("rows affected", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

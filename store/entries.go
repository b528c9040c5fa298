// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/project-judge/models"
)

// Direction moves an entry one place in the display order
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

const entryColumns = `id, set_name, name, url, description, sensitive, sort_order`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner, e *models.Entry) error {
	return row.Scan(&e.ID, &e.SetName, &e.Name, &e.URL, &e.Description, &e.Sensitive, &e.Order)
}

// ListEntries returns the set's entries by display order, ties broken by id
func (s *SQLStore) ListEntries(ctx context.Context, setName string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT `+entryColumns+`
		FROM entry
		WHERE set_name = ?
		ORDER BY sort_order ASC, id ASC
	`), setName)
	if err != nil {
		return nil, storageErr("query entries", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, storageErr("scan entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate entries", err)
	}
	return entries, nil
}

// GetEntry returns one entry of the set or ErrEntryNotFound
func (s *SQLStore) GetEntry(ctx context.Context, setName string, id int64) (models.Entry, error) {
	var e models.Entry
	err := scanEntry(s.db.QueryRowContext(ctx, s.q(`
		SELECT `+entryColumns+`
		FROM entry
		WHERE set_name = ? AND id = ?
	`), setName, id), &e)
	if err == sql.ErrNoRows {
		return models.Entry{}, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	if err != nil {
		return models.Entry{}, storageErr("query entry", err)
	}
	return e, nil
}

// AddEntry appends an entry at the end of the set's display order
func (s *SQLStore) AddEntry(ctx context.Context, e models.Entry) (models.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Entry{}, storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT COALESCE(MAX(sort_order) + 1, 0) FROM entry WHERE set_name = ?
	`), e.SetName).Scan(&next)
	if err != nil {
		return models.Entry{}, storageErr("query next order", err)
	}
	e.Order = next

	err = tx.QueryRowContext(ctx, s.q(`
		INSERT INTO entry (set_name, name, url, description, sensitive, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`), e.SetName, e.Name, e.URL, e.Description, e.Sensitive, e.Order).Scan(&e.ID)
	if err != nil {
		return models.Entry{}, storageErr("insert entry", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Entry{}, storageErr("commit entry", err)
	}
	return e, nil
}

// UpdateEntry rewrites the editable fields of an entry. Order is left alone;
// use MoveEntry for that.
func (s *SQLStore) UpdateEntry(ctx context.Context, e models.Entry) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE entry
		SET name = ?, url = ?, description = ?, sensitive = ?
		WHERE set_name = ? AND id = ?
	`), e.Name, e.URL, e.Description, e.Sensitive, e.SetName, e.ID)
	if err != nil {
		return storageErr("update entry", err)
	}
	return requireAffected(res, fmt.Errorf("%w: %d", ErrEntryNotFound, e.ID))
}

// DeleteEntry removes an entry. Its votes and their subresults go with it
// through ON DELETE CASCADE.
func (s *SQLStore) DeleteEntry(ctx context.Context, setName string, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM entry WHERE set_name = ? AND id = ?
	`), setName, id)
	if err != nil {
		return storageErr("delete entry", err)
	}
	return requireAffected(res, fmt.Errorf("%w: %d", ErrEntryNotFound, id))
}

// MoveEntry swaps an entry with its neighbour in display order. Orders are
// renumbered densely on the way so duplicate sort_order values cannot pin an
// entry in place. Moving the first entry up or the last entry down is a
// no-op.
func (s *SQLStore) MoveEntry(ctx context.Context, setName string, id int64, dir Direction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, s.q(`
		SELECT id, sort_order FROM entry
		WHERE set_name = ?
		ORDER BY sort_order ASC, id ASC
	`), setName)
	if err != nil {
		return storageErr("query order", err)
	}

	type slot struct {
		id    int64
		order int
	}
	var slots []slot
	pos := -1
	for rows.Next() {
		var sl slot
		if err := rows.Scan(&sl.id, &sl.order); err != nil {
			rows.Close()
			return storageErr("scan order", err)
		}
		if sl.id == id {
			pos = len(slots)
		}
		slots = append(slots, sl)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return storageErr("iterate order", err)
	}
	rows.Close()

	if pos < 0 {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	target := pos - 1
	if dir == MoveDown {
		target = pos + 1
	}
	if target < 0 || target >= len(slots) {
		return nil
	}
	slots[pos], slots[target] = slots[target], slots[pos]

	for i, sl := range slots {
		if sl.order == i {
			continue
		}
		if _, err := tx.ExecContext(ctx, s.q(`
			UPDATE entry SET sort_order = ? WHERE id = ?
		`), i, sl.id); err != nil {
			return storageErr("update order", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit order", err)
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/project-judge/db"
	"github.com/danielhkuo/project-judge/models"
)

// ListCriteria returns the set's criteria in declaration order
func (s *SQLStore) ListCriteria(ctx context.Context, setName string) ([]models.Criterion, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, set_name, name
		FROM criterion
		WHERE set_name = ?
		ORDER BY id ASC
	`), setName)
	if err != nil {
		return nil, storageErr("query criteria", err)
	}
	defer rows.Close()

	criteria := []models.Criterion{}
	for rows.Next() {
		var c models.Criterion
		if err := rows.Scan(&c.ID, &c.SetName, &c.Name); err != nil {
			return nil, storageErr("scan criterion", err)
		}
		criteria = append(criteria, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate criteria", err)
	}
	return criteria, nil
}

// AddCriterion appends a criterion to the set. Names are unique per set
// regardless of case.
func (s *SQLStore) AddCriterion(ctx context.Context, setName, name string) (models.Criterion, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Criterion{}, storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM criterion WHERE set_name = ? AND lower(name) = lower(?))
	`), setName, name).Scan(&exists)
	if err != nil {
		return models.Criterion{}, storageErr("check criterion exists", err)
	}
	if exists {
		return models.Criterion{}, fmt.Errorf("%w: %q", ErrCriterionExists, name)
	}

	c := models.Criterion{SetName: setName, Name: name}
	err = tx.QueryRowContext(ctx, s.q(`
		INSERT INTO criterion (set_name, name)
		VALUES (?, ?)
		RETURNING id
	`), setName, name).Scan(&c.ID)
	switch {
	case db.IsUniqueViolation(err):
		// lost a race with a concurrent insert
		return models.Criterion{}, fmt.Errorf("%w: %q", ErrCriterionExists, name)
	case db.IsForeignKeyViolation(err):
		return models.Criterion{}, fmt.Errorf("%w: %q", ErrSetNotFound, setName)
	case err != nil:
		return models.Criterion{}, storageErr("insert criterion", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Criterion{}, storageErr("commit criterion", err)
	}
	return c, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/project-judge/db"
	"github.com/danielhkuo/project-judge/models"
)

var errNoVotes = errors.New("no votes to insert")

// SumSubresults returns one row per (entry, criterion) with the sum of every
// submitted value, for all entries of the set. Entries or criteria without
// votes have no row.
func (s *SQLStore) SumSubresults(ctx context.Context, setName string) ([]models.SubTotalRow, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT v.entry_id, sr.criterion_id, SUM(sr.value)
		FROM vote v
		JOIN vote_subresult sr ON sr.vote_id = v.id
		JOIN entry e ON e.id = v.entry_id
		WHERE e.set_name = ?
		GROUP BY v.entry_id, sr.criterion_id
	`), setName)
	if err != nil {
		return nil, storageErr("sum subresults", err)
	}
	defer rows.Close()

	var result []models.SubTotalRow
	for rows.Next() {
		var row models.SubTotalRow
		if err := rows.Scan(&row.EntryID, &row.CriterionID, &row.Sum); err != nil {
			return nil, storageErr("scan subresult sum", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate subresult sums", err)
	}
	return result, nil
}

// InsertVotes stores every vote with its subresults in one transaction.
// Either all of them are persisted or none.
func (s *SQLStore) InsertVotes(ctx context.Context, votes []models.Vote) error {
	if len(votes) == 0 {
		return storageErr("insert votes", errNoVotes)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	for _, v := range votes {
		_, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO vote (id, entry_id, voter_token, ip_hash, created_at)
			VALUES (?, ?, ?, ?, ?)
		`), v.ID, v.EntryID, v.VoterToken, v.IPHash, v.CreatedAt.UTC())
		if db.IsForeignKeyViolation(err) {
			// entry deleted after the ballot was validated
			return fmt.Errorf("%w: %d", ErrEntryNotFound, v.EntryID)
		}
		if err != nil {
			return storageErr("insert vote", err)
		}

		for _, sr := range v.Subresults {
			_, err := tx.ExecContext(ctx, s.q(`
				INSERT INTO vote_subresult (vote_id, criterion_id, value)
				VALUES (?, ?, ?)
			`), v.ID, sr.CriterionID, sr.Value)
			if err != nil {
				return storageErr("insert subresult", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit votes", err)
	}
	return nil
}

// CountVotes returns how many votes were cast across the set's entries
func (s *SQLStore) CountVotes(ctx context.Context, setName string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT COUNT(*)
		FROM vote v
		JOIN entry e ON e.id = v.entry_id
		WHERE e.set_name = ?
	`), setName).Scan(&count)
	if err != nil {
		return 0, storageErr("count votes", err)
	}
	return count, nil
}

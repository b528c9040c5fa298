// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package entrytable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/danielhkuo/project-judge/models"
	"github.com/danielhkuo/project-judge/scoring"
)

var (
	ErrForbidden    = errors.New("viewer may not see this table")
	ErrVotingClosed = errors.New("voting is not open for this set")
)

// ScoreMode decides whether score columns are part of a table
type ScoreMode int

const (
	ScoresNever ScoreMode = iota
	ScoresWhenVisible
	ScoresAlways
)

// Policy is what a renderer asks of Generate: who may see the table, whether
// sensitive entries are masked and when scores are shown.
type Policy struct {
	Name              string
	MinRole           models.Role
	Redact            bool
	Scores            ScoreMode
	RequireVotingOpen bool
	Marker            string // replaces name, url and description of redacted entries
}

// Viewer identifies who the table is generated for
type Viewer struct {
	Role models.Role
}

// Header is passed to Start once per table
type Header struct {
	Set        string
	State      models.SetState
	Phase      models.Phase
	Criteria   []models.Criterion
	Scores     bool
	EntryCount int
}

// Row is one entry as the renderer should show it. Score fields are nil or
// empty when the header says scores are excluded.
type Row struct {
	Entry     models.Entry
	Index     int
	Redacted  bool
	Total     *int64
	SubTotals []int64
	Badge     models.BadgeTier
}

// RowRenderer turns generated rows into one concrete presentation
type RowRenderer interface {
	Policy() Policy
	Start(h Header) error
	Row(r Row) error
	End() error
}

// Source is the read side of the store the table is built from
type Source interface {
	GetSetState(ctx context.Context, setName string) (models.SetState, error)
	ListCriteria(ctx context.Context, setName string) ([]models.Criterion, error)
	ListEntries(ctx context.Context, setName string) ([]models.Entry, error)
	SumSubresults(ctx context.Context, setName string) ([]models.SubTotalRow, error)
}

func (p Policy) includeScores(state models.SetState) bool {
	switch p.Scores {
	case ScoresAlways:
		return true
	case ScoresWhenVisible:
		return state.ResultsVisible
	default:
		return false
	}
}

func (p Policy) redacts(e models.Entry, viewer Viewer) bool {
	return e.Sensitive && (p.Redact || viewer.Role == models.RolePublic)
}

// Generate builds the table for setName and feeds it to r. Nothing is
// written to r unless every read succeeded.
func Generate(ctx context.Context, src Source, setName string, viewer Viewer, r RowRenderer) (err error) {
	policy := r.Policy()

	ctx, span := otel.Tracer("entrytable").Start(ctx, "entrytable.Generate")
	span.SetAttributes(
		attribute.String("set", setName),
		attribute.String("variant", policy.Name),
		attribute.String("viewer.role", viewer.Role.String()),
	)
	start := time.Now()
	defer func() {
		generateDuration.WithLabelValues(policy.Name, outcome(err)).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if viewer.Role < policy.MinRole {
		return ErrForbidden
	}

	state, err := src.GetSetState(ctx, setName)
	if err != nil {
		return fmt.Errorf("failed to get set state: %w", err)
	}
	if policy.RequireVotingOpen && !state.VotingOpen {
		return ErrVotingClosed
	}

	criteria, err := src.ListCriteria(ctx, setName)
	if err != nil {
		return fmt.Errorf("failed to list criteria: %w", err)
	}
	entries, err := src.ListEntries(ctx, setName)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	withScores := policy.includeScores(state)
	span.SetAttributes(
		attribute.Int("entries", len(entries)),
		attribute.Bool("scores", withScores),
	)

	var (
		scores map[int64]scoring.Score
		ranker *scoring.Ranker
	)
	if withScores {
		rows, err := src.SumSubresults(ctx, setName)
		if err != nil {
			return fmt.Errorf("failed to aggregate votes: %w", err)
		}
		scores = scoring.Aggregate(entries, criteria, rows)
		ranker = scoring.NewRanker(scoring.Totals(entries, scores))
	}

	err = r.Start(Header{
		Set:        setName,
		State:      state,
		Phase:      state.Phase(),
		Criteria:   criteria,
		Scores:     withScores,
		EntryCount: len(entries),
	})
	if err != nil {
		return err
	}

	for i, e := range entries {
		row := Row{Entry: e, Index: i, Badge: models.BadgeNone}
		if policy.redacts(e, viewer) {
			row.Redacted = true
			row.Entry.Name = policy.Marker
			row.Entry.URL = policy.Marker
			row.Entry.Description = policy.Marker
		}
		if withScores {
			score := scores[e.ID]
			total := score.Total
			row.Total = &total
			row.SubTotals = score.SubTotals
			row.Badge = ranker.Classify(total)
		}
		if err := r.Row(row); err != nil {
			return err
		}
	}

	return r.End()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrVotingClosed):
		return "refused"
	default:
		return "error"
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package entrytable

import (
	"github.com/danielhkuo/project-judge/models"
	"github.com/danielhkuo/project-judge/scoring"
)

// Table is the in-memory result of the archive, admin and voting variants.
// Handlers encode it as JSON.
type Table struct {
	Set     string       `json:"set"`
	Phase   models.Phase `json:"phase"`
	Columns []string     `json:"columns"`
	Rows    []TableRow   `json:"rows"`
}

type TableRow struct {
	ID          int64            `json:"id"`
	Order       int              `json:"order"`
	Name        string           `json:"name"`
	URL         string           `json:"url"`
	Description string           `json:"description,omitempty"`
	Redacted    bool             `json:"redacted,omitempty"`
	Badge       models.BadgeTier `json:"badge,omitempty"`
	BadgePath   string           `json:"badge_path,omitempty"`
	TotalScore  *int64           `json:"total_score,omitempty"`
	SubTotals   []int64          `json:"sub_totals,omitempty"`
	Actions     []Action         `json:"actions,omitempty"`
	Inputs      []SliderInput    `json:"inputs,omitempty"`
}

type Action struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

func criteriaNames(criteria []models.Criterion) []string {
	names := make([]string, len(criteria))
	for i, c := range criteria {
		names[i] = c.Name
	}
	return names
}

func newTableRow(r Row, opts Options, scores bool) TableRow {
	tr := TableRow{
		ID:          r.Entry.ID,
		Order:       r.Entry.Order,
		Name:        r.Entry.Name,
		URL:         r.Entry.URL,
		Description: r.Entry.Description,
		Redacted:    r.Redacted,
	}
	if scores {
		tr.Badge = r.Badge
		tr.BadgePath = scoring.BadgeImage(opts.BadgePath, r.Badge)
		tr.TotalScore = r.Total
		tr.SubTotals = r.SubTotals
	}
	return tr
}

// ArchiveTable is the public results table. Sensitive entries are always
// redacted and scores appear once results are visible.
type ArchiveTable struct {
	opts   Options
	scores bool
	table  Table
}

func NewArchiveTable(opts Options) *ArchiveTable {
	return &ArchiveTable{opts: opts}
}

func (a *ArchiveTable) Policy() Policy {
	return Policy{
		Name:    "archive",
		MinRole: models.RolePublic,
		Redact:  true,
		Scores:  ScoresWhenVisible,
		Marker:  a.opts.RedactionMarker,
	}
}

func (a *ArchiveTable) Start(h Header) error {
	a.scores = h.Scores
	a.table = Table{Set: h.Set, Phase: h.Phase, Rows: []TableRow{}}
	if h.Scores {
		a.table.Columns = append([]string{"Badge", "Name", "URL", "Total Score"}, criteriaNames(h.Criteria)...)
	} else {
		a.table.Columns = []string{"Name", "URL"}
	}
	return nil
}

func (a *ArchiveTable) Row(r Row) error {
	a.table.Rows = append(a.table.Rows, newTableRow(r, a.opts, a.scores))
	return nil
}

func (a *ArchiveTable) End() error { return nil }

// Table returns the rows collected by the last Generate call
func (a *ArchiveTable) Table() Table { return a.table }

// AdminTable shows everything, scores included, and the edit actions of
// every entry.
type AdminTable struct {
	opts  Options
	count int
	table Table
}

func NewAdminTable(opts Options) *AdminTable {
	return &AdminTable{opts: opts}
}

func (a *AdminTable) Policy() Policy {
	return Policy{
		Name:    "admin",
		MinRole: models.RoleAdmin,
		Redact:  false,
		Scores:  ScoresAlways,
		Marker:  a.opts.RedactionMarker,
	}
}

func (a *AdminTable) Start(h Header) error {
	a.count = h.EntryCount
	a.table = Table{Set: h.Set, Phase: h.Phase, Rows: []TableRow{}}
	a.table.Columns = append([]string{"Order", "Badge", "Name", "URL", "Total Score"}, criteriaNames(h.Criteria)...)
	a.table.Columns = append(a.table.Columns, "Actions")
	return nil
}

func (a *AdminTable) Row(r Row) error {
	tr := newTableRow(r, a.opts, true)
	for _, t := range a.opts.Actions {
		// No moving past either end
		if t.Name == "move_up" && r.Index == 0 {
			continue
		}
		if t.Name == "move_down" && r.Index == a.count-1 {
			continue
		}
		tr.Actions = append(tr.Actions, Action{
			Name:   t.Name,
			Method: t.Method,
			Path:   t.expand(a.table.Set, r),
		})
	}
	a.table.Rows = append(a.table.Rows, tr)
	return nil
}

func (a *AdminTable) End() error { return nil }

func (a *AdminTable) Table() Table { return a.table }

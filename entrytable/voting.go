// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package entrytable

import (
	"strconv"
	"strings"

	"github.com/danielhkuo/project-judge/models"
)

// SliderInput is one score input of the ballot
type SliderInput struct {
	Field       string `json:"field"`
	CriterionID int64  `json:"criterion_id"`
	Criterion   string `json:"criterion"`
	Min         int64  `json:"min"`
	Max         int64  `json:"max"`
	Default     int64  `json:"default"`
}

// VotingForm is the ballot: every entry with one slider per criterion and
// no scores. Generate refuses it while voting is closed.
type VotingForm struct {
	opts     Options
	criteria []models.Criterion
	table    Table
}

func NewVotingForm(opts Options) *VotingForm {
	return &VotingForm{opts: opts}
}

func (v *VotingForm) Policy() Policy {
	return Policy{
		Name:              "voting",
		MinRole:           models.RoleVoter,
		Redact:            false,
		Scores:            ScoresNever,
		RequireVotingOpen: true,
		Marker:            v.opts.RedactionMarker,
	}
}

func (v *VotingForm) Start(h Header) error {
	v.criteria = h.Criteria
	v.table = Table{Set: h.Set, Phase: h.Phase, Rows: []TableRow{}}
	v.table.Columns = append([]string{"Name", "URL"}, criteriaNames(h.Criteria)...)
	return nil
}

func (v *VotingForm) Row(r Row) error {
	tr := newTableRow(r, v.opts, false)
	tr.Inputs = make([]SliderInput, 0, len(v.criteria))
	for _, c := range v.criteria {
		tr.Inputs = append(tr.Inputs, SliderInput{
			Field:       FieldName(v.opts.FieldPrefix, r.Entry.ID, c.ID),
			CriterionID: c.ID,
			Criterion:   c.Name,
			Min:         v.opts.SliderMin,
			Max:         v.opts.SliderMax,
			Default:     v.opts.SliderDefault,
		})
	}
	v.table.Rows = append(v.table.Rows, tr)
	return nil
}

func (v *VotingForm) End() error { return nil }

func (v *VotingForm) Table() Table { return v.table }

// FieldName is the form field of one slider: <prefix><entryID>.<criterionID>
func FieldName(prefix string, entryID, criterionID int64) string {
	return prefix + strconv.FormatInt(entryID, 10) + "." + strconv.FormatInt(criterionID, 10)
}

// ParseFieldName reverses FieldName. ok is false for any other field.
func ParseFieldName(prefix, field string) (entryID, criterionID int64, ok bool) {
	rest, found := strings.CutPrefix(field, prefix)
	if !found {
		return 0, 0, false
	}
	e, c, found := strings.Cut(rest, ".")
	if !found {
		return 0, 0, false
	}
	entryID, err := strconv.ParseInt(e, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	criterionID, err = strconv.ParseInt(c, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return entryID, criterionID, true
}

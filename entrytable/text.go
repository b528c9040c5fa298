// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package entrytable

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// TextTable writes an aligned plain-text table, for the CLI. With admin set
// it follows the admin policy, otherwise the archive policy.
type TextTable struct {
	opts   Options
	admin  bool
	scores bool
	tw     *tabwriter.Writer
}

func NewTextTable(w io.Writer, opts Options, admin bool) *TextTable {
	return &TextTable{
		opts:  opts,
		admin: admin,
		tw:    tabwriter.NewWriter(w, 0, 4, 2, ' ', 0),
	}
}

func (t *TextTable) Policy() Policy {
	if t.admin {
		p := NewAdminTable(t.opts).Policy()
		p.Name = "text-admin"
		return p
	}
	p := NewArchiveTable(t.opts).Policy()
	p.Name = "text"
	return p
}

func (t *TextTable) Start(h Header) error {
	t.scores = h.Scores
	fmt.Fprintf(t.tw, "# %s (%s)\n", h.Set, h.Phase)

	var cols []string
	if t.admin {
		cols = append(cols, "#")
	}
	if h.Scores {
		cols = append(cols, "BADGE")
	}
	cols = append(cols, "NAME", "URL")
	if h.Scores {
		cols = append(cols, "TOTAL")
		for _, name := range criteriaNames(h.Criteria) {
			cols = append(cols, strings.ToUpper(name))
		}
	}
	_, err := fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
	return err
}

func (t *TextTable) Row(r Row) error {
	var cells []string
	if t.admin {
		cells = append(cells, strconv.Itoa(r.Entry.Order))
	}
	if t.scores {
		cells = append(cells, string(r.Badge))
	}
	cells = append(cells, r.Entry.Name, r.Entry.URL)
	if t.scores {
		total := int64(0)
		if r.Total != nil {
			total = *r.Total
		}
		cells = append(cells, strconv.FormatInt(total, 10))
		for _, v := range r.SubTotals {
			cells = append(cells, strconv.FormatInt(v, 10))
		}
	}
	_, err := fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
	return err
}

func (t *TextTable) End() error {
	return t.tw.Flush()
}

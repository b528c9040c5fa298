// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package entrytable builds the entry table of a project set.

# Generate

Generate is the one code path behind every table. It reads the set state,
checks the viewer against the renderer's Policy, loads criteria and entries,
aggregates and ranks scores when the policy allows them and then hands each
entry to a RowRenderer:

	t := entrytable.NewArchiveTable(opts)
	err := entrytable.Generate(ctx, store, "spring", entrytable.Viewer{Role: models.RolePublic}, t)
	json.NewEncoder(w).Encode(t.Table())

The vote aggregation query is only issued when scores are part of the table.

# Variants

	ArchiveTable  public, redacts sensitive entries, scores once results are visible
	AdminTable    admin only, scores always, move/edit/delete actions per entry
	VotingForm    voters only while voting is open, one slider per criterion
	TextTable     aligned text for judgectl

# Redaction

A sensitive entry is redacted when the policy asks for it or the viewer is
public. Name, URL and description are replaced by Options.RedactionMarker.

# Errors

	ErrForbidden     viewer role below Policy.MinRole
	ErrVotingClosed  voting form requested while voting is not open

Store errors are wrapped and returned as is; nothing is rendered after a
failed read.
*/
package entrytable

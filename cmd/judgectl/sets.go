// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func setsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List project sets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, conn, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			sets, err := s.ListSets(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPHASE\tCREATED")
			for _, set := range sets {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", set.Name, set.State.Phase(), humanize.Time(set.CreatedAt))
			}
			return tw.Flush()
		},
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"github.com/spf13/cobra"

	"github.com/danielhkuo/project-judge/entrytable"
	"github.com/danielhkuo/project-judge/models"
)

func tableCommand() *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "table <set>",
		Short: "Print the entry table of a set",
		Long: "Print the entry table of a set. By default this is the public archive view; " +
			"--admin shows real names and scores regardless of phase.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := configFromContext(cmd.Context())
			s, conn, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			// Local database access is already admin access
			viewer := entrytable.Viewer{Role: models.RolePublic}
			if admin {
				viewer.Role = models.RoleAdmin
			}

			out := entrytable.NewTextTable(cmd.OutOrStdout(), entrytable.NewOptions(cfg.Render), admin)
			return entrytable.Generate(cmd.Context(), s, args[0], viewer, out)
		},
	}

	cmd.Flags().BoolVar(&admin, "admin", false, "show the admin view")
	return cmd
}

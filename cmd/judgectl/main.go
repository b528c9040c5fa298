// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command judgectl inspects a project-judge database from the terminal.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/db"
	"github.com/danielhkuo/project-judge/store"
)

const programName = "judgectl"

type globalFlags struct {
	configFile   string
	databaseURL  string
	databaseType string
	debug        bool
}

type configKey struct{}

func configFromContext(ctx context.Context) (cliparse.Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(cliparse.Config)
	return cfg, ok
}

// openStore connects to the configured database. The caller closes the
// returned connection.
func openStore(ctx context.Context) (*store.SQLStore, *sql.DB, error) {
	cfg, ok := configFromContext(ctx)
	if !ok {
		return nil, nil, errors.New("no config found in context")
	}
	dialect := cfg.Dialect()
	conn, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store.New(conn, dialect), conn, nil
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Inspect project sets and entry tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&flags.databaseURL, "database-url", "d", "", "database URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&flags.databaseType, "database-type", "t", "", "sqlite or postgres (overrides DATABASE_TYPE)")
	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if flags.debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		if _, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...any) {
			slog.Debug(fmt.Sprintf(format, v...), "component", programName)
		})); err != nil {
			slog.Debug("could not set GOMAXPROCS", "error", err)
		}

		cfg, err := cliparse.Load(flags.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("database-url") {
			cfg.DatabaseURL = flags.databaseURL
		}
		if cmd.Flags().Changed("database-type") {
			cfg.DatabaseType = flags.databaseType
		}
		// The admin key salt is a server secret and not needed here
		if err := cfg.Validate(); err != nil {
			return err
		}

		slog.Debug("config loaded", "type", cfg.DatabaseType, "config_file", flags.configFile)
		cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
		return nil
	}

	rootCmd.AddCommand(setsCommand())
	rootCmd.AddCommand(tableCommand())
	return rootCmd
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "could not load .env: %v\n", err)
	}

	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "component", programName, "error", err)
		os.Exit(1)
	}
}

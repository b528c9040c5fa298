package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/db"
	"github.com/danielhkuo/project-judge/middleware"
	"github.com/danielhkuo/project-judge/router"
	"github.com/danielhkuo/project-judge/store"
)

func main() {
	// A missing .env is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", "error", err)
	}

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...any) {
		slog.Info(fmt.Sprintf(format, v...))
	})); err != nil {
		slog.Warn("could not set GOMAXPROCS", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect and verify
	dialect := cfg.Dialect()
	dbConn, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database unavailable", "error", err, "type", dialect)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, dialect); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", dialect)

	mux := router.NewRouter(store.New(dbConn, dialect), cfg)

	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              cfg.Addr(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	<-drained
	slog.Info("Server closed")
}

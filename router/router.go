// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/handlers"
	"github.com/danielhkuo/project-judge/middleware"
	"github.com/danielhkuo/project-judge/store"
)

func NewRouter(s *store.SQLStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	setHandler := handlers.NewSetHandler(s, cfg)
	entryHandler := handlers.NewEntryHandler(s, cfg)
	voteHandler := handlers.NewVoteHandler(s, cfg)
	tableHandler := handlers.NewTableHandler(s, cfg)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(pattern, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Set lifecycle
	handle("GET /sets", setHandler.ListSets)
	handle("GET /sets/current", setHandler.GetCurrentSet)
	handle("POST /sets", setHandler.CreateSet)
	handle("GET /sets/{name}", setHandler.GetSet)
	handle("POST /sets/{name}/open", setHandler.OpenVoting)
	handle("POST /sets/{name}/close", setHandler.CloseVoting)
	handle("POST /sets/{name}/archive", setHandler.ArchiveSet)
	handle("POST /sets/{name}/criteria", setHandler.AddCriterion)

	// Entry management (admin)
	handle("POST /sets/{name}/entries", entryHandler.AddEntry)
	handle("PUT /sets/{name}/entries/{id}", entryHandler.UpdateEntry)
	handle("DELETE /sets/{name}/entries/{id}", entryHandler.DeleteEntry)
	handle("POST /sets/{name}/entries/{id}/move-up", entryHandler.MoveUp)
	handle("POST /sets/{name}/entries/{id}/move-down", entryHandler.MoveDown)

	// Entry tables
	handle("GET /sets/{name}/table", tableHandler.GetTable)
	handle("GET /sets/{name}/admin", tableHandler.GetAdminTable)
	handle("GET /sets/{name}/ballot", tableHandler.GetBallot)

	// Voting
	votes := voteHandler.SubmitVotes
	if cfg.VoteRate > 0 {
		limiter := middleware.NewClientLimiter(rate.Limit(cfg.VoteRate), cfg.VoteBurst)
		if cfg.TrustProxy {
			limiter.TrustForwarded()
		}
		votes = middleware.WithRateLimit("POST /sets/{name}/votes", limiter, votes)
	}
	handle("POST /sets/{name}/votes", votes)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("project-judge API v1"))
	})

	return mux
}

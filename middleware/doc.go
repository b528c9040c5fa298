// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware wraps project-judge handlers with logging, metrics and
CORS, and holds the JSON reply helpers every handler uses.

# Wrapping

The router applies both wrappers to every API route, keyed by its pattern:

	mux.HandleFunc(p, middleware.WithLogging(middleware.WithMetrics(p, h)))

WithLogging writes a "request started" and a "request completed" slog line,
the second carrying the status and duration_ms. WithMetrics feeds
judge_http_requests_total{route,status} and
judge_http_request_duration_seconds{route}. The vote handler adds to
VotesAccepted (judge_votes_accepted_total{set}) after a ballot commits.

# CORS

	server := http.Server{Handler: middleware.CORS(mux)}

The origin is reflected, X-Admin-Key and X-Voter-Token are accepted, and
X-Voter-Token is exposed so a browser can read the token issued with a
ballot. Preflight requests never reach the mux.

# Replies

	middleware.JSONResponse(w, http.StatusCreated, resp)
	middleware.ErrorResponse(w, http.StatusConflict, "Voting is not open")

ErrorResponse fills models.ErrorResponse with the status text and message.
ParseJSONBody decodes and closes the request body.

# Client Address

GetClientIP picks the first X-Forwarded-For hop, then X-Real-IP, then the
RemoteAddr host. Its result is hashed with auth.HashIP before storage and is
never logged. RemoteHost ignores the headers and returns the connection's
own host.

# Rate Limiting

	limiter := middleware.NewClientLimiter(rate.Limit(cfg.VoteRate), cfg.VoteBurst)
	votes := middleware.WithRateLimit("POST /sets/{name}/votes", limiter, h)

Each client gets its own golang.org/x/time/rate bucket, keyed by RemoteHost
since forwarding headers are client controlled. Behind a proxy that
overwrites X-Forwarded-For, TrustForwarded keys by GetClientIP instead. A
rejected request gets 429 with Retry-After and increments
judge_http_rate_limited_total{route}. When the table is full, idle buckets
are dropped first, then the least recently seen one.
*/
package middleware

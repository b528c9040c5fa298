// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the project-judge API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(s, cfg)

Every API route is wrapped in middleware.WithLogging and
middleware.WithMetrics, labelled with its mux pattern.

# Endpoints

Operational:

	GET /health
	GET /metrics - Prometheus exposition

Sets:

	GET  /sets                 - List sets, newest first
	GET  /sets/current         - Newest set
	POST /sets                 - Create set (returns admin_key)
	GET  /sets/{name}          - Set state and phase
	POST /sets/{name}/open     - Open voting (X-Admin-Key)
	POST /sets/{name}/close    - Close voting, publish results (X-Admin-Key)
	POST /sets/{name}/archive  - Archive (X-Admin-Key)
	POST /sets/{name}/criteria - Add criterion (X-Admin-Key)

Entries (X-Admin-Key):

	POST   /sets/{name}/entries                - Add entry
	PUT    /sets/{name}/entries/{id}           - Edit entry
	DELETE /sets/{name}/entries/{id}           - Delete entry and its votes
	POST   /sets/{name}/entries/{id}/move-up   - Reorder
	POST   /sets/{name}/entries/{id}/move-down - Reorder

Tables and voting:

	GET  /sets/{name}/table  - Public archive table
	GET  /sets/{name}/admin  - Admin table (X-Admin-Key)
	GET  /sets/{name}/ballot - Voting form, issues X-Voter-Token
	POST /sets/{name}/votes  - Submit votes (X-Voter-Token)
*/
package router

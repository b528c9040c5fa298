// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - AdminKeySalt: Secret for admin key HMAC (required by the server)
  - Render: redaction marker, badge path, slider range and default

# Layers

Later layers win:

 1. DefaultConfig
 2. YAML file given by -c or CONFIG_FILE
 3. Environment variables
 4. CLI flags that were actually passed

# CLI Flags

	-c            YAML config file
	-p            Server port
	-d            Database URL
	-t            Database type
	--admin-salt  Admin key salt

# Environment Variables

	PORT                   → -p
	DATABASE_URL           → -d
	DATABASE_TYPE          → -t
	ADMIN_KEY_SALT         → --admin-salt
	RENDER_REDACTION_MARKER
	RENDER_BADGE_PATH
	RENDER_SLIDER_MIN
	RENDER_SLIDER_MAX
	RENDER_SLIDER_DEFAULT
	VOTE_RATE              votes per second per client, 0 disables
	VOTE_BURST
	TRUST_PROXY            key the vote limit by X-Forwarded-For

# YAML File

	port: 3318
	database_url: file:judge.db
	database_type: sqlite
	render:
	  redaction_marker: Sensitive Project
	  badge_path: /badges/
	  slider_min: -10
	  slider_max: 10
	vote_rate: 1
	vote_burst: 5
	trust_proxy: false

The admin salt is never read from the file.

# Validation

Validate checks the database settings, the port, the slider range and the
vote rate limit.
ParseFlags additionally requires ADMIN_KEY_SALT.
*/
package cliparse

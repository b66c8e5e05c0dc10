// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - App: fyyur, trivia, coffee or pybo (required)
  - Auth0Domain, APIAudience: token issuer and audience (required for coffee and pybo)
  - AllowedOrigin: CORS origin (default: *)
  - LogMode: dev or prod (default: dev)
  - SeedData: insert seed rows into empty tables

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-a             App to serve
	-auth0-domain  Auth0 tenant domain
	-audience      API audience
	-origin        Allowed CORS origin
	-log           Log mode
	-seed          Seed data

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	APP           → -a
	AUTH0_DOMAIN  → -auth0-domain
	API_AUDIENCE  → -audience
	CORS_ORIGIN   → -origin
	LOG_MODE      → -log
	SEED_DATA     → -seed

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - APP is missing or unknown
  - DATABASE_TYPE is not sqlite or postgres
  - AUTH0_DOMAIN or API_AUDIENCE is missing for coffee or pybo
*/
package cliparse

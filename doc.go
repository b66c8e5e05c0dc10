// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the FSND API server.

One binary serves one of four apps, chosen with -a or APP:

  - fyyur: venues, artists and the shows that book them
  - trivia: a question bank with categories and a quiz
  - coffee: a coffee shop menu guarded by bearer token permissions
  - pybo: a question and answer board with votes and accounts

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	APP=trivia DATABASE_URL=file:trivia.db go run .

Or with flags:

	go run . -a pybo -t postgres -d "postgres://..." -auth0-domain fsnd.us.auth0.com -audience pybo

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - APP (-a): fyyur, trivia, coffee or pybo
  - DATABASE_URL (-d): SQLite DSN or PostgreSQL connection string
  - AUTH0_DOMAIN, API_AUDIENCE: token issuer and audience, coffee and pybo only

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CORS_ORIGIN (-origin): allowed origin (default: *)
  - LOG_MODE (-log): dev or prod
  - SEED_DATA (-seed): insert trivia categories or the default drink

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers for every app
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers, validation, permissions
  - models: gorm models and request/response types
  - auth: Bearer token verification and password hashing
  - db: Connections, migrations and seed data
  - pagination: Page arithmetic for list endpoints
  - logging: zap-backed slog logger
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

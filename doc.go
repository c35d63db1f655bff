// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voteledger API server.

voteledger records polls, their candidates and vote tallies. Every record
lives at an address derived from its identifiers, so a poll is found by its
poll_id and a candidate by (poll_id, candidate_name), never by an opaque
handle.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:voteledger.db ADMIN_KEY_SALT=... SIGNER_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or PostgreSQL connection string
  - REDIS_ADDR (-redis): Redis address, when DATABASE_TYPE is redis
  - ADMIN_KEY_SALT (-admin-salt): Secret for poll admin keys
  - SIGNER_KEY_SALT (-signer-salt): Secret for signer keys

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres, redis or memory (default: sqlite)
  - PROGRAM_ID (-program): Address derivation identity (default: voteledger)

# Architecture

  - ledger: Address derivation, records, the three ledger operations
  - memstore, db, redisstore: ledger.Store implementations
  - handlers: HTTP request handlers (signers, polls, candidates, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Request logging, CORS, JSON helpers
  - models: Request/response types
  - auth: Signer and admin key checks
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

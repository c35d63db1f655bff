// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default), postgres, redis or memory
  - DatabaseURL: sqlite file or PostgreSQL connection string
  - RedisAddr: Redis host:port when DatabaseType is redis
  - AdminKeySalt: Secret for poll admin key HMAC (required)
  - SignerKeySalt: Secret for signer key HMAC (required)
  - ProgramID: Identity mixed into every derived address (default: voteledger)

# CLI Flags

	-p            Server port
	-t            Store type
	-d            Database URL
	-redis        Redis address
	-program      Program identity
	-admin-salt   Admin key salt
	-signer-salt  Signer key salt
	-env          dotenv file to load

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_TYPE   → -t
	DATABASE_URL    → -d
	REDIS_ADDR      → -redis
	PROGRAM_ID      → -program
	ADMIN_KEY_SALT  → -admin-salt
	SIGNER_KEY_SALT → -signer-salt

CLI flags take precedence over environment variables, and real environment
variables take precedence over the dotenv file. Without -env, ./.env is
loaded when it exists.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL for sqlite and postgres
  - REDIS_ADDR for redis
  - ADMIN_KEY_SALT and SIGNER_KEY_SALT always
*/
package cliparse

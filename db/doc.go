// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores ledger records in sqlite or PostgreSQL.

# Connecting

Open connects, pings and creates the schema:

	conn, err := db.Open(db.TypeSQLite, "file:voteledger.db")
	if err != nil {
		log.Fatal(err)
	}
	store := db.NewStore(conn, db.TypeSQLite, logger)

sqlite uses modernc.org/sqlite (no cgo); postgres uses lib/pq.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS.

	account(address TEXT PRIMARY KEY, data, created_at, updated_at)

address is the hex form of a derived ledger.Address and data is the encoded
record. Polls and candidates share the table; the record discriminator tells
them apart.

# Transactions

Store.Update runs the callback inside one SQL transaction:

  - Insert is INSERT ... ON CONFLICT (address) DO NOTHING; zero affected rows
    means the address was taken (ledger.ErrAlreadyExists).
  - Get locks the row with FOR UPDATE on postgres.
  - sqlite runs on one connection, so write transactions never interleave.

Any callback error rolls the whole transaction back.
*/
package db

package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// statements set up the schema; each runs on its own since the extended
// protocol accepts one statement per Exec.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS motorbikes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		initial_cost NUMERIC(14,2) NOT NULL,
		tanya_initial_cost NUMERIC(14,2) NOT NULL DEFAULT 0,
		gerald_initial_cost NUMERIC(14,2) NOT NULL DEFAULT 0,
		buyer TEXT,
		is_sold BOOLEAN NOT NULL DEFAULT FALSE,
		sold_value NUMERIC(14,2),
		ignore_from_calculations BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS parts (
		id TEXT PRIMARY KEY,
		motorbike_id TEXT NOT NULL REFERENCES motorbikes(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		buyer TEXT NOT NULL,
		cost NUMERIC(14,2) NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_parts_motorbike_id ON parts(motorbike_id)`,
	`CREATE INDEX IF NOT EXISTS idx_motorbikes_created_at ON motorbikes(created_at)`,
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Money columns are TEXT so decimals round-trip exactly.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS motorbikes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    initial_cost TEXT NOT NULL,
    tanya_initial_cost TEXT NOT NULL DEFAULT '0',
    gerald_initial_cost TEXT NOT NULL DEFAULT '0',
    buyer TEXT,
    is_sold INTEGER NOT NULL DEFAULT 0,
    sold_value TEXT,
    ignore_from_calculations INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS parts (
    id TEXT PRIMARY KEY,
    motorbike_id TEXT NOT NULL,
    name TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    buyer TEXT NOT NULL,
    cost TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (motorbike_id) REFERENCES motorbikes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_parts_motorbike_id ON parts(motorbike_id);
CREATE INDEX IF NOT EXISTS idx_motorbikes_created_at ON motorbikes(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

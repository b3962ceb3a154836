package db

import (
	"database/sql"
)

// MigrateUp creates the message archive schema. Messages are keyed by
// (channel, id) because channels number their posts independently.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS messages (
    channel     TEXT NOT NULL,
    id          BIGINT NOT NULL,
    posted_at   TIMESTAMPTZ NOT NULL,
    text        TEXT,
    archived_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (channel, id)
)`); err != nil {
		return err
	}

	// History scans read one channel in posted_at order.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_messages_channel_posted_at ON messages(channel, posted_at, id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all archived messages.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_messages_channel_posted_at`,
		`DROP TABLE IF EXISTS messages CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

package migrations

import (
	"database/sql"
	"fmt"
)

func init() {
	RegisterGoMigration(1, Up_000001_create_app_state, Down_000001_create_app_state)
}

// Up_000001_create_app_state creates the key/value table holding the
// serialized state and selection documents.
func Up_000001_create_app_state(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create app_state table: %w", err)
	}
	return nil
}

func Down_000001_create_app_state(tx *sql.Tx) error {
	if _, err := tx.Exec("DROP TABLE IF EXISTS app_state"); err != nil {
		return fmt.Errorf("failed to drop app_state table: %w", err)
	}
	return nil
}

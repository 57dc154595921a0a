package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

func init() {
	RegisterGoMigration(2, Up_000002_normalize_updated_at, Down_000002_normalize_updated_at)
}

// Up_000002_normalize_updated_at rewrites updated_at values stored in SQLite's
// CURRENT_TIMESTAMP layout, or in Go's default time.String layout, to RFC3339.
func Up_000002_normalize_updated_at(tx *sql.Tx) error {
	type row struct {
		key       string
		updatedAt string
	}
	var rows []row

	result, err := tx.Query("SELECT key, updated_at FROM app_state")
	if err != nil {
		return fmt.Errorf("failed to query app_state: %w", err)
	}
	for result.Next() {
		var r row
		if err := result.Scan(&r.key, &r.updatedAt); err != nil {
			result.Close()
			return fmt.Errorf("failed to scan app_state row: %w", err)
		}
		rows = append(rows, r)
	}
	if err := result.Err(); err != nil {
		result.Close()
		return fmt.Errorf("error iterating app_state: %w", err)
	}
	result.Close()

	stmt, err := tx.Prepare("UPDATE app_state SET updated_at = ? WHERE key = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare updated_at statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		normalized, err := NormalizeTimestamp(r.updatedAt)
		if err != nil {
			continue
		}
		if normalized == r.updatedAt {
			continue
		}
		if _, err := stmt.Exec(normalized, r.key); err != nil {
			return fmt.Errorf("failed to update updated_at for %s: %w", r.key, err)
		}
	}
	return nil
}

// Down_000002_normalize_updated_at converts RFC3339 values back to the
// CURRENT_TIMESTAMP layout.
func Down_000002_normalize_updated_at(tx *sql.Tx) error {
	_, err := tx.Exec(`
		UPDATE app_state
		SET updated_at = substr(updated_at, 1, 10) || ' ' || substr(updated_at, 12, 8)
		WHERE updated_at GLOB '????-??-??T??:??:??*'
	`)
	if err != nil {
		return fmt.Errorf("failed to revert updated_at: %w", err)
	}
	return nil
}

// NormalizeTimestamp parses the timestamp layouts found in older rows and
// returns the value formatted as RFC3339 in UTC.
func NormalizeTimestamp(value string) (string, error) {
	if idx := strings.Index(value, " m="); idx != -1 {
		value = value[:idx]
	}

	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999 -0700",
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05 -0700",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}

	return "", fmt.Errorf("could not parse time format: %s", value)
}

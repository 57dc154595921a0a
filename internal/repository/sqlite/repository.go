package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Storage keys for the two persisted documents
const (
	StateKey     = "tempo_app_state_v2"
	SelectionKey = "tempo_selection_v1"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Options tunes how the repository talks to the database file
type Options struct {
	Defaults       DocumentDefaults
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// DefaultOptions returns the options used when none are supplied
func DefaultOptions() Options {
	return Options{
		Defaults: DocumentDefaults{
			HourlyRate: 50,
			Currency:   "USD",
			ThemeMode:  "system",
		},
		QueryTimeout:   10 * time.Second,
		WriteTimeout:   5 * time.Second,
		DirPermissions: 0755,
	}
}

// Repository defines the interface for database operations
type Repository interface {
	// Documents
	LoadState(ctx context.Context) (*StateDocument, error)
	SaveState(ctx context.Context, doc StateDocument) error
	LoadSelection(ctx context.Context) (*SelectionDocument, error)
	SaveSelection(ctx context.Context, doc SelectionDocument) error

	// Raw records
	GetRecord(ctx context.Context, key string) (*Record, error)
	PutRecord(ctx context.Context, key, value string) error
	DeleteRecord(ctx context.Context, key string) error
	ListRecords(ctx context.Context) ([]*Record, error)

	// Reset removes every stored document
	Reset(ctx context.Context) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions creates a new SQLite repository instance
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if dbPath != MemoryPath {
		perm := opts.DirPermissions
		if perm == 0 {
			perm = 0755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perm); err != nil {
			return nil, errors.NewDatabaseError("create data directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// a single connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db, dbPath); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("configure database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

func applyPragmas(db *sql.DB, dbPath string) error {
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if dbPath != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

// LoadState reads and decodes the state document. A missing document is
// reported as a not found error; an unreadable one wraps ErrCorruptDocument.
func (r *SQLiteRepository) LoadState(ctx context.Context) (*StateDocument, error) {
	record, err := r.GetRecord(ctx, StateKey)
	if err != nil {
		return nil, err
	}
	return DecodeState(record.Value, r.opts.Defaults)
}

// SaveState encodes and stores the state document
func (r *SQLiteRepository) SaveState(ctx context.Context, doc StateDocument) error {
	blob, err := EncodeState(doc)
	if err != nil {
		return HandleDatabaseError("encode state", err)
	}
	return r.PutRecord(ctx, StateKey, blob)
}

// LoadSelection reads and decodes the selection document
func (r *SQLiteRepository) LoadSelection(ctx context.Context) (*SelectionDocument, error) {
	record, err := r.GetRecord(ctx, SelectionKey)
	if err != nil {
		return nil, err
	}
	return DecodeSelection(record.Value)
}

// SaveSelection encodes and stores the selection document
func (r *SQLiteRepository) SaveSelection(ctx context.Context, doc SelectionDocument) error {
	blob, err := EncodeSelection(doc)
	if err != nil {
		return HandleDatabaseError("encode selection", err)
	}
	return r.PutRecord(ctx, SelectionKey, blob)
}

// GetRecord retrieves a raw record by key
func (r *SQLiteRepository) GetRecord(ctx context.Context, key string) (*Record, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
	SELECT key, value, updated_at
	FROM app_state
	WHERE key = ?`

	return QuerySingle(ctx, r.db, query, ScanRecord, "record", key, key)
}

// PutRecord inserts or replaces a raw record
func (r *SQLiteRepository) PutRecord(ctx context.Context, key, value string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	INSERT INTO app_state (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, key, value, FormatTimeForDB(r.now()))
	if err != nil {
		return HandleDatabaseError("save "+key, err)
	}
	return nil
}

// DeleteRecord deletes a raw record by key
func (r *SQLiteRepository) DeleteRecord(ctx context.Context, key string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM app_state WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "record", key, key)
}

// ListRecords returns every stored record ordered by key
func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]*Record, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
	SELECT key, value, updated_at
	FROM app_state
	ORDER BY key ASC`

	return QueryMultiple(ctx, r.db, query, ScanRecords, "records")
}

// Reset removes every stored record. A record that disappears between the
// listing and its delete is not an error.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	records, err := r.ListRecords(ctx)
	if err != nil {
		return err
	}
	for _, record := range records {
		err := r.DeleteRecord(ctx, record.Key)
		if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return err
		}
	}
	return nil
}

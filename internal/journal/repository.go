package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	appDir = "leasedns"
	dbFile = "leasedns.db"
)

var pathOverride string

// SetPath overrides the default database path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override. Intended for testing.
func ResetPath() { pathOverride = "" }

// DefaultPath returns the default journal database path, next to the
// config file.
func DefaultPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("journal: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, dbFile), nil
}

func openDatabase(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("journal: failed to open database: %w", err)
	}
	return db, nil
}

// Repository defines the persistence interface for sync run records.
type Repository interface {
	Save(record *Record) error
	List(limit int) ([]Record, error)
	ListByDomain(domain string, limit int) ([]Record, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the journal repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS sync_journal (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            domain      TEXT    NOT NULL,
            root        TEXT    NOT NULL DEFAULT '',
            leases      TEXT    NOT NULL DEFAULT '',
            sources     TEXT    NOT NULL DEFAULT '[]',
            records     INTEGER NOT NULL DEFAULT 0,
            dry_run     INTEGER NOT NULL DEFAULT 0,
            outcome     TEXT    NOT NULL DEFAULT '',
            detail      TEXT    NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_sync_journal_timestamp ON sync_journal(timestamp);
        CREATE INDEX IF NOT EXISTS idx_sync_journal_domain ON sync_journal(domain);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("journal: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new sync run record.
func (r *SQLiteRepository) Save(record *Record) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	sources, err := json.Marshal(record.Sources)
	if err != nil {
		return fmt.Errorf("journal: marshal sources: %w", err)
	}

	result, err := r.db.Exec(`
        INSERT INTO sync_journal (timestamp, domain, root, leases, sources, records, dry_run, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339Nano), record.Domain, record.Root, record.Leases,
		string(sources), record.Records, record.DryRun, record.Outcome, record.Detail, record.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("journal: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("journal: failed to get last insert ID: %w", err)
	}
	record.ID = id
	return nil
}

// List returns the most recent n sync run records.
func (r *SQLiteRepository) List(limit int) ([]Record, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, domain, root, leases, sources, records, dry_run, outcome, detail, duration_ms
        FROM sync_journal ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByDomain returns the most recent n sync run records for a domain.
func (r *SQLiteRepository) ListByDomain(domain string, limit int) ([]Record, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, domain, root, leases, sources, records, dry_run, outcome, detail, duration_ms
        FROM sync_journal WHERE domain = ? ORDER BY timestamp DESC LIMIT ?`, domain, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes records older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM sync_journal WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("journal: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			record       Record
			timestampStr string
			sourcesStr   string
		)
		err := rows.Scan(
			&record.ID, &timestampStr, &record.Domain, &record.Root, &record.Leases,
			&sourcesStr, &record.Records, &record.DryRun, &record.Outcome,
			&record.Detail, &record.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("journal: scan failed: %w", err)
		}
		record.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		if sourcesStr != "" {
			if err := json.Unmarshal([]byte(sourcesStr), &record.Sources); err != nil {
				return nil, fmt.Errorf("journal: unmarshal sources: %w", err)
			}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

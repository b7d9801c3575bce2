// Package history persists deletion outcomes to a per-user SQLite
// journal so past runs can be inspected with `lm history`.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lakshaymaurya-felt/linmole/internal/logging"
)

// Journal is the deletion history database.
type Journal struct {
	db *sql.DB
}

// Record is one journaled deletion outcome.
type Record struct {
	ID        int64
	Timestamp time.Time
	Tool      string // clean, purge, analyze, uninstall, optimize
	Category  string
	Path      string
	Freed     int64
	DryRun    bool
	Outcome   string // deleted, skipped, failed
	Error     string
}

const (
	OutcomeDeleted = "deleted"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// DefaultPath returns the journal location under the state directory.
func DefaultPath() string {
	dir := logging.StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// Open opens (creating if needed) the journal at dbPath.
func Open(dbPath string) (*Journal, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory %s: %w", dir, err)
		}
	}

	// _loc=auto makes the driver parse DATETIME columns back into
	// time.Time values.
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	// Exercise the connection so the file exists before the pragmas.
	if _, err := db.Exec("SELECT 1"); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize journal at %s: %w", dbPath, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS deletions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		tool TEXT NOT NULL,
		category TEXT,
		path TEXT NOT NULL,
		freed INTEGER NOT NULL,
		dry_run INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_deletions_timestamp ON deletions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_deletions_tool ON deletions(tool);
	CREATE INDEX IF NOT EXISTS idx_deletions_path ON deletions(path);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Record appends one outcome. Timestamp defaults to now when zero.
func (j *Journal) Record(r Record) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	_, err := j.db.Exec(`
		INSERT INTO deletions (timestamp, tool, category, path, freed, dry_run, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Timestamp, r.Tool, r.Category, r.Path, r.Freed, r.DryRun, r.Outcome, r.Error,
	)
	return err
}

// Recent returns up to limit records, newest first.
func (j *Journal) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(`
		SELECT id, timestamp, tool, category, path, freed, dry_run, outcome, error
		FROM deletions ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var dryRun int
		var category, errMsg sql.NullString
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Tool, &category, &r.Path,
			&r.Freed, &dryRun, &r.Outcome, &errMsg); err != nil {
			return nil, err
		}
		r.Category = category.String
		r.Error = errMsg.String
		r.DryRun = dryRun != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

// TotalFreed sums bytes actually freed (dry runs excluded).
func (j *Journal) TotalFreed() (int64, error) {
	var total sql.NullInt64
	err := j.db.QueryRow(`
		SELECT SUM(freed) FROM deletions
		WHERE outcome = ? AND dry_run = 0`, OutcomeDeleted).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// Prune removes records older than the cutoff and compacts the file.
func (j *Journal) Prune(olderThan time.Time) (int64, error) {
	res, err := j.db.Exec(`DELETE FROM deletions WHERE timestamp < ?`, olderThan)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		if _, err := j.db.Exec("VACUUM"); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

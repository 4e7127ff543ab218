package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists snapshot history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while snapshots are written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			source      TEXT,
			outcome     TEXT,
			rows        INTEGER,
			kept        INTEGER,
			malformed   INTEGER,
			duplicates  INTEGER,
			first_bar   INTEGER,
			last_bar    INTEGER,
			last_close  REAL,
			shapes      INTEGER,
			output      TEXT,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO snapshots
		(timestamp, source, outcome, rows, kept, malformed, duplicates,
		 first_bar, last_bar, last_close, shapes, output, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), snap.Source, snap.Outcome, snap.Rows, snap.Kept, snap.Malformed, snap.Duplicates,
		unixOrZero(snap.FirstBar), unixOrZero(snap.LastBar), snap.LastClose, snap.Shapes, snap.Output, snap.Error,
	)
	return err
}

// Recent returns up to limit snapshots, newest first.
func (r *SQLiteRecorder) Recent(limit int) ([]Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, source, outcome, rows, kept, malformed, duplicates,
		first_bar, last_bar, last_close, shapes, output, error
		FROM snapshots ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var ts, first, last int64
		if err := rows.Scan(&ts, &s.Source, &s.Outcome, &s.Rows, &s.Kept, &s.Malformed, &s.Duplicates,
			&first, &last, &s.LastClose, &s.Shapes, &s.Output, &s.Error); err != nil {
			return nil, err
		}
		s.Time = time.Unix(ts, 0).UTC()
		if first != 0 {
			s.FirstBar = time.Unix(first, 0).UTC()
		}
		if last != 0 {
			s.LastBar = time.Unix(last, 0).UTC()
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

package collector

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"CandleScope/internal/model"
	"CandleScope/internal/series"

	_ "modernc.org/sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteFetcher reads bars from a SQLite table keyed by date. Limit > 0 keeps only
// the newest Limit bars.
type SQLiteFetcher struct {
	Path  string
	Table string
	Limit int
}

func (f *SQLiteFetcher) Name() string { return "sqlite" }

func (f *SQLiteFetcher) open(ctx context.Context) (*sql.DB, error) {
	if !tableName.MatchString(f.Table) {
		return nil, fmt.Errorf("invalid table name %q", f.Table)
	}
	db, err := sql.Open("sqlite", f.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if err := f.migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (f *SQLiteFetcher) migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + f.Table + ` (
			date   TEXT PRIMARY KEY,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// FetchRows returns the stored bars oldest first. NULL cells come back empty and are
// reported as malformed by series.Build.
func (f *SQLiteFetcher) FetchRows(ctx context.Context) ([]series.Row, error) {
	db, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}
	q := `SELECT date, open, high, low, close, volume FROM (
		SELECT date, open, high, low, close, volume FROM ` + f.Table + ` ORDER BY date DESC LIMIT ?
	) ORDER BY date`
	rs, err := db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rs.Close()

	var rows []series.Row
	for rs.Next() {
		var d, o, h, l, c, v sql.NullString
		if err := rs.Scan(&d, &o, &h, &l, &c, &v); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		rows = append(rows, series.Row{
			Line:   len(rows) + 1,
			Date:   d.String,
			Open:   o.String,
			High:   h.String,
			Low:    l.String,
			Close:  c.String,
			Volume: v.String,
		})
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate bars: %w", err)
	}
	return rows, nil
}

// Store upserts bars, replacing any bar already stored for the same time.
func (f *SQLiteFetcher) Store(ctx context.Context, bars []model.OHLCV) error {
	db, err := f.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO `+f.Table+`
		(date, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, b.Time.UTC().Format(time.RFC3339),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"swissclock.ch/swissclock/timeclock"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the entry log in a SQLite file. Times are stored as Unix
// nanoseconds; a partial unique index allows one open entry per employee.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS time_entries (
			id TEXT PRIMARY KEY,
			employee_id INTEGER NOT NULL,
			clock_in_ns INTEGER NOT NULL,
			clock_out_ns INTEGER
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_open
			ON time_entries(employee_id) WHERE clock_out_ns IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_time_entries_employee
			ON time_entries(employee_id, clock_in_ns)`,
	}
	for _, q := range statements {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to initialise schema: %w", err)
		}
	}
	return nil
}

const selectEntries = "SELECT id, employee_id, clock_in_ns, clock_out_ns FROM time_entries"

func (s *SQLiteStore) OpenEntry(ctx context.Context, employeeID int) (*timeclock.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntries+" WHERE employee_id = ? AND clock_out_ns IS NULL", employeeID)
	if err != nil {
		return nil, err
	}
	entries, err := scanEntries(rows)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

func (s *SQLiteStore) Insert(ctx context.Context, entry timeclock.TimeEntry) error {
	var out sql.NullInt64
	if entry.ClockOutTime != nil {
		out = sql.NullInt64{Int64: entry.ClockOutTime.UnixNano(), Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO time_entries (id, employee_id, clock_in_ns, clock_out_ns) VALUES (?, ?, ?, ?) ON CONFLICT(id) DO NOTHING",
		entry.ID, entry.EmployeeID, entry.ClockInTime.UnixNano(), out,
	)
	if err != nil {
		if !strings.Contains(err.Error(), "UNIQUE constraint failed: time_entries.employee_id") {
			return err
		}
		// the open-entry index may fire before the id conflict is resolved
		var exists int
		if qerr := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM time_entries WHERE id = ?", entry.ID).Scan(&exists); qerr == nil && exists > 0 {
			return fmt.Errorf("entry %s: %w", entry.ID, timeclock.ErrDuplicateEntry)
		}
		return timeclock.ErrAlreadyClockedIn
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", entry.ID, timeclock.ErrDuplicateEntry)
	}
	return nil
}

func (s *SQLiteStore) CloseEntry(ctx context.Context, id string, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE time_entries SET clock_out_ns = ? WHERE id = ? AND clock_out_ns IS NULL",
		at.UnixNano(), id,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", id, timeclock.ErrNotClockedIn)
	}
	return nil
}

func (s *SQLiteStore) Entries(ctx context.Context, employeeID int) ([]timeclock.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntries+" WHERE employee_id = ? ORDER BY clock_in_ns DESC", employeeID)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (s *SQLiteStore) AllEntries(ctx context.Context) ([]timeclock.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntries+" ORDER BY clock_in_ns DESC")
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]timeclock.TimeEntry, error) {
	defer rows.Close()

	var entries []timeclock.TimeEntry
	for rows.Next() {
		var e timeclock.TimeEntry
		var in int64
		var out sql.NullInt64
		if err := rows.Scan(&e.ID, &e.EmployeeID, &in, &out); err != nil {
			return nil, err
		}
		e.ClockInTime = time.Unix(0, in).UTC()
		if out.Valid {
			t := time.Unix(0, out.Int64).UTC()
			e.ClockOutTime = &t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

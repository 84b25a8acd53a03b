// Package sqlite provides SQLite-based persistent storage for StudyFlow.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/studyflow.db.
// Enables WAL mode, foreign keys, and a 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "studyflow.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Session log: the source of truth all derived state rebuilds from
		`CREATE TABLE IF NOT EXISTS study_sessions (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			subject          TEXT NOT NULL,
			area             TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			xp_earned        INTEGER NOT NULL,
			notes            TEXT NOT NULL DEFAULT '',
			date             TEXT NOT NULL,
			created_at       INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON study_sessions(user_id, date)`,

		// Derived streak record, one row per user
		`CREATE TABLE IF NOT EXISTS study_streaks (
			user_id      TEXT PRIMARY KEY,
			current_days INTEGER NOT NULL,
			longest_days INTEGER NOT NULL,
			last_date    TEXT NOT NULL DEFAULT ''
		)`,

		// Achievement catalog (read-only reference data, seeded at startup)
		`CREATE TABLE IF NOT EXISTS achievements (
			id                TEXT PRIMARY KEY,
			name              TEXT NOT NULL,
			description       TEXT NOT NULL DEFAULT '',
			icon              TEXT NOT NULL DEFAULT '',
			reward_xp         INTEGER NOT NULL DEFAULT 0,
			requirement_type  TEXT NOT NULL,
			requirement_value INTEGER NOT NULL,
			target_area       TEXT NOT NULL DEFAULT ''
		)`,

		// Unlock records: at most one per (user, achievement)
		`CREATE TABLE IF NOT EXISTS user_achievements (
			user_id        TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			unlocked_at    INTEGER NOT NULL,
			PRIMARY KEY (user_id, achievement_id)
		)`,

		// Habits with their own streak columns
		`CREATE TABLE IF NOT EXISTS habits (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			title        TEXT NOT NULL,
			category     TEXT NOT NULL DEFAULT '',
			current_days INTEGER NOT NULL DEFAULT 0,
			longest_days INTEGER NOT NULL DEFAULT 0,
			last_date    TEXT NOT NULL DEFAULT '',
			created_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id)`,

		// Goals with accumulated progress
		`CREATE TABLE IF NOT EXISTS goals (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			title         TEXT NOT NULL,
			target_value  INTEGER NOT NULL,
			current_value INTEGER NOT NULL DEFAULT 0,
			status        TEXT NOT NULL DEFAULT 'active',
			created_at    INTEGER NOT NULL,
			completed_at  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,

		// Finance: accounts plus a double-entry ledger
		`CREATE TABLE IF NOT EXISTS accounts (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			name          TEXT NOT NULL,
			type          TEXT NOT NULL,
			balance_cents INTEGER NOT NULL DEFAULT 0,
			created_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts(user_id)`,
		`CREATE TABLE IF NOT EXISTS finance_ledger (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      TEXT NOT NULL,
			tx_id        TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			type         TEXT NOT NULL,
			entry_type   TEXT NOT NULL,
			account      TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			category     TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			balance      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_user ON finance_ledger(user_id, timestamp)`,

		// Pomodoro cycle log
		`CREATE TABLE IF NOT EXISTS pomodoro_sessions (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			task          TEXT NOT NULL,
			subject       TEXT NOT NULL DEFAULT '',
			focus_minutes INTEGER NOT NULL,
			break_minutes INTEGER NOT NULL,
			cycles        INTEGER NOT NULL,
			date          TEXT NOT NULL,
			created_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pomodoro_user ON pomodoro_sessions(user_id, date)`,

		// Notification queue (policy-limited)
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_user ON notifications(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

const dayFormat = "2006-01-02"

// dayString renders a date column value; zero time becomes "".
func dayString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dayFormat)
}

// parseDay reads a date column value; "" becomes the zero time.
func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

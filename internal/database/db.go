// Package database provides an independent reference for Gregorian day
// counts, backed by SQLite's built-in date functions.
//
// SQLite computes julianday(), date() and strftime('%w') in the proleptic
// Gregorian calendar for years 0000 through 9999. Nothing is stored: the
// database lives in memory and only evaluates expressions. It is used to
// cross-check the calendar package.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/zapponejosh/daycount/internal/calendar"
)

// =============================================================================
// Database Connection
// =============================================================================

// DB wraps the standard sql.DB with day-count queries.
type DB struct {
	*sql.DB
	logger *slog.Logger

	julianDay *sql.Stmt
	date      *sql.Stmt
	weekday   *sql.Stmt
}

// Config holds database configuration options.
type Config struct {
	MaxOpenConns    int           // Maximum open connections
	MaxIdleConns    int           // Maximum idle connections
	ConnMaxLifetime time.Duration // Connection max lifetime
}

// DefaultConfig returns defaults for a read-only in-memory database.
// Every connection is its own empty database, so the pool can grow for
// parallel checks without any locking concerns.
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    4,
		MaxIdleConns:    4,
		ConnMaxLifetime: time.Hour,
	}
}

// SQLite's date functions cover 0000-01-01 through 9999-12-31.
const (
	minYear = 0
	maxYear = 9999
)

// ErrOutOfRange is returned for dates SQLite's date functions cannot
// represent.
var ErrOutOfRange = errors.New("date outside SQLite range 0000-9999")

// Open creates a new in-memory database and prepares the reference queries.
//
// The caller is responsible for calling Close() when done.
func Open(cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// _busy_timeout=5000: Wait up to 5s if database is locked
	db, err := sql.Open("sqlite3", ":memory:?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	ref := &DB{DB: db, logger: logger}
	if err := ref.prepare(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("reference database ready",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return ref, nil
}

func (db *DB) prepare(ctx context.Context) error {
	var err error

	// julianday() counts from noon; the day count starts at midnight.
	db.julianDay, err = db.PrepareContext(ctx, "SELECT julianday(?)")
	if err != nil {
		return fmt.Errorf("prepare julianday: %w", err)
	}

	db.date, err = db.PrepareContext(ctx, "SELECT date(?)")
	if err != nil {
		return fmt.Errorf("prepare date: %w", err)
	}

	db.weekday, err = db.PrepareContext(ctx, "SELECT CAST(strftime('%w', ?) AS INTEGER)")
	if err != nil {
		return fmt.Errorf("prepare weekday: %w", err)
	}

	return nil
}

// Close closes the prepared statements and the database connection.
func (db *DB) Close() error {
	db.logger.Info("closing reference database")
	for _, stmt := range []*sql.Stmt{db.julianDay, db.date, db.weekday} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return db.DB.Close()
}

// Health checks if the database connection is healthy.
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query failed: %w", err)
	}

	return nil
}

// =============================================================================
// Reference Queries
// =============================================================================

// GregorianCJDN returns SQLite's day count for a Gregorian date.
func (db *DB) GregorianCJDN(ctx context.Context, year, month, day int) (calendar.CJDN, error) {
	if year < minYear || year > maxYear {
		return 0, fmt.Errorf("%w: year %d", ErrOutOfRange, year)
	}

	text := fmt.Sprintf("%04d-%02d-%02d", year, month, day)

	var jd sql.NullFloat64
	if err := db.julianDay.QueryRowContext(ctx, text).Scan(&jd); err != nil {
		return 0, fmt.Errorf("julianday(%s): %w", text, err)
	}
	if !jd.Valid {
		return 0, fmt.Errorf("julianday(%s): %w", text, ErrOutOfRange)
	}

	return calendar.CJDN(math.Floor(jd.Float64 + 0.5)), nil
}

// GregorianDate returns SQLite's YYYY-MM-DD rendering of a day count.
func (db *DB) GregorianDate(ctx context.Context, c calendar.CJDN) (string, error) {
	var text sql.NullString
	if err := db.date.QueryRowContext(ctx, midnight(c)).Scan(&text); err != nil {
		return "", fmt.Errorf("date(%d): %w", c, err)
	}
	if !text.Valid {
		return "", fmt.Errorf("date(%d): %w", c, ErrOutOfRange)
	}
	return text.String, nil
}

// Weekday returns SQLite's weekday for a day count, renumbered to ISO 8601.
func (db *DB) Weekday(ctx context.Context, c calendar.CJDN) (calendar.Weekday, error) {
	var w sql.NullInt64
	if err := db.weekday.QueryRowContext(ctx, midnight(c)).Scan(&w); err != nil {
		return 0, fmt.Errorf("strftime(%%w, %d): %w", c, err)
	}
	if !w.Valid {
		return 0, fmt.Errorf("strftime(%%w, %d): %w", c, ErrOutOfRange)
	}

	// SQLite counts Sunday as 0.
	if w.Int64 == 0 {
		return calendar.Sunday, nil
	}
	return calendar.Weekday(w.Int64), nil
}

// midnight converts a day count to the Julian date of the start of that day.
func midnight(c calendar.CJDN) float64 {
	return float64(c) - 0.5
}

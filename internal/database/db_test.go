package database

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/daycount/internal/calendar"
)

// testDB opens an in-memory reference database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(DefaultConfig(), logger)
	require.NoError(t, err, "open test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestOpen(t *testing.T) {
	db := testDB(t)
	assert.NoError(t, db.Health(context.Background()))
}

func TestGregorianCJDN(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	got, err := db.GregorianCJDN(ctx, 2000, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, calendar.CJDN(2451545), got)

	got, err = db.GregorianCJDN(ctx, 1582, 10, 15)
	require.NoError(t, err)
	assert.Equal(t, calendar.CJDN(2299161), got)

	_, err = db.GregorianCJDN(ctx, 10000, 1, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = db.GregorianCJDN(ctx, -1, 1, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGregorianDate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	got, err := db.GregorianDate(ctx, 2451545)
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01", got)

	got, err = db.GregorianDate(ctx, 1721060)
	require.NoError(t, err)
	assert.Equal(t, "0000-01-01", got)

	// 10000-01-01
	_, err = db.GregorianDate(ctx, 5373485)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestWeekday(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	got, err := db.Weekday(ctx, 2451545)
	require.NoError(t, err)
	assert.Equal(t, calendar.Saturday, got)

	got, err = db.Weekday(ctx, 2451546)
	require.NoError(t, err)
	assert.Equal(t, calendar.Sunday, got)
}

// The calendar package must agree with SQLite on every day of a
// 400-year Gregorian cycle.
func TestReferenceAgreesWithCalendar(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	start, err := calendar.GregorianToCJDN(1600, 1, 1)
	require.NoError(t, err)
	end, err := calendar.GregorianToCJDN(2000, 1, 1)
	require.NoError(t, err)

	for c := start; c < end; c += 13 {
		d, err := calendar.CJDNToGregorian(c)
		require.NoError(t, err)

		refCJDN, err := db.GregorianCJDN(ctx, d.Year, d.Month, d.Day)
		require.NoError(t, err)
		require.Equal(t, c, refCJDN, "day count of %s", d)

		refDate, err := db.GregorianDate(ctx, c)
		require.NoError(t, err)
		require.Equal(t, d.String(), refDate, "date of CJDN %d", c)

		refWeekday, err := db.Weekday(ctx, c)
		require.NoError(t, err)
		require.Equal(t, calendar.DayOfWeek(c), refWeekday, "weekday of %s", d)
	}
}

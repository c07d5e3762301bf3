package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/daycount/internal/calendar"
	"github.com/zapponejosh/daycount/internal/database"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeReference answers from the calendar package, optionally lying about
// the weekday of one day or failing outright.
type fakeReference struct {
	wrongWeekday calendar.CJDN
	maxYear      int
	err          error
}

func (f *fakeReference) GregorianCJDN(_ context.Context, year, month, day int) (calendar.CJDN, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.maxYear > 0 && year > f.maxYear {
		return 0, fmt.Errorf("%w: year %d", database.ErrOutOfRange, year)
	}
	return calendar.GregorianToCJDN(year, month, day)
}

func (f *fakeReference) GregorianDate(_ context.Context, c calendar.CJDN) (string, error) {
	d, err := calendar.CJDNToGregorian(c)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func (f *fakeReference) Weekday(_ context.Context, c calendar.CJDN) (calendar.Weekday, error) {
	w := calendar.DayOfWeek(c)
	if c == f.wrongWeekday {
		return w%7 + 1, nil
	}
	return w, nil
}

func reformDay(t *testing.T) calendar.CJDN {
	t.Helper()
	c, err := calendar.GregorianToCJDN(1582, 10, 15)
	require.NoError(t, err)
	return c
}

func TestSweep_Clean(t *testing.T) {
	from := reformDay(t)

	report, err := Sweep(context.Background(), &fakeReference{}, Options{
		From:      from,
		Count:     25000,
		Workers:   4,
		ChunkSize: 1000,
	}, quietLogger())
	require.NoError(t, err)

	assert.True(t, report.OK(), "mismatches: %v", report.Mismatches)
	assert.Equal(t, 25000, report.Checked)
	assert.Equal(t, 25000, report.ReferenceDays)
	assert.Equal(t, from, report.From)
	assert.Equal(t, from.AddDays(24999), report.To)
}

func TestSweep_ReportsMismatch(t *testing.T) {
	from := reformDay(t)
	bad := from.AddDays(1234)

	report, err := Sweep(context.Background(), &fakeReference{wrongWeekday: bad}, Options{
		From:      from,
		Count:     5000,
		Workers:   2,
		ChunkSize: 700,
	}, quietLogger())
	require.NoError(t, err)

	require.False(t, report.OK())
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, bad, report.Mismatches[0].CJDN)
	assert.Equal(t, "reference weekday", report.Mismatches[0].Check)
}

func TestSweep_SkipsDaysOutsideReference(t *testing.T) {
	from, err := calendar.GregorianToCJDN(1999, 12, 1)
	require.NoError(t, err)

	report, err := Sweep(context.Background(), &fakeReference{maxYear: 1999}, Options{
		From:  from,
		Count: 62, // December 1999 and January 2000
	}, quietLogger())
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, 62, report.Checked)
	assert.Equal(t, 31, report.ReferenceDays)
}

func TestSweep_WithoutReference(t *testing.T) {
	report, err := Sweep(context.Background(), nil, Options{From: 0, Count: 3000}, quietLogger())
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, 3000, report.Checked)
	assert.Zero(t, report.ReferenceDays)
}

func TestSweep_ReferenceError(t *testing.T) {
	boom := errors.New("boom")

	_, err := Sweep(context.Background(), &fakeReference{err: boom}, Options{
		From:  reformDay(t),
		Count: 10,
	}, quietLogger())
	assert.ErrorIs(t, err, boom)
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sweep(ctx, &fakeReference{}, Options{From: reformDay(t), Count: 100}, quietLogger())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep_InvalidCount(t *testing.T) {
	_, err := Sweep(context.Background(), nil, Options{Count: 0}, quietLogger())
	assert.Error(t, err)
}

func TestSweep_OutOfRange(t *testing.T) {
	_, err := Sweep(context.Background(), nil, Options{From: calendar.MaxCJDN - 5, Count: 10}, quietLogger())
	assert.ErrorIs(t, err, calendar.ErrOutOfRange)

	report, err := Sweep(context.Background(), nil, Options{From: calendar.MaxCJDN - 9, Count: 10}, quietLogger())
	require.NoError(t, err)
	assert.True(t, report.OK(), "mismatches: %v", report.Mismatches)
}

func TestSweep_MismatchCap(t *testing.T) {
	col := &collector{report: &Report{}, limit: 2}
	col.add(5, 5, []Mismatch{{CJDN: 1}, {CJDN: 2}, {CJDN: 3}})

	assert.Equal(t, 3, col.report.Failed)
	assert.Len(t, col.report.Mismatches, 2)
}

func TestSweep_SQLiteReference(t *testing.T) {
	db, err := database.Open(database.DefaultConfig(), quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	from, err := calendar.GregorianToCJDN(1999, 1, 1)
	require.NoError(t, err)

	report, err := Sweep(context.Background(), db, Options{
		From:      from,
		Count:     3 * 366,
		Workers:   4,
		ChunkSize: 128,
	}, quietLogger())
	require.NoError(t, err)

	assert.True(t, report.OK(), "mismatches: %v", report.Mismatches)
	assert.Equal(t, report.Checked, report.ReferenceDays)
}

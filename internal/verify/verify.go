// Package verify cross-checks the calendar package over ranges of day
// counts: against an independent Gregorian reference, and against itself by
// round-tripping every day through all three calendars.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/zapponejosh/daycount/internal/calendar"
	"github.com/zapponejosh/daycount/internal/database"
)

// Reference is an independent source of Gregorian day counts.
// *database.DB satisfies it.
type Reference interface {
	GregorianCJDN(ctx context.Context, year, month, day int) (calendar.CJDN, error)
	GregorianDate(ctx context.Context, c calendar.CJDN) (string, error)
	Weekday(ctx context.Context, c calendar.CJDN) (calendar.Weekday, error)
}

// Options controls a sweep.
type Options struct {
	From      calendar.CJDN // first day count checked
	Count     int           // number of consecutive days
	Workers   int           // concurrent chunks; values below 1 mean 1
	ChunkSize int           // days per chunk; values below 1 mean 10000

	// MaxMismatches caps how many mismatches are kept in the report.
	// All mismatches are still counted. Zero means 100.
	MaxMismatches int
}

// Mismatch describes one failed check.
type Mismatch struct {
	CJDN  calendar.CJDN `json:"cjdn"`
	Check string        `json:"check"`
	Got   string        `json:"got"`
	Want  string        `json:"want"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("CJDN %d %s: got %s, want %s", m.CJDN, m.Check, m.Got, m.Want)
}

// Report summarizes a sweep.
type Report struct {
	From          calendar.CJDN `json:"from"`
	To            calendar.CJDN `json:"to"`
	Checked       int           `json:"checked"`
	ReferenceDays int           `json:"reference_days"`
	Failed        int           `json:"failed"`
	Mismatches    []Mismatch    `json:"mismatches,omitempty"`
	Duration      time.Duration `json:"duration"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// collector gathers results from concurrent chunks.
type collector struct {
	mu     sync.Mutex
	report *Report
	limit  int
}

func (c *collector) add(checked, referenced int, found []Mismatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.report.Checked += checked
	c.report.ReferenceDays += referenced
	c.report.Failed += len(found)
	for _, m := range found {
		if len(c.report.Mismatches) >= c.limit {
			break
		}
		c.report.Mismatches = append(c.report.Mismatches, m)
	}
}

// Sweep checks opts.Count consecutive day counts starting at opts.From.
//
// Each day is round-tripped through every calendar whose minimum year it
// reaches. Days whose Gregorian year lies in the reference's range are also
// compared with ref for the day count, the formatted date and the weekday.
func Sweep(ctx context.Context, ref Reference, opts Options, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", opts.Count)
	}
	if last := int64(opts.From) + int64(opts.Count) - 1; int64(opts.From) < -calendar.MaxCJDN || last > calendar.MaxCJDN {
		return nil, fmt.Errorf("%w: sweep %d..%d", calendar.ErrOutOfRange, opts.From, last)
	}

	workers := max(opts.Workers, 1)
	chunk := opts.ChunkSize
	if chunk < 1 {
		chunk = 10000
	}
	limit := opts.MaxMismatches
	if limit < 1 {
		limit = 100
	}

	report := &Report{From: opts.From, To: opts.From.AddDays(opts.Count - 1)}
	col := &collector{report: report, limit: limit}

	logger.Info("starting sweep",
		slog.Int("from", int(report.From)),
		slog.Int("to", int(report.To)),
		slog.Int("workers", workers),
		slog.Int("chunk_size", chunk),
	)

	start := time.Now()
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)

	for offset := 0; offset < opts.Count; offset += chunk {
		first := opts.From.AddDays(offset)
		n := min(chunk, opts.Count-offset)

		p.Go(func(ctx context.Context) error {
			checked, referenced, found, err := checkChunk(ctx, ref, first, n)
			if err != nil {
				return fmt.Errorf("chunk at CJDN %d: %w", first, err)
			}
			col.add(checked, referenced, found)
			logger.Debug("chunk checked",
				slog.Int("from", int(first)),
				slog.Int("days", n),
				slog.Int("mismatches", len(found)),
			)
			return nil
		})
	}

	err := p.Wait()
	report.Duration = time.Since(start)
	if err != nil {
		return report, err
	}

	logger.Info("sweep complete",
		slog.Int("checked", report.Checked),
		slog.Int("reference_days", report.ReferenceDays),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", report.Duration),
	)

	return report, nil
}

func checkChunk(ctx context.Context, ref Reference, first calendar.CJDN, n int) (int, int, []Mismatch, error) {
	var found []Mismatch
	referenced := 0

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, referenced, found, err
		}

		c := first.AddDays(i)
		found = append(found, roundTrips(c)...)

		if ref == nil {
			continue
		}
		m, ok, err := compareReference(ctx, ref, c)
		if err != nil {
			return i, referenced, found, err
		}
		if ok {
			referenced++
		}
		found = append(found, m...)
	}

	return n, referenced, found, nil
}

// roundTrips converts c into each calendar and back.
func roundTrips(c calendar.CJDN) []Mismatch {
	var found []Mismatch
	for _, s := range calendar.Systems() {
		d, err := calendar.FromCJDN(s, c)
		if err != nil {
			found = append(found, Mismatch{CJDN: c, Check: s.String() + " date", Got: err.Error(), Want: "a date"})
			continue
		}

		back, err := d.CJDN()
		if errors.Is(err, calendar.ErrBelowMinimumYear) {
			continue
		}
		if err != nil || back != c {
			got := fmt.Sprint(back)
			if err != nil {
				got = err.Error()
			}
			found = append(found, Mismatch{CJDN: c, Check: s.String() + " round trip of " + d.String(), Got: got, Want: fmt.Sprint(c)})
		}
	}
	return found
}

// compareReference checks c against ref. ok is false when the reference
// cannot represent the day.
func compareReference(ctx context.Context, ref Reference, c calendar.CJDN) ([]Mismatch, bool, error) {
	d, err := calendar.CJDNToGregorian(c)
	if err != nil {
		return nil, false, err
	}

	refCJDN, err := ref.GregorianCJDN(ctx, d.Year, d.Month, d.Day)
	if errors.Is(err, database.ErrOutOfRange) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	refDate, err := ref.GregorianDate(ctx, c)
	if err != nil {
		return nil, false, err
	}

	refWeekday, err := ref.Weekday(ctx, c)
	if err != nil {
		return nil, false, err
	}

	var found []Mismatch
	if refCJDN != c {
		found = append(found, Mismatch{CJDN: c, Check: "reference day count of " + d.String(), Got: fmt.Sprint(c), Want: fmt.Sprint(refCJDN)})
	}
	if refDate != d.String() {
		found = append(found, Mismatch{CJDN: c, Check: "reference gregorian date", Got: d.String(), Want: refDate})
	}
	if w := calendar.DayOfWeek(c); w != refWeekday {
		found = append(found, Mismatch{CJDN: c, Check: "reference weekday", Got: w.String(), Want: refWeekday.String()})
	}

	return found, true, nil
}

// Command verify sweeps a range of day counts and cross-checks every
// calendar conversion against the SQLite reference and against itself.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/daycount/internal/calendar"
	"github.com/zapponejosh/daycount/internal/database"
	"github.com/zapponejosh/daycount/internal/logger"
	"github.com/zapponejosh/daycount/internal/verify"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		from          string
		system        string
		count         int
		workers       int
		chunkSize     int
		maxMismatches int
		noReference   bool
		jsonOutput    bool
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Cross-check calendar conversions over a range of days",
		Long: `Sweeps consecutive day counts, round-trips each one through the
Gregorian, Milankovic and Julian calendars, and compares Gregorian dates
and weekdays with SQLite's date functions for years 0000-9999.

--from accepts either a day count (2299161) or a date (1582-10-15) in the
calendar named by --calendar.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(os.Stderr, logLevel, "text")

			start, err := parseStart(from, system)
			if err != nil {
				return err
			}

			var ref verify.Reference
			if !noReference {
				db, err := database.Open(database.DefaultConfig(), log)
				if err != nil {
					return fmt.Errorf("open reference database: %w", err)
				}
				defer db.Close()
				ref = db
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := verify.Sweep(ctx, ref, verify.Options{
				From:          start,
				Count:         count,
				Workers:       workers,
				ChunkSize:     chunkSize,
				MaxMismatches: maxMismatches,
			}, log)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(cmd, report)
			}

			if !report.OK() {
				return fmt.Errorf("%d checks failed", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "1582-10-15", "First day: a day count or a YYYY-MM-DD date")
	cmd.Flags().StringVarP(&system, "calendar", "c", "gregorian", "Calendar of a --from date")
	cmd.Flags().IntVarP(&count, "count", "n", 400*366, "Number of consecutive days to check")
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Concurrent workers")
	cmd.Flags().IntVar(&chunkSize, "chunk", 10000, "Days per work chunk")
	cmd.Flags().IntVar(&maxMismatches, "max-mismatches", 100, "Mismatches kept in the report")
	cmd.Flags().BoolVar(&noReference, "no-reference", false, "Skip the SQLite comparison, round-trip only")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	return cmd
}

// parseStart reads --from as a day count, falling back to a date.
func parseStart(from, system string) (calendar.CJDN, error) {
	if c, err := calendar.ParseCJDN(from); err == nil {
		return c, nil
	}

	sys, err := calendar.ParseSystem(system)
	if err != nil {
		return 0, err
	}
	d, err := calendar.ParseDate(sys, from)
	if err != nil {
		return 0, err
	}
	return d.CJDN()
}

func printReport(cmd *cobra.Command, r *verify.Report) {
	out := cmd.OutOrStdout()

	first, _ := calendar.FromCJDN(calendar.Gregorian, r.From)
	last, _ := calendar.FromCJDN(calendar.Gregorian, r.To)

	fmt.Fprintln(out, strings.Repeat("=", 64))
	fmt.Fprintln(out, "Calendar Verification")
	fmt.Fprintln(out, strings.Repeat("=", 64))
	fmt.Fprintf(out, "Range:        %d .. %d (Gregorian %s .. %s)\n", r.From, r.To, first, last)
	fmt.Fprintf(out, "Days checked: %d\n", r.Checked)
	fmt.Fprintf(out, "Reference:    %d days compared with SQLite\n", r.ReferenceDays)
	fmt.Fprintf(out, "Duration:     %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintln(out)

	if r.OK() {
		fmt.Fprintln(out, "✓ All checks passed")
		return
	}

	fmt.Fprintf(out, "✗ %d checks failed\n", r.Failed)
	for _, m := range r.Mismatches {
		fmt.Fprintf(out, "  %s\n", m)
	}
	if shown := len(r.Mismatches); shown < r.Failed {
		fmt.Fprintf(out, "  ... and %d more\n", r.Failed-shown)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zapponejosh/daycount/internal/calendar"
)

// This script prints every day of one year in one calendar with its
// day count, weekday and the same day in the other two calendars.

func main() {
	year := flag.Int("year", 2025, "Year to generate dates for")
	name := flag.String("calendar", "gregorian", "Calendar the year belongs to")
	month := flag.Int("month", 0, "Only print this month (1-12)")
	flag.Parse()

	sys, err := calendar.ParseSystem(*name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	first, err := calendar.ToCJDN(sys, *year, 1, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	next, err := calendar.ToCJDN(sys, *year+1, 1, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Every day from first up to next converts without error.

	fmt.Printf("=== %s Year %d ===\n\n", sys, *year)

	fmt.Println("Key Facts:")
	fmt.Printf("  First Day:    %d (%s)\n", first, calendar.DayOfWeek(first))
	fmt.Printf("  Last Day:     %d (%s)\n", next-1, calendar.DayOfWeek(next-1))
	fmt.Printf("  Length:       %d days\n", calendar.Days(first, next))
	fmt.Printf("  Leap Year:    %v\n", calendar.IsLeapYear(sys, *year))
	fmt.Println()

	// Days per month and the weekday each month starts on
	fmt.Println("Months:")
	for m := 1; m <= 12; m++ {
		c, _ := calendar.ToCJDN(sys, *year, m, 1)
		fmt.Printf("  %02d  %2d days  starts %s\n", m, calendar.DaysInMonth(sys, *year, m), calendar.DayOfWeek(c))
	}
	fmt.Println()

	// ==========================================================================
	// OUTPUT
	// ==========================================================================
	others := make([]calendar.System, 0, 2)
	for _, s := range calendar.Systems() {
		if s != sys {
			others = append(others, s)
		}
	}

	fmt.Println("=== All Dates ===")
	fmt.Printf("Date,CJDN,Weekday,%s,%s\n", others[0], others[1])
	for c := first; c < next; c++ {
		d, _ := calendar.FromCJDN(sys, c)
		if *month != 0 && d.Month != *month {
			continue
		}

		row := fmt.Sprintf("%s,%d,%s", d, c, calendar.DayOfWeek(c))
		for _, s := range others {
			od, _ := calendar.FromCJDN(s, c)
			row += "," + marked(od)
		}
		fmt.Println(row)
	}
}

// marked flags dates that fall before their calendar's minimum year,
// since those cannot be converted back.
func marked(d calendar.Date) string {
	if d.Year < d.System.MinYear() {
		return d.String() + "*"
	}
	return d.String()
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// DayView is one day as returned by the conversion endpoints
type DayView struct {
	Calendar    string `json:"calendar"`
	Date        string `json:"date"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	CJDN        int    `json:"cjdn"`
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekday_name"`
}

// ComponentResponse is the response for /calendars/{calendar}/dates/{cjdn}
type ComponentResponse struct {
	Calendar  string      `json:"calendar"`
	CJDN      int         `json:"cjdn"`
	Component string      `json:"component"`
	Value     interface{} `json:"value"`
}

// RangeResponse is the response for /calendars/{calendar}/range
type RangeResponse struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Count int       `json:"count"`
	Days  []DayView `json:"days"`
}

// ConvertResponse is the response for /convert
type ConvertResponse struct {
	From DayView `json:"from"`
	To   DayView `json:"to"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Daycount API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testCalendars()
	tr.testKnownDates()
	tr.testComponents()
	tr.testConvert()
	tr.testReformRange()
	tr.testEdgeCases()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testCalendars() {
	tr.printSection("Calendars")

	resp, err := tr.get("/api/v1/calendars")
	if err != nil {
		tr.recordError("Calendars", err.Error())
		return
	}

	var list []struct {
		Name    string `json:"name"`
		MinYear int    `json:"min_year"`
		Default bool   `json:"default"`
	}
	if err := tr.parseDataAs(resp, &list); err != nil {
		tr.recordError("Calendars", err.Error())
		return
	}

	if len(list) != 3 {
		tr.recordError("Calendars", fmt.Sprintf("Expected 3 calendars, got %d", len(list)))
		return
	}
	for _, c := range list {
		tr.recordSuccess(fmt.Sprintf("%s (from year %d, default %v)", c.Name, c.MinYear, c.Default))
	}
}

func (tr *TestRunner) testKnownDates() {
	tr.printSection("Known Day Counts")

	tests := []struct {
		calendar string
		date     string
		cjdn     int
		weekday  string
	}{
		{"gregorian", "2000-01-01", 2451545, "Saturday"},
		{"gregorian", "1582-10-15", 2299161, "Friday"},
		{"julian", "1582-10-04", 2299160, "Thursday"},
		{"julian", "0325-06-19", 1839934, "Saturday"},
		{"milankovic", "1923-10-14", 2423707, "Sunday"},
		{"milankovic", "2800-03-01", 2743798, "Tuesday"},
	}

	for _, tt := range tests {
		parts := strings.Split(tt.date, "-")
		path := fmt.Sprintf("/api/v1/calendars/%s/cjdn?year=%s&month=%s&day=%s",
			tt.calendar, parts[0], parts[1], parts[2])

		resp, err := tr.get(path)
		if err != nil {
			tr.recordError(tt.date, err.Error())
			continue
		}

		var day DayView
		if err := tr.parseDataAs(resp, &day); err != nil {
			tr.recordError(tt.date, err.Error())
			continue
		}

		if day.CJDN != tt.cjdn || day.WeekdayName != tt.weekday {
			tr.recordError(fmt.Sprintf("%s %s", tt.calendar, tt.date),
				fmt.Sprintf("got %d %s, want %d %s", day.CJDN, day.WeekdayName, tt.cjdn, tt.weekday))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%-10s %s = %d (%s)", tt.calendar, tt.date, day.CJDN, day.WeekdayName))

		if tr.verbose {
			tr.printDayDetail(&day)
		}
	}
}

func (tr *TestRunner) testComponents() {
	tr.printSection("Date Components")

	tests := []struct {
		query string
		want  string
	}{
		{"", "1999-12-19"},
		{"?year=true", "1999"},
		{"?month=true", "12"},
		{"?day=true", "19"},
		{"?day=true&year=true", "1999"},
	}

	for _, tt := range tests {
		path := "/api/v1/calendars/julian/dates/2451545" + tt.query
		resp, err := tr.get(path)
		if err != nil {
			tr.recordError(path, err.Error())
			continue
		}

		var data ComponentResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(path, err.Error())
			continue
		}

		got := fmt.Sprint(data.Value)
		if got != tt.want {
			tr.recordError(path, fmt.Sprintf("got %s, want %s", got, tt.want))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("julian 2451545%s -> %s = %s", tt.query, data.Component, got))
	}
}

func (tr *TestRunner) testConvert() {
	tr.printSection("Conversion")

	tests := []struct {
		date, from, to string
		want           string
	}{
		{"1582-10-04", "julian", "gregorian", "1582-10-14"},
		{"2024-04-22", "julian", "gregorian", "2024-05-05"},
		{"2000-01-01", "gregorian", "milankovic", "2000-01-01"},
		{"2800-03-01", "milankovic", "gregorian", "2800-02-29"},
	}

	for _, tt := range tests {
		path := fmt.Sprintf("/api/v1/convert?date=%s&from=%s&to=%s", tt.date, tt.from, tt.to)
		resp, err := tr.get(path)
		if err != nil {
			tr.recordError(path, err.Error())
			continue
		}

		var data ConvertResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(path, err.Error())
			continue
		}

		if data.To.Date != tt.want {
			tr.recordError(path, fmt.Sprintf("got %s, want %s", data.To.Date, tt.want))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s %s -> %s %s", tt.from, tt.date, tt.to, data.To.Date))
	}
}

func (tr *TestRunner) testReformRange() {
	tr.printSection("Gregorian Reform (Julian October 1582)")

	resp, err := tr.get("/api/v1/calendars/julian/range?start=1582-10-01&end=1582-10-08")
	if err != nil {
		tr.recordError("Range", err.Error())
		return
	}

	var data RangeResponse
	if err := tr.parseDataAs(resp, &data); err != nil {
		tr.recordError("Range", err.Error())
		return
	}

	if data.Count != 8 {
		tr.recordError("Range", fmt.Sprintf("Expected 8 days, got %d", data.Count))
		return
	}

	for i, day := range data.Days {
		if i > 0 && day.CJDN != data.Days[i-1].CJDN+1 {
			tr.recordError(day.Date, "Day counts not consecutive")
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: %d %s", day.Date, day.CJDN, day.WeekdayName))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"Gregorian before 1582", "/api/v1/calendars/gregorian/cjdn?year=1581&month=12&day=31", 400, "BELOW_MINIMUM_YEAR"},
		{"Milankovic before 1923", "/api/v1/calendars/milankovic/cjdn?year=1922&month=1&day=1", 400, "BELOW_MINIMUM_YEAR"},
		{"Julian before 325", "/api/v1/calendars/julian/cjdn?year=324&month=12&day=31", 400, "BELOW_MINIMUM_YEAR"},
		{"Unknown calendar", "/api/v1/calendars/hebrew/dates/2451545", 404, "UNKNOWN_CALENDAR"},
		{"Fractional day count", "/api/v1/calendars/gregorian/dates/2451545.5", 400, "INVALID_DAY_COUNT"},
		{"Strict selector", "/api/v1/calendars/gregorian/dates/2451545?year=true&month=true&strict=true", 400, "AMBIGUOUS_SELECTOR"},
		{"Missing range end", "/api/v1/calendars/gregorian/range?start=2025-01-01", 400, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		resp, err := tr.getRaw(tt.path)
		if err != nil {
			tr.recordError(tt.name, err.Error())
			continue
		}

		var apiResp APIResponse
		err = json.NewDecoder(resp.Body).Decode(&apiResp)
		resp.Body.Close()
		if err != nil {
			tr.recordError(tt.name, fmt.Sprintf("parse error: %v", err))
			continue
		}

		if resp.StatusCode != tt.status || apiResp.Error == nil || apiResp.Error.Code != tt.code {
			tr.recordError(tt.name, fmt.Sprintf("got %d %+v, want %d %s", resp.StatusCode, apiResp.Error, tt.status, tt.code))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s rejected (%s)", tt.name, tt.code))
	}

	// Negative day counts are valid input
	resp, err := tr.get("/api/v1/calendars/julian/dates/-1")
	if err != nil {
		tr.recordError("Negative CJDN", err.Error())
	} else {
		var data ComponentResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError("Negative CJDN", err.Error())
		} else {
			tr.recordSuccess(fmt.Sprintf("Negative day count -1 -> %v", data.Value))
		}
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, tr.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}
	return tr.client.Do(req)
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDayDetail(d *DayView) {
	fmt.Printf("    Calendar: %s\n", d.Calendar)
	fmt.Printf("    Parts:    year %d, month %d, day %d\n", d.Year, d.Month, d.Day)
	fmt.Printf("    Weekday:  %d (%s)\n", d.Weekday, d.WeekdayName)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key sent as X-API-Key")
	verbose := flag.Bool("v", false, "Verbose output (show day details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	_, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/daycount/internal/calendar"
	"github.com/zapponejosh/daycount/internal/config"
	"github.com/zapponejosh/daycount/internal/logger"
)

// HealthChecker reports whether a dependency is usable.
// *database.DB satisfies it.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	ref    HealthChecker
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(ref HealthChecker, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		ref:    ref,
		cfg:    cfg,
		logger: logger,
	}
}

// DayView is a single day as returned by the API.
type DayView struct {
	Calendar    calendar.System  `json:"calendar"`
	Date        string           `json:"date"`
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Day         int              `json:"day"`
	CJDN        calendar.CJDN    `json:"cjdn"`
	Weekday     calendar.Weekday `json:"weekday"`
	WeekdayName string           `json:"weekday_name"`
}

func newDayView(d calendar.Date, c calendar.CJDN) DayView {
	w := calendar.DayOfWeek(c)
	return DayView{
		Calendar:    d.System,
		Date:        d.String(),
		Year:        d.Year,
		Month:       d.Month,
		Day:         d.Day,
		CJDN:        c,
		Weekday:     w,
		WeekdayName: w.String(),
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check reference database health
	if err := h.ref.Health(ctx); err != nil {
		logger.FromContext(ctx, h.logger).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Reference database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// ListCalendars handles GET /api/v1/calendars
func (h *Handlers) ListCalendars(w http.ResponseWriter, r *http.Request) {
	type calendarInfo struct {
		Name    calendar.System `json:"name"`
		MinYear int             `json:"min_year"`
		Default bool            `json:"default"`
	}

	var list []calendarInfo
	for _, s := range calendar.Systems() {
		list = append(list, calendarInfo{
			Name:    s,
			MinYear: s.MinYear(),
			Default: s == h.cfg.Calendar(),
		})
	}

	WriteSuccess(w, list)
}

// DateToCJDN handles GET /api/v1/calendars/{calendar}/cjdn?year=&month=&day=
func (h *Handlers) DateToCJDN(w http.ResponseWriter, r *http.Request) {
	sys, err := calendar.ParseSystem(chi.URLParam(r, "calendar"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	q := r.URL.Query()
	year, month, day := q.Get("year"), q.Get("month"), q.Get("day")
	if year == "" || month == "" || day == "" {
		WriteBadRequest(w, "year, month and day parameters are required")
		return
	}

	c, err := calendar.ParseToCJDN(sys, year, month, day)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	d, err := calendar.FromCJDN(sys, c)
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("converting back failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to convert day count")
		return
	}
	logger.FromContext(r.Context(), h.logger).Debug("date converted",
		slog.String("calendar", sys.String()),
		slog.String("date", d.String()),
		slog.Int("cjdn", int(c)),
	)

	WriteSuccess(w, newDayView(d, c))
}

// CJDNToDate handles GET /api/v1/calendars/{calendar}/dates/{cjdn}
//
// The optional boolean parameters year, month and day select one
// component. When several are set, year wins over month and month over
// day, unless strict=true, which rejects the request instead.
func (h *Handlers) CJDNToDate(w http.ResponseWriter, r *http.Request) {
	sys, err := calendar.ParseSystem(chi.URLParam(r, "calendar"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	c, err := calendar.ParseCJDN(chi.URLParam(r, "cjdn"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	var sel calendar.Selector
	var strict bool
	flags := []struct {
		name string
		dst  *bool
	}{
		{"year", &sel.Year},
		{"month", &sel.Month},
		{"day", &sel.Day},
		{"strict", &strict},
	}
	for _, f := range flags {
		if *f.dst, err = queryBool(r, f.name); err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
	}

	convert := calendar.Component
	if strict {
		convert = calendar.StrictComponent
	}

	part, err := convert(sys, c, sel)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	var value interface{} = part.String()
	if n, ok := part.Int(); ok {
		value = n
	}

	WriteSuccess(w, map[string]interface{}{
		"calendar":  sys,
		"cjdn":      c,
		"component": part.Kind.String(),
		"value":     value,
	})
}

// DateRange handles GET /api/v1/calendars/{calendar}/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) DateRange(w http.ResponseWriter, r *http.Request) {
	sys, err := calendar.ParseSystem(chi.URLParam(r, "calendar"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := h.parseDay(sys, startStr)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	end, err := h.parseDay(sys, endStr)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	if end < start {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	// Limit range to prevent abuse
	days := calendar.Days(start, end) + 1
	if days > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	results := make([]DayView, 0, days)
	for c := start; c <= end; c++ {
		d, err := calendar.FromCJDN(sys, c)
		if err != nil {
			logger.FromContext(r.Context(), h.logger).Error("range conversion failed", slog.Any("error", err))
			WriteInternalError(w, "Failed to convert day count")
			return
		}
		results = append(results, newDayView(d, c))
	}

	WriteSuccess(w, map[string]interface{}{
		"start": startStr,
		"end":   endStr,
		"count": len(results),
		"days":  results,
	})
}

// DayOfWeek handles GET /api/v1/weekday/{cjdn}
func (h *Handlers) DayOfWeek(w http.ResponseWriter, r *http.Request) {
	c, err := calendar.ParseCJDN(chi.URLParam(r, "cjdn"))
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	wd := calendar.DayOfWeek(c)
	WriteSuccess(w, map[string]interface{}{
		"cjdn":         c,
		"weekday":      wd,
		"weekday_name": wd.String(),
	})
}

// Convert handles GET /api/v1/convert?date=YYYY-MM-DD&from=julian&to=gregorian
// When to is omitted the configured default calendar is used.
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dateStr := q.Get("date")
	fromStr := q.Get("from")
	if dateStr == "" || fromStr == "" {
		WriteBadRequest(w, "date and from parameters are required")
		return
	}

	from, err := calendar.ParseSystem(fromStr)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	to := h.cfg.Calendar()
	if toStr := q.Get("to"); toStr != "" {
		if to, err = calendar.ParseSystem(toStr); err != nil {
			WriteCalendarError(w, err)
			return
		}
	}

	src, err := calendar.ParseDate(from, dateStr)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	c, err := src.CJDN()
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	dst, err := calendar.FromCJDN(to, c)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"from": newDayView(src, c),
		"to":   newDayView(dst, c),
	})
}

// parseDay parses a YYYY-MM-DD date in sys and returns its day count.
func (h *Handlers) parseDay(sys calendar.System, text string) (calendar.CJDN, error) {
	d, err := calendar.ParseDate(sys, text)
	if err != nil {
		return 0, err
	}
	return d.CJDN()
}

// queryBool reads an optional boolean query parameter.
func queryBool(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", name, v)
	}
	return b, nil
}

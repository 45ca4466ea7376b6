// Package calendar provides the calendar-day arithmetic shared by the stores,
// services and aggregations. Days are carried as "YYYY-MM-DD" strings, which
// sort lexicographically in chronological order, so range checks reduce to
// string comparisons.
//
// All "today" decisions go through a Calendar so tests can pin the clock and
// the deployment can pin the time zone and week-start convention.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// DayLayout is the canonical calendar-day format.
const DayLayout = "2006-01-02"

// ErrBadDay is returned when a day string cannot be parsed.
var ErrBadDay = errors.New("invalid calendar day")

// Clock abstracts the wall clock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now.
var SystemClock Clock = ClockFunc(time.Now)

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Calendar resolves "today" and week boundaries in a fixed location.
type Calendar struct {
	clock     Clock
	loc       *time.Location
	weekStart time.Weekday
}

// New constructs a Calendar. A nil clock uses the system clock and a nil
// location uses UTC.
func New(clock Clock, loc *time.Location, weekStart time.Weekday) *Calendar {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{clock: clock, loc: loc, weekStart: weekStart}
}

// Default is a Sunday-based UTC calendar on the system clock.
func Default() *Calendar { return New(nil, time.UTC, time.Sunday) }

// Now returns the current instant in the calendar's location.
func (c *Calendar) Now() time.Time { return c.clock.Now().In(c.loc) }

// Location returns the calendar's time zone.
func (c *Calendar) Location() *time.Location { return c.loc }

// WeekStart returns the configured first day of the week.
func (c *Calendar) WeekStart() time.Weekday { return c.weekStart }

// Today returns the current calendar day.
func (c *Calendar) Today() string { return c.DayOf(c.clock.Now()) }

// DayOf formats t as a calendar day in the calendar's location.
func (c *Calendar) DayOf(t time.Time) string { return t.In(c.loc).Format(DayLayout) }

// Parse parses a calendar day as midnight in the calendar's location.
func (c *Calendar) Parse(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(day), c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDay, day)
	}
	return t, nil
}

// AddDays shifts a calendar day by n days (negative moves backwards).
func (c *Calendar) AddDays(day string, n int) (string, error) {
	t, err := c.Parse(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DayLayout), nil
}

// Resolve accepts either a literal day or a relative expression such as
// "today", "today-3" or "today+1". Seed datasets use the relative form so
// demo data always lands in the current week.
func (c *Calendar) Resolve(expr string) (string, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))
	if !strings.HasPrefix(expr, "today") {
		if _, err := c.Parse(expr); err != nil {
			return "", err
		}
		return expr, nil
	}
	rest := strings.TrimPrefix(expr, "today")
	if rest == "" {
		return c.Today(), nil
	}
	n, err := strconv.Atoi(rest) // accepts "+1" and "-3"
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDay, expr)
	}
	return c.AddDays(c.Today(), n)
}

// Week is an inclusive range of calendar days.
type Week struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeekOf returns the week containing t, honoring the configured week start.
func (c *Calendar) WeekOf(t time.Time) Week {
	cfg := &now.Config{WeekStartDay: c.weekStart, TimeLocation: c.loc}
	n := cfg.With(t.In(c.loc))
	return Week{
		Start: n.BeginningOfWeek().Format(DayLayout),
		End:   n.EndOfWeek().Format(DayLayout),
	}
}

// ThisWeek returns the week containing today.
func (c *Calendar) ThisWeek() Week { return c.WeekOf(c.clock.Now()) }

// Contains reports whether day falls within the week (inclusive).
func (w Week) Contains(day string) bool {
	return day >= w.Start && day <= w.End
}

// Days lists the days of the week in order.
func (w Week) Days() []string {
	start, err := time.Parse(DayLayout, w.Start)
	if err != nil {
		return nil
	}
	out := make([]string, 0, 7)
	for d := start; d.Format(DayLayout) <= w.End; d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DayLayout))
	}
	return out
}

// ParseWeekday maps a weekday name ("sunday", "mon", ...) to time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

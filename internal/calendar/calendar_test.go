package calendar

import (
	"errors"
	"testing"
	"time"
)

// 2026-10-15 is a Thursday.
var thursday = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func TestToday_UsesLocation(t *testing.T) {
	late := time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC)
	utc := New(Fixed(late), time.UTC, time.Sunday)
	if got := utc.Today(); got != "2026-10-15" {
		t.Fatalf("utc Today = %q", got)
	}

	tokyo := time.FixedZone("JST", 9*3600)
	jp := New(Fixed(late), tokyo, time.Sunday)
	if got := jp.Today(); got != "2026-10-16" {
		t.Fatalf("tokyo Today = %q", got)
	}
}

func TestWeekOf_SundayAndMondayStart(t *testing.T) {
	sun := New(Fixed(thursday), time.UTC, time.Sunday)
	w := sun.ThisWeek()
	if w.Start != "2026-10-11" || w.End != "2026-10-17" {
		t.Fatalf("sunday week = %+v", w)
	}

	mon := New(Fixed(thursday), time.UTC, time.Monday)
	w = mon.ThisWeek()
	if w.Start != "2026-10-12" || w.End != "2026-10-18" {
		t.Fatalf("monday week = %+v", w)
	}
}

func TestWeek_ContainsAndDays(t *testing.T) {
	w := Week{Start: "2026-10-11", End: "2026-10-17"}
	cases := map[string]bool{
		"2026-10-10": false,
		"2026-10-11": true,
		"2026-10-15": true,
		"2026-10-17": true,
		"2026-10-18": false,
	}
	for day, want := range cases {
		if got := w.Contains(day); got != want {
			t.Errorf("Contains(%s) = %v; want %v", day, got, want)
		}
	}

	days := w.Days()
	if len(days) != 7 || days[0] != "2026-10-11" || days[6] != "2026-10-17" {
		t.Fatalf("Days = %v", days)
	}
}

func TestAddDays_CrossesMonth(t *testing.T) {
	c := New(Fixed(thursday), time.UTC, time.Sunday)
	got, err := c.AddDays("2026-11-01", -1)
	if err != nil || got != "2026-10-31" {
		t.Fatalf("AddDays = %q, %v", got, err)
	}
	if _, err := c.AddDays("nope", 1); !errors.Is(err, ErrBadDay) {
		t.Fatalf("expected ErrBadDay, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	c := New(Fixed(thursday), time.UTC, time.Sunday)
	cases := map[string]string{
		"today":      "2026-10-15",
		" Today ":    "2026-10-15",
		"today-1":    "2026-10-14",
		"today+2":    "2026-10-17",
		"2024-02-29": "2024-02-29",
	}
	for in, want := range cases {
		got, err := c.Resolve(in)
		if err != nil || got != want {
			t.Errorf("Resolve(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"today-x", "yesterday", "2024-13-01"} {
		if _, err := c.Resolve(bad); err == nil {
			t.Errorf("Resolve(%q) expected error", bad)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"sunday": time.Sunday,
		"Mon":    time.Monday,
		"SAT":    time.Saturday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		if err != nil || got != want {
			t.Errorf("ParseWeekday(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseWeekday("funday"); err == nil {
		t.Fatal("expected error for unknown weekday")
	}
}
